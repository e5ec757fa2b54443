// Package main provides the entry point for the gitpilot CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"gitpilot.dev/gitpilot/internal/cli"
	"gitpilot.dev/gitpilot/internal/output"
)

// Build info set via ldflags, e.g.
// go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2025-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCmd(buildVersion())
	rootCmd.SetArgs(cli.PassthroughArgs(rootCmd, os.Args[1:]))
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}
