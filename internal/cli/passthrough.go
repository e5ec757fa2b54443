package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/runtime"
)

// gitCommandAllowlist holds read-mostly git subcommands that may be typed
// directly after gitpilot and are forwarded through exec.
var gitCommandAllowlist = []string{
	"blame",
	"cat-file",
	"describe",
	"for-each-ref",
	"grep",
	"ls-files",
	"ls-remote",
	"ls-tree",
	"merge-base",
	"reflog",
	"rev-list",
	"rev-parse",
	"shortlog",
	"show-ref",
	"symbolic-ref",
}

// PassthroughArgs rewrites args so that an allowlisted git subcommand that is
// not also a gitpilot command runs through exec. Other args are returned as is.
func PassthroughArgs(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return args
	}

	command := args[0]
	if !slices.Contains(gitCommandAllowlist, command) {
		return args
	}
	if found, _, err := root.Find([]string{command}); err == nil && found != root {
		return args
	}

	return append([]string{"exec", "--"}, args...)
}

// newExecCmd creates the exec command
func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <git args...>",
		Short: "Run any git command in the repository and print its output lines",
		Example: `  gitpilot exec -- rev-list --count HEAD
  gitpilot --format json exec -- ls-files`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, rc *runtime.Context) error {
				rc.Splog.Debug("passing command through to git: %q", "git "+strings.Join(args, " "))
				lines, err := repoQuery(ctx, rc,
					func(r *git.Repository) ([]string, error) { return r.CmdOut(ctx, args...) },
					func(r *git.AsyncRepository) *git.Future[[]string] { return r.CmdOut(ctx, args...) },
				)
				if err != nil {
					return err
				}
				return rc.Printer.Strings("lines", lines)
			})
		},
	}
}
