package tui

import (
	"os"
	"path/filepath"
)

// DefaultLogFilePath returns ~/.gitpilot/logs/gitpilot.log, or a file in the
// current directory when the home directory is unknown.
func DefaultLogFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "gitpilot.log"
	}
	return filepath.Join(homeDir, ".gitpilot", "logs", "gitpilot.log")
}
