// Package output renders gitpilot results for the terminal or for machines.
//
// A Printer writes either styled text (lipgloss, with colors resolved from
// the --color mode and TTY detection), JSON, or YAML. Errors are mapped to
// process exit codes:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad input, git exited non-zero
//	output.ExitSystemError // 2: git missing or could not run
package output
