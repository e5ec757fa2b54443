// Package tui provides the console and file logging used by the gitpilot CLI.
//
// Splog writes plain messages to the terminal and, when a log file is
// configured, a timestamped record of everything (debug included) to a
// rotating file. Its slog.Logger is handed to the git package so that
// command tracing and parser warnings end up in the same places.
package tui
