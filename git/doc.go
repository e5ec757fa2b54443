// Package git runs the git executable as a subprocess and decodes its output
// into typed values.
//
// Commands are always passed to git as an argument vector, never through a
// shell. Two invokers share one outcome classification: ExecInvoker blocks
// the calling goroutine, AsyncInvoker returns a Future that resolves when the
// process exits. Repository and AsyncRepository build on them.
//
// The parsers (ParseCommit, ParseStatus, ParseBranches, ParseNumstat and
// friends) are pure functions and can be used on captured output directly.
package git
