// Package errors provides the closed set of failures produced by gitpilot.
// Use errors.Is() with the sentinels and errors.As() with the typed errors to
// inspect a failure, or KindOf() to switch on its kind.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a gitpilot failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in gitpilot,
	// including context cancellation.
	KindUnknown Kind = iota
	// KindExecutableNotFound means the git executable could not be located
	KindExecutableNotFound
	// KindExecutionFailed means the process could not be started for another reason
	KindExecutionFailed
	// KindUndecodableOutput means git succeeded but stdout was not UTF-8
	KindUndecodableOutput
	// KindCommandFailed means git ran and exited non-zero
	KindCommandFailed
	// KindInvalidFormat means an identifier failed validation
	KindInvalidFormat
	// KindNoRemoteConfigured means a remote listing found nothing
	KindNoRemoteConfigured
	// KindPathNotUTF8 means a filesystem path cannot be passed as a string argument
	KindPathNotUTF8
	// KindParseFailure means git output could not be decoded into a result
	KindParseFailure
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindExecutableNotFound: "executable-not-found",
	KindExecutionFailed:    "execution-failed",
	KindUndecodableOutput:  "undecodable-output",
	KindCommandFailed:      "command-failed",
	KindInvalidFormat:      "invalid-format",
	KindNoRemoteConfigured: "no-remote-configured",
	KindPathNotUTF8:        "path-not-utf8",
	KindParseFailure:       "parse-failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel errors for each kind
var (
	// ErrExecutableNotFound indicates that git is not installed or not on PATH
	ErrExecutableNotFound = errors.New("git executable not found")

	// ErrExecutionFailed indicates that the git process could not be started
	ErrExecutionFailed = errors.New("unable to execute git process")

	// ErrUndecodableOutput indicates that git printed non-UTF-8 output
	ErrUndecodableOutput = errors.New("unable to decode git output")

	// ErrCommandFailed indicates that git exited with a non-zero status
	ErrCommandFailed = errors.New("git command failed")

	// ErrInvalidFormat indicates that an identifier failed validation
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNoRemoteConfigured indicates that the repository has no remotes
	ErrNoRemoteConfigured = errors.New("no git remote repository is available")

	// ErrPathNotUTF8 indicates that a path contains bytes that are not valid UTF-8
	ErrPathNotUTF8 = errors.New("path contains non-UTF-8 characters")

	// ErrParseFailure indicates that git output did not have the expected shape
	ErrParseFailure = errors.New("unable to parse git output")
)

// IdentifierKind names the identifier family an InvalidFormatError refers to.
type IdentifierKind string

const (
	IdentifierURL        IdentifierKind = "git URL"
	IdentifierRefName    IdentifierKind = "ref name"
	IdentifierCommitHash IdentifierKind = "commit hash"
	IdentifierRemoteName IdentifierKind = "remote name"
	IdentifierTag        IdentifierKind = "tag"
	IdentifierStashRef   IdentifierKind = "stash reference"
)

// ExecutableNotFoundError represents a failed lookup of the git executable
type ExecutableNotFoundError struct {
	Executable string
	Err        error
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("'%s' command not found. Please ensure Git is installed and that its executable is included in your PATH", e.Executable)
}

// Is returns true if the target error is ErrExecutableNotFound
func (e *ExecutableNotFoundError) Is(target error) bool {
	return target == ErrExecutableNotFound
}

func (e *ExecutableNotFoundError) Unwrap() error {
	return e.Err
}

// NewExecutableNotFoundError creates a new ExecutableNotFoundError
func NewExecutableNotFoundError(executable string, err error) *ExecutableNotFoundError {
	return &ExecutableNotFoundError{Executable: executable, Err: err}
}

// ExecutionError represents an OS-level failure to run git
type ExecutionError struct {
	Args []string
	Err  error
}

func (e *ExecutionError) Error() string {
	msg := "unable to execute git process"
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrExecutionFailed
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailed
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new ExecutionError
func NewExecutionError(args []string, err error) *ExecutionError {
	return &ExecutionError{Args: args, Err: err}
}

// UndecodableOutputError represents a successful command whose stdout is not UTF-8
type UndecodableOutputError struct {
	Args []string
}

func (e *UndecodableOutputError) Error() string {
	return fmt.Sprintf("unable to decode output of git %v", e.Args)
}

// Is returns true if the target error is ErrUndecodableOutput
func (e *UndecodableOutputError) Is(target error) bool {
	return target == ErrUndecodableOutput
}

// NewUndecodableOutputError creates a new UndecodableOutputError
func NewUndecodableOutputError(args []string) *UndecodableOutputError {
	return &UndecodableOutputError{Args: args}
}

// CommandError represents a git invocation that exited with a non-zero status
type CommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	return msg
}

// Is returns true if the target error is ErrCommandFailed
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// InvalidFormatError represents an identifier that failed validation
type InvalidFormatError struct {
	Identifier IdentifierKind
	Value      string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s is invalid: %q", e.Identifier, e.Value)
}

// Is returns true if the target error is ErrInvalidFormat
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// NewInvalidFormatError creates a new InvalidFormatError
func NewInvalidFormatError(identifier IdentifierKind, value string) *InvalidFormatError {
	return &InvalidFormatError{Identifier: identifier, Value: value}
}

// PathNotUTF8Error represents a path that cannot be used as a string argument
type PathNotUTF8Error struct {
	Path string
}

func (e *PathNotUTF8Error) Error() string {
	return fmt.Sprintf("path contains non-UTF-8 characters and cannot be used as a string argument: %q", e.Path)
}

// Is returns true if the target error is ErrPathNotUTF8
func (e *PathNotUTF8Error) Is(target error) bool {
	return target == ErrPathNotUTF8
}

// NewPathNotUTF8Error creates a new PathNotUTF8Error
func NewPathNotUTF8Error(path string) *PathNotUTF8Error {
	return &PathNotUTF8Error{Path: path}
}

// ParseError represents git output that a parser could not decode
type ParseError struct {
	Parser string
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s output: %s", e.Parser, e.Reason)
	if raw := strings.TrimSpace(e.Raw); raw != "" {
		msg += fmt.Sprintf("\noutput: %s", raw)
	}
	return msg
}

// Is returns true if the target error is ErrParseFailure
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

// NewParseError creates a new ParseError
func NewParseError(parser, reason, raw string) *ParseError {
	return &ParseError{Parser: parser, Reason: reason, Raw: raw}
}

// KindOf reports the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrExecutableNotFound):
		return KindExecutableNotFound
	case errors.Is(err, ErrExecutionFailed):
		return KindExecutionFailed
	case errors.Is(err, ErrUndecodableOutput):
		return KindUndecodableOutput
	case errors.Is(err, ErrCommandFailed):
		return KindCommandFailed
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrNoRemoteConfigured):
		return KindNoRemoteConfigured
	case errors.Is(err, ErrPathNotUTF8):
		return KindPathNotUTF8
	case errors.Is(err, ErrParseFailure):
		return KindParseFailure
	}
	return KindUnknown
}
