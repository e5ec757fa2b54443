package git

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	giterrors "gitpilot.dev/gitpilot/errors"
)

const (
	stdoutPlaceholder = "[stdout: undecodable UTF-8]"
	stderrPlaceholder = "[stderr: undecodable UTF-8]"
)

// Invoker runs git in dir with args and returns its decoded stdout.
// An empty dir means the current working directory.
type Invoker interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// RunAndDecode runs git through inv and hands stdout to decode.
// The result of decode is returned unchanged, including its error.
func RunAndDecode[R any](ctx context.Context, inv Invoker, dir string, decode func(string) (R, error), args ...string) (R, error) {
	out, err := inv.Run(ctx, dir, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	return decode(out)
}

// ExecInvoker runs git on the calling goroutine.
type ExecInvoker struct {
	settings *settings
}

var _ Invoker = (*ExecInvoker)(nil)

// NewExecInvoker creates a blocking invoker.
func NewExecInvoker(opts ...Option) *ExecInvoker {
	return &ExecInvoker{settings: newSettings(opts)}
}

// Run executes git and blocks until it exits.
func (e *ExecInvoker) Run(ctx context.Context, dir string, args ...string) (string, error) {
	p := e.settings.prepare(ctx, dir, args)
	if p.startErr == nil {
		p.startErr = p.cmd.Start()
	}
	if p.startErr == nil {
		p.waitErr = p.cmd.Wait()
	}
	return p.finish()
}

// process holds one git invocation. Each invocation owns its buffers.
type process struct {
	settings *settings
	ctx      context.Context
	span     trace.Span
	dir      string
	args     []string
	cmd      *exec.Cmd
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	began    time.Time
	startErr error
	waitErr  error
}

// prepare resolves the executable and builds the command without starting it.
// A lookup failure is recorded as the start error.
func (s *settings) prepare(ctx context.Context, dir string, args []string) *process {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, spanName(args),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.StringSlice("git.args", args),
			attribute.String("git.dir", dir),
		),
	)

	p := &process{
		settings: s,
		ctx:      ctx,
		span:     span,
		dir:      dir,
		args:     args,
		began:    time.Now(),
	}

	path, err := exec.LookPath(s.executable)
	if err != nil {
		p.startErr = err
		return p
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	if len(s.env) > 0 {
		cmd.Env = append(os.Environ(), s.env...)
	}
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr
	p.cmd = cmd
	return p
}

// finish classifies the outcome, then logs and closes the span.
func (p *process) finish() (string, error) {
	out, exitCode, err := classify(p.settings.executable, p.args, outcome{
		startErr: p.startErr,
		waitErr:  p.waitErr,
		stdout:   p.stdout.Bytes(),
		stderr:   p.stderr.Bytes(),
	})
	if err != nil && p.ctx.Err() != nil {
		err = p.ctx.Err()
	}

	p.settings.logger.DebugContext(p.ctx, "git",
		"args", p.args,
		"dir", p.dir,
		"exit_code", exitCode,
		"duration", time.Since(p.began),
	)

	p.span.SetAttributes(attribute.Int("git.exit_code", exitCode))
	if err != nil {
		p.span.RecordError(err)
		p.span.SetStatus(codes.Error, giterrors.KindOf(err).String())
	}
	p.span.End()

	return out, err
}

// outcome is everything observed about one finished invocation.
type outcome struct {
	startErr error
	waitErr  error
	stdout   []byte
	stderr   []byte
}

// classify is the single decision table shared by both invokers.
// The returned exit code is -1 when the process never ran to completion.
func classify(executable string, args []string, o outcome) (string, int, error) {
	if o.startErr != nil {
		var execErr *exec.Error
		if errors.As(o.startErr, &execErr) &&
			(errors.Is(execErr.Err, exec.ErrNotFound) || errors.Is(execErr.Err, fs.ErrNotExist)) {
			return "", -1, giterrors.NewExecutableNotFoundError(executable, o.startErr)
		}
		return "", -1, giterrors.NewExecutionError(args, o.startErr)
	}

	if o.waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(o.waitErr, &exitErr) {
			code := exitErr.ExitCode()
			return "", code, giterrors.NewCommandError(executable, args,
				decodeStream(o.stdout, stdoutPlaceholder),
				decodeStream(o.stderr, stderrPlaceholder),
				code, o.waitErr)
		}
		return "", -1, giterrors.NewExecutionError(args, o.waitErr)
	}

	if !utf8.Valid(o.stdout) {
		return "", 0, giterrors.NewUndecodableOutputError(args)
	}
	return string(o.stdout), 0, nil
}

// decodeStream trims trailing newlines, or returns placeholder for non-UTF-8 bytes.
func decodeStream(b []byte, placeholder string) string {
	if !utf8.Valid(b) {
		return placeholder
	}
	return strings.TrimRight(string(b), "\r\n")
}

// spanName names a span after the first non-flag argument.
func spanName(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-C" || a == "-c":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return "git " + a
		}
	}
	return "git"
}
