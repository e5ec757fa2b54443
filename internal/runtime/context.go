package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gitpilot.dev/gitpilot/git"
	"gitpilot.dev/gitpilot/internal/config"
	"gitpilot.dev/gitpilot/internal/output"
	"gitpilot.dev/gitpilot/internal/tracing"
	"gitpilot.dev/gitpilot/internal/tui"
)

// Options configures NewContext.
type Options struct {
	Config  *config.Config
	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	Version string
}

// Context provides access to configuration, logging and output for commands
type Context struct {
	Config  *config.Config
	Splog   *tui.Splog
	Printer *output.Printer
	Tracing *tracing.Provider
	WorkDir string
}

// NewContext builds the logger, printer and tracer provider described by opts.Config.
func NewContext(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("runtime: config is required")
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	splog, err := tui.NewSplog(tui.SplogConfig{
		Writer:  stderr,
		Debug:   cfg.Log.Debug,
		LogFile: cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	tp := tracing.Disabled()
	if cfg.Trace {
		tp, err = tracing.New(stderr, opts.Version)
		if err != nil {
			_ = splog.Close()
			return nil, err
		}
	}

	color := output.ResolveColorMode(cfg.Output.Color, output.IsTTY(stdout))
	printer := output.NewPrinter(stdout, cfg.Output.Format, color).WithStderr(stderr)

	return &Context{
		Config:  cfg,
		Splog:   splog,
		Printer: printer,
		Tracing: tp,
		WorkDir: workDir,
	}, nil
}

// GitOptions returns the options every repository handle is created with.
func (c *Context) GitOptions() []git.Option {
	return []git.Option{
		git.WithExecutable(c.Config.Git.Executable),
		git.WithLogger(c.Splog.Logger()),
		git.WithTracerProvider(c.Tracing),
	}
}

// Repository opens the working tree enclosing WorkDir.
func (c *Context) Repository() (*git.Repository, error) {
	repo, err := git.Discover(c.WorkDir, c.GitOptions()...)
	if err != nil {
		return nil, output.NewUserErrorWithCause(fmt.Sprintf("%s is not inside a git working tree", c.WorkDir), err)
	}
	c.Splog.Debug("using repository at %s", repo.Root())
	return repo, nil
}

// AsyncRepository opens the working tree enclosing WorkDir for concurrent use.
func (c *Context) AsyncRepository() (*git.AsyncRepository, error) {
	repo, err := c.Repository()
	if err != nil {
		return nil, err
	}
	return git.NewAsync(repo.Root(), c.GitOptions()...), nil
}

// Close flushes pending spans and closes the log file.
func (c *Context) Close(ctx context.Context) error {
	return errors.Join(c.Tracing.Shutdown(ctx), c.Splog.Close())
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// GetContext returns the command context stored by WithContext.
func GetContext(ctx context.Context) (*Context, error) {
	if ctx != nil {
		if rc, ok := ctx.Value(contextKey{}).(*Context); ok {
			return rc, nil
		}
	}
	return nil, errors.New("runtime context not initialized")
}
