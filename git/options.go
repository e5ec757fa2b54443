package git

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultExecutable is the name looked up on PATH when no executable is configured.
const DefaultExecutable = "git"

const tracerName = "gitpilot.dev/gitpilot/git"

type settings struct {
	executable string
	env        []string
	logger     *slog.Logger
	tracer     trace.Tracer
	invoker    Invoker
}

// Option configures an invoker or a repository.
type Option func(*settings)

// WithExecutable sets the git executable, either a name looked up on PATH or a path.
func WithExecutable(executable string) Option {
	return func(s *settings) {
		if executable != "" {
			s.executable = executable
		}
	}
}

// WithEnv appends KEY=value pairs to the environment of every git process.
func WithEnv(env ...string) Option {
	return func(s *settings) {
		s.env = append(s.env, env...)
	}
}

// WithLogger sets the logger used for command tracing and parser warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracerProvider sets the OpenTelemetry provider used for per-command spans.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithInvoker makes a repository run its commands through inv.
// Invoker-level options are ignored when this is set.
func WithInvoker(inv Invoker) Option {
	return func(s *settings) {
		s.invoker = inv
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		executable: DefaultExecutable,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}
