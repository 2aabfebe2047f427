package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithOutput configures where messages and interpreter errors are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRegistry replaces the default deck command table.
func WithRegistry(reg *Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithStaleCheck is consulted before every prompt; when it reports true the
// step returns a reload to the current slide. Watch mode uses it.
func WithStaleCheck(stale func() bool) Option {
	return func(r *Runner) {
		r.stale = stale
	}
}

// WithPrompts overrides the primary and continuation prompts.
func WithPrompts(ps1, ps2 string) Option {
	return func(r *Runner) {
		r.ps1, r.ps2 = ps1, ps2
	}
}
