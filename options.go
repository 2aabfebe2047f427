package sliderepl

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/aretw0/sliderepl/pkg/runner"
)

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLoader injects a custom SourceLoader, bypassing the file system.
func WithLoader(l ports.SourceLoader) Option {
	return func(s *Session) {
		s.loader = l
	}
}

// WithBackend sets the execution backend for slide and console code.
func WithBackend(b ports.CodeRunner) Option {
	return func(s *Session) {
		s.backend = b
	}
}

// WithReader sets the console line reader.
func WithReader(r ports.LineReader) Option {
	return func(s *Session) {
		s.reader = r
	}
}

// WithKeyWaiter sets how bullets are acknowledged.
func WithKeyWaiter(k ports.KeyWaiter) Option {
	return func(s *Session) {
		s.keys = k
	}
}

// WithHistory receives echoed slide code for line recall.
func WithHistory(h ports.History) Option {
	return func(s *Session) {
		s.history = h
	}
}

// WithOutput sets where slides, program output and messages are written.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithShort drops slides flagged as long.
func WithShort(short bool) Option {
	return func(s *Session) {
		s.short = short
	}
}

// WithSlideDefaults applies flags to every slide of the deck.
func WithSlideDefaults(flags domain.SlideFlags) Option {
	return func(s *Session) {
		s.defaults = flags
	}
}

// WithPresentation starts in presentation mode.
func WithPresentation(on bool) Option {
	return func(s *Session) {
		s.presentation = on
	}
}

// WithTimer makes !info report the elapsed time.
func WithTimer(on bool) Option {
	return func(s *Session) {
		s.timer = on
	}
}

// WithClock overrides the time source of the timer.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithRunAll executes every slide without prompting and ends the session.
func WithRunAll(on bool) Option {
	return func(s *Session) {
		s.runAll = on
	}
}

// WithHighlighter enables code highlighting; enabled sets the initial state of !highlight.
func WithHighlighter(h Highlighter, enabled bool) Option {
	return func(s *Session) {
		s.highlighter = h
		s.highlight = enabled
	}
}

// WithScreen sets the terminal clearing strategy.
func WithScreen(sc Screen) Option {
	return func(s *Session) {
		s.screen = sc
	}
}

// WithGlobals binds values in every new environment before the init slide runs.
func WithGlobals(globals map[string]any) Option {
	return func(s *Session) {
		s.globals = globals
	}
}

// WithBanner sets the greeting printed once at the start of the session.
func WithBanner(banner func(path string) string) Option {
	return func(s *Session) {
		s.banner = banner
	}
}

// WithHelpRenderer renders the command help as markdown.
func WithHelpRenderer(r runner.ContentRenderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithStaleCheck triggers a reload to the current slide when it reports true
// before a prompt. Watch mode uses it.
func WithStaleCheck(stale func() bool) Option {
	return func(s *Session) {
		s.stale = stale
	}
}

// OnLoad registers a hook called each time the deck is (re)built.
func OnLoad(fn func(Loaded)) Option {
	return func(s *Session) {
		s.onLoad = fn
	}
}
