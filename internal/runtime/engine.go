package runtime

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/sliderepl/internal/compiler"
	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
)

// Highlighter colorizes echoed code. Implementations must preserve line structure.
type Highlighter interface {
	Highlight(code string) string
}

// Screen clears the terminal when a slide opens in presentation mode.
type Screen interface {
	Clear()
}

type nopScreen struct{}

func (nopScreen) Clear() {}

// Deck is the navigation state machine of one presentation session.
// It owns the slide sequence and the cursor, and runs slide code in the shared environment.
//
// A Deck is not safe for concurrent use; the session loop is its only caller.
type Deck struct {
	path   string
	slides []*domain.Slide
	init   *domain.Slide

	current      int
	topSlide     int
	pendingExec  bool
	execOnReturn bool

	presentation bool
	highlight    bool
	timer        bool
	started      time.Time
	now          func() time.Time

	runner      ports.CodeRunner
	env         ports.Environment
	out         io.Writer
	keys        ports.KeyWaiter
	history     ports.History
	screen      Screen
	highlighter Highlighter
	logger      *slog.Logger

	ps1, ps2 string
}

// Option configures a Deck.
type Option func(*Deck)

// WithPresentation starts the deck in presentation mode.
func WithPresentation(on bool) Option {
	return func(d *Deck) {
		d.presentation = on
	}
}

// WithHighlighter configures code highlighting and whether it starts enabled.
func WithHighlighter(h Highlighter, enabled bool) Option {
	return func(d *Deck) {
		d.highlighter = h
		d.highlight = enabled && h != nil
	}
}

// WithTimer makes Info report the elapsed session time.
func WithTimer(on bool) Option {
	return func(d *Deck) {
		d.timer = on
	}
}

// WithClock overrides the time source used by the timer.
func WithClock(now func() time.Time) Option {
	return func(d *Deck) {
		d.now = now
	}
}

// WithKeyWaiter configures how bullet acknowledgments are read.
// Without one, bullets are rendered without pausing.
func WithKeyWaiter(k ports.KeyWaiter) Option {
	return func(d *Deck) {
		d.keys = k
	}
}

// WithHistory receives every echoed code fragment.
func WithHistory(h ports.History) Option {
	return func(d *Deck) {
		d.history = h
	}
}

// WithScreen configures the terminal clearing strategy.
func WithScreen(s Screen) Option {
	return func(d *Deck) {
		d.screen = s
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) {
		d.logger = logger
	}
}

// WithPrompts overrides the prompts prefixed to echoed code.
func WithPrompts(ps1, ps2 string) Option {
	return func(d *Deck) {
		d.ps1, d.ps2 = ps1, ps2
	}
}

// NewDeck creates a deck over a parsed source. Program and deck output go to out.
func NewDeck(path string, parsed *compiler.Result, runner ports.CodeRunner, env ports.Environment, out io.Writer, opts ...Option) *Deck {
	if path == "" {
		path = "<no file>"
	}
	d := &Deck{
		path:   path,
		slides: parsed.Slides,
		init:   parsed.Init,
		runner: runner,
		env:    env,
		out:    out,
		screen: nopScreen{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		ps1:    domain.PrimaryPrompt,
		ps2:    domain.ContinuationPrompt,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Path returns the deck source identifier.
func (d *Deck) Path() string { return d.path }

// Len returns the number of navigable slides.
func (d *Deck) Len() int { return len(d.slides) }

// Current returns the cursor; 0 means no slide has been shown yet.
func (d *Deck) Current() int { return d.current }

// PendingExec reports whether the current slide's code is displayed but not yet run.
func (d *Deck) PendingExec() bool { return d.pendingExec }

// ExecOnReturn reports whether the next input prompt should offer to run deferred code.
func (d *Deck) ExecOnReturn() bool { return d.execOnReturn }

// ClearExecOnReturn is called by the console once it has shown the run cue.
func (d *Deck) ClearExecOnReturn() { d.execOnReturn = false }

// TopSlide returns the last slide rendered after a full screen clear, or 0.
func (d *Deck) TopSlide() int { return d.topSlide }

// ReloadTarget is the slide a reload-and-return should go back to.
func (d *Deck) ReloadTarget() int {
	if d.topSlide > 0 {
		return d.topSlide
	}
	return d.current
}

// Slides returns the navigable slides.
func (d *Deck) Slides() []*domain.Slide { return d.slides }

// Environment returns the environment slides execute in.
func (d *Deck) Environment() ports.Environment { return d.env }
