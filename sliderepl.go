package sliderepl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sliderepl/internal/compiler"
	"github.com/aretw0/sliderepl/internal/runtime"
	"github.com/aretw0/sliderepl/pkg/adapters/file"
	"github.com/aretw0/sliderepl/pkg/adapters/starlark"
	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/aretw0/sliderepl/pkg/runner"
)

// Highlighter colorizes echoed slide code.
type Highlighter interface {
	Highlight(code string) string
}

// Screen clears the terminal in presentation mode.
type Screen interface {
	Clear()
}

// Loaded describes a freshly built deck. It is passed to the OnLoad hook
// after every parse, including reloads.
type Loaded struct {
	Path     string
	Slides   []*domain.Slide
	Files    []string
	Env      ports.Environment
	Registry *runner.Registry
}

// Session is the high-level entry point: it runs one deck file interactively,
// rebuilding it from scratch whenever the console asks for a reload.
type Session struct {
	path    string
	loader  ports.SourceLoader
	backend ports.CodeRunner
	reader  ports.LineReader
	keys    ports.KeyWaiter
	history ports.History
	out     io.Writer
	logger  *slog.Logger

	short        bool
	defaults     domain.SlideFlags
	presentation bool
	timer        bool
	runAll       bool
	highlighter  Highlighter
	highlight    bool
	screen       Screen
	globals      map[string]any

	banner   func(path string) string
	renderer runner.ContentRenderer
	stale    func() bool
	onLoad   func(Loaded)
	now      func() time.Time
}

// New creates a session over the deck at path. By default slides are read from the
// file system, code runs on the Starlark backend, and input comes from stdin.
func New(path string, opts ...Option) *Session {
	s := &Session{
		path:    path,
		loader:  file.New(),
		backend: starlark.New(),
		out:     os.Stdout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reader == nil {
		s.reader = runner.NewTextReader(os.Stdin, s.out)
	}
	if s.path != "" {
		s.logger = s.logger.With("deck", filepath.Base(s.path))
	}
	return s
}

// Parse reads the deck without running anything.
func (s *Session) Parse() (*compiler.Result, error) {
	p := compiler.NewParser(s.loader, s.backend,
		compiler.WithShort(s.short),
		compiler.WithDefaults(s.defaults),
		compiler.WithLogger(s.logger),
	)
	return p.Parse(s.path)
}

// Run presents the deck until the user quits or input ends. A reload request
// discards the deck and its environment, reparses the source, runs the init
// slide again and returns to the requested slide without the startup banner.
func (s *Session) Run(ctx context.Context) error {
	target, resumed := 0, false
	for {
		sig, err := s.runOnce(ctx, target, resumed)
		if err != nil {
			return err
		}
		if sig.Kind != runner.Reload {
			s.logger.Debug("session ended", "signal", sig.Kind)
			return nil
		}
		s.logger.Info("reloading deck", "slide", sig.Slide)
		target, resumed = sig.Slide, true
	}
}

func (s *Session) runOnce(ctx context.Context, target int, resumed bool) (runner.Signal, error) {
	parsed, err := s.Parse()
	if err != nil {
		return runner.Signal{}, err
	}

	env := s.backend.NewEnvironment(s.out)
	for name, v := range s.globals {
		if err := env.Set(name, v); err != nil {
			return runner.Signal{}, fmt.Errorf("failed to seed global %q: %w", name, err)
		}
	}

	deck := runtime.NewDeck(s.path, parsed, s.backend, env, s.out, s.deckOptions()...)
	r := runner.NewRunner(deck, s.backend, env, s.reader,
		runner.WithOutput(s.out),
		runner.WithLogger(s.logger),
		runner.WithStaleCheck(s.stale),
	)
	if s.renderer != nil {
		r.Registry().SetRenderer(s.renderer)
	}
	if s.onLoad != nil {
		s.onLoad(Loaded{
			Path:     s.path,
			Slides:   parsed.Slides,
			Files:    parsed.Files,
			Env:      env,
			Registry: r.Registry(),
		})
	}

	deck.Start()
	deck.RunInit()

	if s.runAll {
		deck.RunAll(ctx)
		return runner.Signal{Kind: runner.Quit}, nil
	}
	if !resumed && s.banner != nil {
		fmt.Fprint(s.out, s.banner(s.path))
	}
	if target > 0 {
		deck.Goto(ctx, min(target, deck.Len()))
	}

	sig, err := r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return runner.Signal{Kind: runner.Quit}, nil
	}
	return sig, err
}

func (s *Session) deckOptions() []runtime.Option {
	opts := []runtime.Option{
		runtime.WithPresentation(s.presentation),
		runtime.WithTimer(s.timer),
		runtime.WithClock(s.now),
		runtime.WithLogger(s.logger),
	}
	if s.highlighter != nil {
		opts = append(opts, runtime.WithHighlighter(s.highlighter, s.highlight))
	}
	if s.keys != nil {
		opts = append(opts, runtime.WithKeyWaiter(s.keys))
	}
	if s.history != nil {
		opts = append(opts, runtime.WithHistory(s.history))
	}
	if s.screen != nil {
		opts = append(opts, runtime.WithScreen(s.screen))
	}
	return opts
}
