package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/sliderepl"
	"github.com/aretw0/sliderepl/internal/config"
	"github.com/aretw0/sliderepl/internal/presentation/tui"
	"github.com/aretw0/sliderepl/pkg/adapters/starlark"
	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/aretw0/sliderepl/pkg/runner"
	"golang.org/x/term"
)

// App wires the terminal collaborators shared by every deck of one invocation:
// the line reader, signal routing, theme, and the optional file watcher.
type App struct {
	opts   config.Options
	logger *slog.Logger
	theme  tui.Theme
	out    io.Writer

	reader    ports.LineReader
	history   ports.History
	completer *runner.Completer
	signals   *runner.SignalManager
	watcher   *Watcher

	closers []io.Closer
}

// NewApp prepares an App reading from in and presenting on out.
func NewApp(opts config.Options, in *os.File, out *os.File) (*App, error) {
	mode, err := tui.ParseColorMode(opts.Color)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := createLogger(opts.Debug, opts.LogFile)
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:    opts,
		logger:  logger,
		theme:   tui.Resolve(mode, opts.Style, out),
		out:     out,
		signals: runner.NewSignalManager(),
		closers: []io.Closer{logCloser},
	}
	a.completer = runner.NewCompleter(nil)

	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		rl, err := runner.NewReadlineReader(opts.History, a.completer)
		if err != nil {
			return nil, err
		}
		a.reader, a.history = rl, rl
		a.closers = append(a.closers, rl)
	} else {
		a.reader = runner.NewTextReader(in, out, runner.WithInterrupts(a.signals.Interrupts()))
	}

	if opts.Watch {
		w, err := NewWatcher(logger, out)
		if err != nil {
			return nil, err
		}
		a.watcher = w
		a.closers = append(a.closers, w)
	}
	return a, nil
}

// Close releases the terminal and stops background watchers.
func (a *App) Close() error {
	a.signals.Stop()
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}

// RunDeck presents one deck file until the user quits it.
func (a *App) RunDeck(ctx context.Context, path string) error {
	session := sliderepl.New(path, a.sessionOptions()...)
	return session.Run(ctx)
}

func (a *App) sessionOptions() []sliderepl.Option {
	backend := starlark.New()
	opts := []sliderepl.Option{
		sliderepl.WithBackend(backend),
		sliderepl.WithReader(a.reader),
		sliderepl.WithKeyWaiter(&runner.LineKeyWaiter{Reader: a.reader}),
		sliderepl.WithOutput(a.out),
		sliderepl.WithLogger(a.logger),
		sliderepl.WithShort(a.opts.Short),
		sliderepl.WithSlideDefaults(domain.SlideFlags{NoReturn: a.opts.NoReturn, NoEcho: a.opts.NoEcho}),
		sliderepl.WithPresentation(a.opts.Presentation),
		sliderepl.WithTimer(a.opts.Timer),
		sliderepl.WithRunAll(a.opts.RunAll),
		sliderepl.WithGlobals(a.opts.Globals),
		sliderepl.WithScreen(tui.NewScreen(a.theme.Output)),
		sliderepl.WithBanner(func(path string) string { return tui.Banner(a.theme.Output, path) }),
		sliderepl.WithHelpRenderer(tui.NewRenderer(a.theme)),
		sliderepl.OnLoad(a.loaded),
	}
	if a.history != nil {
		opts = append(opts, sliderepl.WithHistory(a.history))
	}
	if a.theme.Style != "" {
		opts = append(opts, sliderepl.WithHighlighter(tui.NewHighlighter(a.theme.Style), a.theme.Highlight && a.opts.Highlight))
	}
	if a.watcher != nil {
		opts = append(opts, sliderepl.WithStaleCheck(a.watcher.Stale))
	}
	return opts
}

// loaded points the long-lived collaborators at the environment of a fresh deck.
func (a *App) loaded(l sliderepl.Loaded) {
	a.completer.SetEnvironment(l.Env)
	a.completer.SetCommands(l.Registry.Tokens())
	a.signals.SetTarget(l.Env)
	if a.watcher != nil {
		if err := a.watcher.Watch(l.Files); err != nil {
			a.logger.Warn("watch failed", "err", err)
		}
	}
	a.logger.Debug("deck loaded", "path", l.Path, "slides", len(l.Slides), "files", len(l.Files))
}

// Menu lists the chapters of the slides directory and runs the one picked.
func (a *App) Menu(ctx context.Context) error {
	chapters, err := ListChapters(a.opts.Slides, a.opts.Extensions)
	if err != nil {
		return err
	}
	return NewMenu(chapters, a.reader, a.theme.Output, a.RunDeck).Run(ctx)
}
