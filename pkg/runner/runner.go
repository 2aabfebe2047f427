package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
)

// SignalKind tells the session loop what to do after a console step.
type SignalKind int

const (
	// Continue keeps the session running.
	Continue SignalKind = iota
	// Quit ends the session normally.
	Quit
	// Reload discards the deck and environment, reparses the source and returns to Signal.Slide.
	Reload
)

func (k SignalKind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Reload:
		return "reload"
	}
	return "continue"
}

// Signal is the result of one console step.
type Signal struct {
	Kind  SignalKind
	Slide int
}

// ReloadAt requests a full deck rebuild returning to slide n.
func ReloadAt(n int) Signal {
	return Signal{Kind: Reload, Slide: n}
}

// Deck is the navigation surface the console drives.
type Deck interface {
	Next(ctx context.Context)
	Prev(ctx context.Context)
	Rerun(ctx context.Context)
	Show(ctx context.Context, n int)
	Goto(ctx context.Context, n int)
	Info()
	TogglePresentation()
	ToggleHighlight()

	Current() int
	Len() int
	ExecOnReturn() bool
	ClearExecOnReturn()
	ReloadTarget() int
}

// RunCue is the prompt offered when displayed code waits to be run.
const RunCue = "[press return to run code]"

// Runner is the console driver loop. It reads one line per step and turns it
// into a deck command or interpreter input.
type Runner struct {
	deck     Deck
	backend  ports.CodeRunner
	env      ports.Environment
	reader   ports.LineReader
	registry *Registry

	out    io.Writer
	logger *slog.Logger
	stale  func() bool

	ps1, ps2 string
}

// NewRunner creates a console over deck. Interpreter input is compiled by
// backend and runs in env, the same environment the deck executes slides in.
func NewRunner(deck Deck, backend ports.CodeRunner, env ports.Environment, reader ports.LineReader, opts ...Option) *Runner {
	r := &Runner{
		deck:    deck,
		backend: backend,
		env:     env,
		reader:  reader,
		out:     os.Stdout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		ps1:     domain.PrimaryPrompt,
		ps2:     domain.ContinuationPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = NewDeckRegistry(deck, r.out)
	}
	return r
}

// Registry returns the command table.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Run steps until a step returns a signal other than Continue or an error.
func (r *Runner) Run(ctx context.Context) (Signal, error) {
	for {
		sig, err := r.Step(ctx)
		if err != nil || sig.Kind != Continue {
			return sig, err
		}
	}
}

// Step reads and handles one line of input.
func (r *Runner) Step(ctx context.Context) (Signal, error) {
	if r.isStale() {
		return ReloadAt(r.deck.Current()), nil
	}

	prompt := r.ps1
	if r.deck.ExecOnReturn() {
		fmt.Fprintln(r.out)
		prompt = RunCue
	}
	line, err := r.read(ctx, prompt)
	r.deck.ClearExecOnReturn()
	if err != nil {
		return r.readFailed(err)
	}

	// A change noticed while the prompt was waiting wins over the line typed.
	if r.isStale() {
		return ReloadAt(r.deck.Current()), nil
	}
	return r.handle(ctx, line)
}

func (r *Runner) isStale() bool {
	if r.stale == nil || !r.stale() {
		return false
	}
	r.logger.Info("deck source changed, reloading", "slide", r.deck.Current())
	return true
}

func (r *Runner) handle(ctx context.Context, line string) (Signal, error) {
	if strings.TrimSpace(line) == "" {
		r.deck.Next(ctx)
		return Signal{Kind: Continue}, nil
	}

	tokens := strings.Fields(line)
	if cmd, ok := r.registry.Lookup(tokens[0]); ok {
		r.logger.Debug("command", "name", cmd.Name, "args", tokens[1:])
		return r.registry.Dispatch(ctx, tokens[0], cmd, tokens[1:])
	}
	return r.eval(ctx, line)
}

// eval runs interpreter input, reading continuation lines while the text is incomplete.
func (r *Runner) eval(ctx context.Context, first string) (Signal, error) {
	text := first + "\n"
	for {
		frag, err := r.backend.Compile("<stdin>", text, domain.ModeSingle)
		if err == nil {
			if err := r.backend.Exec(r.env, frag); err != nil {
				fmt.Fprintln(r.out, domain.Traceback(err))
			}
			return Signal{Kind: Continue}, nil
		}
		if !errors.Is(err, domain.ErrIncomplete) {
			fmt.Fprintln(r.out, err)
			return Signal{Kind: Continue}, nil
		}

		line, err := r.read(ctx, r.ps2)
		if err != nil {
			return r.readFailed(err)
		}
		text += line + "\n"
	}
}

func (r *Runner) read(ctx context.Context, prompt string) (string, error) {
	line, err := r.reader.ReadLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	return CleanLine(line)
}

func (r *Runner) readFailed(err error) (Signal, error) {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(r.out)
		return Signal{Kind: Quit}, nil
	case errors.Is(err, ErrInterrupted):
		fmt.Fprintln(r.out, "KeyboardInterrupt")
		return Signal{Kind: Continue}, nil
	case errors.Is(err, ErrLineTooLarge), errors.Is(err, ErrInvalidUTF8):
		fmt.Fprintf(r.out, "%% %v\n", err)
		return Signal{Kind: Continue}, nil
	}
	return Signal{Kind: Quit}, err
}
