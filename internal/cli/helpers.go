package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/sliderepl/internal/logging"
)

// SignalContext is a context cancelled by a process signal. It remembers which
// signal ended it.
type SignalContext struct {
	context.Context
	Cancel func()

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext creates a context that is cancelled on the given signals,
// SIGTERM when none are given.
// SIGINT is left to the runner's SignalManager, which interrupts running slide
// code instead of ending the session.
func NewSignalContext(parent context.Context, sigs ...os.Signal) *SignalContext {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.mu.Lock()
			sc.sig = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the slides on Stdout).
// A log file receives records at debug level regardless.
func createLogger(debug bool, logFile string) (*slog.Logger, io.Closer, error) {
	if logFile == "" {
		if debug {
			return logging.New(slog.LevelDebug), nopCloser{}, nil
		}
		return logging.NewNop(), nopCloser{}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if debug {
		return logging.New(slog.LevelDebug, f), f, nil
	}
	return logging.NewWriter(slog.LevelDebug, f), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%% %s\n", fmt.Sprintf(format, args...))
}
