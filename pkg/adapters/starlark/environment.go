package starlark

import (
	"io"
	"sync"

	"github.com/aretw0/sliderepl/pkg/ports"
	backend "go.starlark.net/starlark"
)

// Environment is the module globals shared by every fragment of a deck.
// It is discarded as a whole when the deck is reloaded.
type Environment struct {
	globals backend.StringDict
	out     io.Writer

	mu     sync.Mutex
	thread *backend.Thread
}

var _ ports.Environment = (*Environment)(nil)

// NewEnvironment creates an empty environment. print() writes to out.
func NewEnvironment(out io.Writer) *Environment {
	if out == nil {
		out = io.Discard
	}
	return &Environment{
		globals: make(backend.StringDict),
		out:     out,
	}
}

// Names returns the bound global names, sorted.
func (e *Environment) Names() []string {
	return e.globals.Keys()
}

// Lookup returns the Starlark value bound to name.
func (e *Environment) Lookup(name string) (any, bool) {
	v, ok := e.globals[name]
	return v, ok
}

// Set converts value with ToValue and binds it to name.
func (e *Environment) Set(name string, value any) error {
	v, err := ToValue(value)
	if err != nil {
		return err
	}
	e.globals[name] = v
	return nil
}

// Interrupt cancels the running fragment. It is safe to call from a signal handler goroutine.
func (e *Environment) Interrupt() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.thread == nil {
		return false
	}
	e.thread.Cancel("KeyboardInterrupt")
	return true
}

func (e *Environment) acquire(name string) *backend.Thread {
	thread := &backend.Thread{
		Name: name,
		Print: func(_ *backend.Thread, msg string) {
			io.WriteString(e.out, msg+"\n")
		},
	}
	e.mu.Lock()
	e.thread = thread
	e.mu.Unlock()
	return thread
}

func (e *Environment) release() {
	e.mu.Lock()
	e.thread = nil
	e.mu.Unlock()
}
