package ports

import (
	"io"

	"github.com/aretw0/sliderepl/pkg/domain"
)

// Compiler splits deck text into executable fragments.
// Compile returns domain.ErrIncomplete (wrapped) when more lines may complete the
// statement, any other error for invalid syntax, and a fragment otherwise.
type Compiler interface {
	Compile(name, text string, mode domain.CompileMode) (*domain.Fragment, error)
}

// CodeRunner is the pluggable execution backend for the language being presented.
type CodeRunner interface {
	Compiler

	// Exec runs a fragment against the shared environment.
	// Runtime errors are returned; they never invalidate the environment.
	Exec(env Environment, frag *domain.Fragment) error

	// NewEnvironment creates an empty environment whose program output goes to out.
	NewEnvironment(out io.Writer) Environment
}

// Environment is the name-to-value mapping shared by every execution of one deck.
type Environment interface {
	// Names returns the names bound in the environment, sorted.
	Names() []string

	// Lookup returns the backend value bound to name.
	Lookup(name string) (any, bool)

	// Set binds a Go value, converting it to the backend representation.
	Set(name string, value any) error

	// Interrupt cancels the execution in progress, if any, and reports whether one was running.
	Interrupt() bool
}
