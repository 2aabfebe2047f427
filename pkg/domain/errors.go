package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSlides is returned when a deck source yields no navigable slides.
var ErrNoSlides = errors.New("no slides")

// ErrIncomplete is returned by a backend when the accumulated text is not yet
// a complete statement and more input may complete it.
var ErrIncomplete = errors.New("incomplete input")

// ErrIncludeCycle is returned when a "### file::" include refers back to a file being parsed.
var ErrIncludeCycle = errors.New("include cycle")

// FatalFragmentError reports code left at the end of a slide that does not compile.
type FatalFragmentError struct {
	File  string
	Slide int
	Text  string
	Err   error
}

func (e *FatalFragmentError) Error() string {
	return fmt.Sprintf("%s: slide %d: cannot compile code:\n%s\n%v",
		e.File, e.Slide, strings.TrimRight(e.Text, "\n"), e.Err)
}

func (e *FatalFragmentError) Unwrap() error {
	return e.Err
}

// Traceback returns the full trace carried by a backend execution error,
// falling back to the error message.
func Traceback(err error) string {
	var bt interface{ Backtrace() string }
	if errors.As(err, &bt) {
		return bt.Backtrace()
	}
	return err.Error()
}
