package tui

import "github.com/muesli/termenv"

// Screen clears the terminal through termenv.
type Screen struct {
	out *termenv.Output
}

// NewScreen creates a screen writing to out.
func NewScreen(out *termenv.Output) *Screen {
	return &Screen{out: out}
}

// Clear wipes the terminal and homes the cursor.
func (s *Screen) Clear() {
	s.out.ClearScreen()
}
