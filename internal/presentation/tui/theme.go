package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	ColorNever ColorMode = "never"
	ColorAuto  ColorMode = "auto"
	ColorLight ColorMode = "light"
	ColorDark  ColorMode = "dark"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorNever, ColorAuto, ColorLight, ColorDark:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want never, auto, light or dark)", s)
}

// Theme is the resolved terminal styling of a session.
type Theme struct {
	Mode ColorMode
	// Highlight reports whether code highlighting starts enabled.
	Highlight bool
	// Style is the chroma style used for code.
	Style  string
	Output *termenv.Output
}

const (
	darkStyle  = "monokai"
	lightStyle = "tango"
)

// Resolve decides colors for w. In auto mode colors are used only on a terminal,
// and the background brightness picks the default style. A non-empty style wins.
func Resolve(mode ColorMode, style string, w io.Writer) Theme {
	out := termenv.NewOutput(w)
	t := Theme{Mode: mode, Output: out}

	switch mode {
	case ColorNever:
		t.Output = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
		return t
	case ColorLight:
		t.Style = lightStyle
	case ColorDark:
		t.Style = darkStyle
	default:
		if !isTerminal(w) {
			t.Output = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
			return t
		}
		t.Style = lightStyle
		if out.HasDarkBackground() {
			t.Style = darkStyle
		}
	}
	if style != "" {
		t.Style = style
	}
	t.Highlight = true
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
