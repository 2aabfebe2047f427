package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the resolved theme; "auto" detects the terminal background.
func NewRenderer(theme Theme) func(string) (string, error) {
	opt := glamour.WithAutoStyle()
	switch theme.Mode {
	case ColorLight:
		opt = glamour.WithStandardStyle("light")
	case ColorDark:
		opt = glamour.WithStandardStyle("dark")
	case ColorNever:
		opt = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(100))
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
