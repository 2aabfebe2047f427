package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Banner returns the session greeting printed once when a deck starts.
// The heading line is colored when out supports it.
func Banner(out *termenv.Output, path string) string {
	heading := "%% Running Deck: " + path
	if out != nil {
		heading = out.String(heading).Foreground(out.Color("#818cf8")).Bold().String()
	}

	var b strings.Builder
	fmt.Fprintln(&b, "%%")
	fmt.Fprintln(&b, heading)
	for _, line := range []string{
		"%%",
		"%% This is an interactive Starlark prompt.",
		`%% Enter "?" for command list.`,
		"%% Commands always begin with a ! symbol",
		`%% Advance slides by pressing "enter",`,
		`%% or entering the "!n" or "!next" command.`,
		`%% Quit out of this deck by entering the "!q" or "!quit" command.`,
	} {
		fmt.Fprintln(&b, line)
	}
	return b.String()
}
