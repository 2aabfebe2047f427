package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlighter colorizes slide code for a 256-color terminal.
type Highlighter struct {
	lexer string
	style string
}

// NewHighlighter creates a highlighter for the slide language using a chroma style.
func NewHighlighter(style string) *Highlighter {
	return &Highlighter{lexer: "python", style: style}
}

const resetSequence = "\x1b[0m"

// Highlight returns code with terminal color sequences. Trailing whitespace is
// kept outside the colored text, so the final reset never lands after the last
// newline. On failure the code is returned unchanged.
func (h *Highlighter) Highlight(code string) string {
	body := strings.TrimRight(code, " \t\n")
	if body == "" {
		return code
	}
	var b strings.Builder
	if err := quick.Highlight(&b, body, h.lexer, "terminal256", h.style); err != nil {
		return code
	}
	out := b.String()
	for {
		trimmed := strings.TrimSuffix(strings.TrimRight(out, "\n"), resetSequence)
		if trimmed == out {
			break
		}
		out = trimmed
	}
	return out + resetSequence + code[len(body):]
}
