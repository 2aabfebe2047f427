package runner

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/chzyer/readline"
)

// ReadlineReader implements ports.LineReader and ports.History with line
// editing, persistent history and tab completion.
type ReadlineReader struct {
	rl *readline.Instance
}

// NewReadlineReader opens a line editor on the terminal. historyFile may be empty.
func NewReadlineReader(historyFile string, completer readline.AutoCompleter) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          domain.PrimaryPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

// ReadLine reads one edited line. Ctrl+C yields ErrInterrupted, Ctrl+D io.EOF.
func (r *ReadlineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stop := context.AfterFunc(ctx, func() { r.rl.Close() })
	defer stop()

	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

// AddHistory records a line, e.g. echoed slide code, for recall.
func (r *ReadlineReader) AddHistory(line string) {
	_ = r.rl.SaveHistory(line)
}

// Close restores the terminal.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

var (
	_ ports.LineReader = (*ReadlineReader)(nil)
	_ ports.History    = (*ReadlineReader)(nil)
)

// Completer completes environment names and command tokens.
// The environment can be swapped when the deck reloads.
type Completer struct {
	env      ports.Environment
	commands []string
}

// NewCompleter creates a completer over the given command tokens.
func NewCompleter(commands []string) *Completer {
	return &Completer{commands: commands}
}

// SetEnvironment points completion at the names of env.
func (c *Completer) SetEnvironment(env ports.Environment) {
	c.env = env
}

// SetCommands replaces the command tokens offered after "!".
func (c *Completer) SetCommands(commands []string) {
	c.commands = commands
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	head := string(line[:pos])
	start := strings.LastIndexFunc(head, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '!' || r == '?')
	})
	prefix := head[start+1:]
	if prefix == "" {
		return nil, 0
	}

	var candidates []string
	if strings.HasPrefix(prefix, Sigil) || prefix == HelpToken {
		candidates = c.commands
	} else if c.env != nil {
		candidates = c.env.Names()
	}

	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) && cand != prefix {
			out = append(out, []rune(cand[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}
