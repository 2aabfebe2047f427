package runner

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sigil prefixes every deck command typed at the console.
const Sigil = "!"

// HelpToken lists the commands.
const HelpToken = "?"

// Handler executes a command whose arity has already been checked.
type Handler func(ctx context.Context, args []string) (Signal, error)

// Command describes one console command.
type Command struct {
	Name    string
	Abbrev  string
	MinArgs int
	MaxArgs int
	// Usage names the arguments, e.g. "slide_number".
	Usage   string
	Help    string
	Handler Handler
}

// Tokens returns the spellings that invoke the command.
func (c *Command) Tokens() []string {
	if c.Name == HelpToken {
		return []string{HelpToken}
	}
	tokens := []string{Sigil + c.Name}
	if c.Abbrev != "" {
		tokens = append(tokens, Sigil+c.Abbrev)
	}
	return tokens
}

// ContentRenderer transforms markdown before output (e.g. glamour for a TUI).
type ContentRenderer func(string) (string, error)

// Registry maps command tokens to handlers. Dispatch is a lookup followed by an explicit arity check.
type Registry struct {
	commands []*Command
	index    map[string]*Command
	out      io.Writer
	renderer ContentRenderer
}

// NewRegistry creates an empty registry. The help command is always present.
func NewRegistry(out io.Writer) *Registry {
	r := &Registry{index: make(map[string]*Command), out: out}
	_ = r.Register(Command{
		Name: HelpToken,
		Help: "Display this help message.",
		Handler: func(context.Context, []string) (Signal, error) {
			r.PrintHelp()
			return Signal{Kind: Continue}, nil
		},
	})
	return r
}

// SetRenderer renders the help table as markdown.
func (r *Registry) SetRenderer(renderer ContentRenderer) {
	r.renderer = renderer
}

// Register adds a command. A token already taken is an error.
func (r *Registry) Register(cmd Command) error {
	c := &cmd
	for _, tok := range c.Tokens() {
		if _, exists := r.index[tok]; exists {
			return fmt.Errorf("command %q already registered", tok)
		}
	}
	for _, tok := range c.Tokens() {
		r.index[tok] = c
	}
	r.commands = append(r.commands, c)
	return nil
}

// Lookup finds the command for a typed token.
func (r *Registry) Lookup(token string) (*Command, bool) {
	c, ok := r.index[token]
	return c, ok
}

// Tokens returns every registered spelling, in registration order.
func (r *Registry) Tokens() []string {
	var out []string
	for _, c := range r.commands {
		out = append(out, c.Tokens()...)
	}
	return out
}

// Dispatch invokes cmd after checking its arity. A mismatch prints a usage
// hint using the token as typed and leaves the deck untouched.
func (r *Registry) Dispatch(ctx context.Context, token string, cmd *Command, args []string) (Signal, error) {
	if len(args) < cmd.MinArgs || len(args) > cmd.MaxArgs {
		fmt.Fprintln(r.out, strings.TrimSpace("usage: "+token+" "+cmd.Usage))
		return Signal{Kind: Continue}, nil
	}
	return cmd.Handler(ctx, args)
}

// PrintHelp lists the commands with their abbreviations.
func (r *Registry) PrintHelp() {
	if r.renderer != nil {
		var b strings.Builder
		b.WriteString("| Command | Description |\n|---|---|\n")
		for _, c := range r.commands {
			fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(c.Tokens(), "` / `"), c.Help)
		}
		if out, err := r.renderer(b.String()); err == nil {
			fmt.Fprint(r.out, out)
			return
		}
	}
	for _, c := range r.commands {
		start := "% " + strings.Join(c.Tokens(), " / ")
		pad := max(1, 25-len(start))
		fmt.Fprintf(r.out, "%s%s%s\n", start, strings.Repeat(" ", pad), c.Help)
	}
}

// NewDeckRegistry builds the standard deck command table.
func NewDeckRegistry(deck Deck, out io.Writer) *Registry {
	r := NewRegistry(out)
	cont := Signal{Kind: Continue}

	slideArg := func(name string, fn func(ctx context.Context, n int)) Handler {
		return func(ctx context.Context, args []string) (Signal, error) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(out, "%% Usage: %s slide_number\n", name)
				return cont, nil
			}
			fn(ctx, n)
			return cont, nil
		}
	}
	simple := func(fn func()) Handler {
		return func(context.Context, []string) (Signal, error) {
			fn()
			return cont, nil
		}
	}
	nav := func(fn func(ctx context.Context)) Handler {
		return func(ctx context.Context, _ []string) (Signal, error) {
			fn(ctx)
			return cont, nil
		}
	}

	for _, c := range []Command{
		{Name: "next", Abbrev: "n", Help: "Advance to the next slide.", Handler: nav(deck.Next)},
		{Name: "prev", Abbrev: "p", Help: "Advance to the previous slide.", Handler: nav(deck.Prev)},
		{Name: "show", Abbrev: "sh", MinArgs: 1, MaxArgs: 1, Usage: "slide_number",
			Help: "show slide <number>, display a slide without executing it.", Handler: slideArg("show", deck.Show)},
		{Name: "goto", Abbrev: "g", MinArgs: 1, MaxArgs: 1, Usage: "slide_number",
			Help: "goto slide <number>", Handler: slideArg("goto", deck.Goto)},
		{Name: "info", Abbrev: "i", Help: "Display information about this slide deck.", Handler: simple(deck.Info)},
		{Name: "rerun", Abbrev: "re", Help: "Re-run the current slide.", Handler: nav(deck.Rerun)},
		{Name: "presentation", Abbrev: "pr", Help: "Toggle presentation mode", Handler: simple(deck.TogglePresentation)},
		{Name: "highlight", Abbrev: "h", Help: "Toggle code highlighting.", Handler: simple(deck.ToggleHighlight)},
		{Name: "reload", Abbrev: "rl", Help: "Reload the deck from disk and return to this slide.",
			Handler: func(context.Context, []string) (Signal, error) {
				return ReloadAt(deck.ReloadTarget()), nil
			}},
		{Name: "quit", Abbrev: "q", Help: "Quit to menu / command prompt", Handler: func(context.Context, []string) (Signal, error) {
			return Signal{Kind: Quit}, nil
		}},
	} {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}
