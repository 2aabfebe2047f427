package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	noop := func(context.Context, []string) (Signal, error) { return Signal{}, nil }

	t.Run("Duplicate token", func(t *testing.T) {
		r := NewRegistry(&bytes.Buffer{})
		require.NoError(t, r.Register(Command{Name: "next", Abbrev: "n", Handler: noop}))
		err := r.Register(Command{Name: "nope", Abbrev: "n", Handler: noop})
		assert.Error(t, err)
		_, ok := r.Lookup("!nope")
		assert.False(t, ok, "a rejected command registers no token")
	})

	t.Run("Tokens in registration order", func(t *testing.T) {
		r := NewRegistry(&bytes.Buffer{})
		require.NoError(t, r.Register(Command{Name: "next", Abbrev: "n", Handler: noop}))
		require.NoError(t, r.Register(Command{Name: "info", Handler: noop}))
		assert.Equal(t, []string{"?", "!next", "!n", "!info"}, r.Tokens())
	})

	t.Run("Help uses renderer", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRegistry(out)
		require.NoError(t, r.Register(Command{Name: "next", Abbrev: "n", Help: "Advance.", Handler: noop}))
		r.SetRenderer(func(s string) (string, error) { return strings.ToUpper(s), nil })

		r.PrintHelp()
		assert.Contains(t, out.String(), "| `!NEXT` / `!N` | ADVANCE. |")
	})

	t.Run("Plain help alignment", func(t *testing.T) {
		out := &bytes.Buffer{}
		r := NewRegistry(out)
		require.NoError(t, r.Register(Command{Name: "next", Abbrev: "n", Help: "Advance.", Handler: noop}))

		r.PrintHelp()
		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "% !next / !n"+strings.Repeat(" ", 13)+"Advance.", lines[1])
	})
}

func TestDeckRegistry_Commands(t *testing.T) {
	r := NewDeckRegistry(&fakeDeck{}, &bytes.Buffer{})

	for _, tok := range []string{
		"?", "!next", "!n", "!prev", "!p", "!show", "!sh", "!goto", "!g", "!info", "!i",
		"!rerun", "!re", "!presentation", "!pr", "!highlight", "!h", "!reload", "!rl", "!quit", "!q",
	} {
		_, ok := r.Lookup(tok)
		assert.True(t, ok, tok)
	}

	show, _ := r.Lookup("!show")
	assert.Equal(t, 1, show.MinArgs)
	assert.Equal(t, 1, show.MaxArgs)
}
