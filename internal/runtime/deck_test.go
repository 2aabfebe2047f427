package runtime_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/sliderepl/internal/compiler"
	"github.com/aretw0/sliderepl/internal/runtime"
	"github.com/aretw0/sliderepl/pkg/adapters/memory"
	"github.com/aretw0/sliderepl/pkg/adapters/starlark"
	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKeyWaiter struct {
	mock.Mock
}

func (m *MockKeyWaiter) WaitKey(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) AddHistory(line string) {
	m.Called(line)
}

type countingScreen struct {
	clears int
}

func (s *countingScreen) Clear() { s.clears++ }

type tagHighlighter struct{}

func (tagHighlighter) Highlight(code string) string { return "<hl>" + code + "</hl>" }

type fixture struct {
	deck *runtime.Deck
	env  ports.Environment
	out  *bytes.Buffer
}

func newFixture(t *testing.T, src string, opts ...runtime.Option) *fixture {
	t.Helper()
	backend := starlark.New()
	parsed, err := compiler.NewParser(memory.NewLoader(map[string]string{"deck.star": src}), backend).Parse("deck.star")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	env := backend.NewEnvironment(out)
	deck := runtime.NewDeck("deck.star", parsed, backend, env, out, opts...)
	return &fixture{deck: deck, env: env, out: out}
}

func (f *fixture) value(name string) string {
	v, ok := f.env.Lookup(name)
	if !ok {
		return "<unbound>"
	}
	return fmt.Sprint(v)
}

const trackedDeck = `### slide::s
runs = []
### slide::
runs.append(1)
### slide::p
runs.append(2)
### slide::
runs.append(3)
### slide::p
runs.append(4)
`

func TestDeck_TwoSlideExample(t *testing.T) {
	f := newFixture(t, "### slide::\n# Title line\nx = 1\n### slide::\ny = 2\n")
	ctx := context.Background()

	f.deck.Next(ctx)
	f.deck.Next(ctx)

	assert.Equal(t, "1", f.value("x"))
	assert.Equal(t, "2", f.value("y"))
	assert.Equal(t, 2, f.deck.Current())
	assert.Contains(t, f.out.String(), "| Title line")
	assert.Contains(t, f.out.String(), ">>> x = 1\n")
}

func TestDeck_Next(t *testing.T) {
	ctx := context.Background()

	t.Run("No Exec Slide Defers", func(t *testing.T) {
		f := newFixture(t, "### slide::p\na = 1\n")

		f.deck.Next(ctx)
		assert.Equal(t, "<unbound>", f.value("a"))
		assert.True(t, f.deck.PendingExec())
		assert.True(t, f.deck.ExecOnReturn())
		assert.Equal(t, 1, f.deck.Current())

		f.deck.Next(ctx)
		assert.Equal(t, "1", f.value("a"))
		assert.False(t, f.deck.PendingExec())
		assert.False(t, f.deck.ExecOnReturn())
		assert.Equal(t, 1, f.deck.Current())
		assert.Equal(t, 1, strings.Count(f.out.String(), ">>> a = 1"), "deferred code is not echoed twice")
	})

	t.Run("Never Exec Slide", func(t *testing.T) {
		f := newFixture(t, "### slide::x\na = 1\n### slide::\nb = 2\n")

		f.deck.Next(ctx)
		assert.False(t, f.deck.PendingExec())
		assert.Contains(t, f.out.String(), ">>> a = 1")

		f.deck.Next(ctx)
		assert.Equal(t, 2, f.deck.Current())
		assert.Equal(t, "<unbound>", f.value("a"))

		f.deck.Goto(ctx, 1)
		assert.Equal(t, "<unbound>", f.value("a"), "forced runs still skip never-exec slides")
	})

	t.Run("End Of Show", func(t *testing.T) {
		f := newFixture(t, "### slide::\na = 1\n")
		f.deck.Next(ctx)
		f.deck.Next(ctx)
		assert.Equal(t, 1, f.deck.Current())
		assert.Contains(t, f.out.String(), "% The slideshow is over.")
	})

	t.Run("Pending Slide Without Code Does Not Defer", func(t *testing.T) {
		f := newFixture(t, "### slide::p\n# only words\n")
		f.deck.Next(ctx)
		assert.False(t, f.deck.PendingExec())
	})
}

func TestDeck_Goto(t *testing.T) {
	ctx := context.Background()

	t.Run("Forward Runs Intermediate Slides", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		require.True(t, f.deck.RunInit())

		f.deck.Goto(ctx, 3)
		assert.Equal(t, "[1, 2, 3]", f.value("runs"), "no-exec slide 2 is forced on the way")
		assert.Equal(t, 3, f.deck.Current())
		assert.False(t, f.deck.PendingExec())
	})

	t.Run("Forward Target Keeps Deferral", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.RunInit()

		f.deck.Goto(ctx, 4)
		assert.Equal(t, "[1, 2, 3]", f.value("runs"))
		assert.True(t, f.deck.PendingExec())

		f.deck.Next(ctx)
		assert.Equal(t, "[1, 2, 3, 4]", f.value("runs"))
	})

	t.Run("Backward Forces Only The Target", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.RunInit()
		f.deck.Goto(ctx, 3)

		f.deck.Goto(ctx, 2)
		assert.Equal(t, "[1, 2, 3, 2]", f.value("runs"))
		assert.Equal(t, 2, f.deck.Current())
		assert.False(t, f.deck.PendingExec())
	})

	t.Run("Clears Pending", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.RunInit()
		f.deck.Goto(ctx, 4)
		require.True(t, f.deck.PendingExec())

		f.deck.Goto(ctx, 1)
		assert.False(t, f.deck.PendingExec())
		assert.False(t, f.deck.ExecOnReturn())
	})

	t.Run("Out Of Range", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.Goto(ctx, 9)
		f.deck.Goto(ctx, 0)
		assert.Equal(t, 0, f.deck.Current())
		assert.Contains(t, f.out.String(), "% Slide #9 is out of range (1 - 4).")
		assert.Contains(t, f.out.String(), "% Slide #0 is out of range (1 - 4).")
	})
}

func TestDeck_Show(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, trackedDeck)
	f.deck.RunInit()
	f.deck.Next(ctx)

	for n := 1; n <= f.deck.Len(); n++ {
		f.deck.Show(ctx, n)
		assert.Equal(t, 1, f.deck.Current())
		assert.False(t, f.deck.PendingExec())
		assert.False(t, f.deck.ExecOnReturn())
	}
	assert.Equal(t, "[1]", f.value("runs"))
	assert.Contains(t, f.out.String(), ">>> runs.append(4)")

	f.deck.Show(ctx, 5)
	assert.Contains(t, f.out.String(), "% Slide #5 is out of range (1 - 4).")
}

func TestDeck_PrevAndRerun(t *testing.T) {
	ctx := context.Background()

	t.Run("Prev", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.RunInit()

		f.deck.Prev(ctx)
		assert.Contains(t, f.out.String(), "% No slide has been shown yet.")

		f.deck.Next(ctx)
		f.deck.Prev(ctx)
		assert.Contains(t, f.out.String(), "% Already at the first slide.")
		assert.Equal(t, 1, f.deck.Current())

		f.deck.Goto(ctx, 3)
		f.deck.Prev(ctx)
		assert.Equal(t, 2, f.deck.Current())
		assert.True(t, f.deck.PendingExec(), "no-exec slide defers again")
		assert.Equal(t, "[1, 2, 3]", f.value("runs"))
	})

	t.Run("Rerun", func(t *testing.T) {
		f := newFixture(t, trackedDeck)
		f.deck.RunInit()

		f.deck.Rerun(ctx)
		assert.Contains(t, f.out.String(), "% No slide has been shown yet.")

		f.deck.Next(ctx)
		f.deck.Rerun(ctx)
		assert.Equal(t, "[1, 1]", f.value("runs"))
		assert.Equal(t, 1, f.deck.Current())
	})
}

func TestDeck_RunAll(t *testing.T) {
	f := newFixture(t, trackedDeck)
	f.deck.RunInit()
	f.deck.RunAll(context.Background())

	assert.Equal(t, "[1, 2, 3, 4]", f.value("runs"))
	assert.Equal(t, 4, f.deck.Current())
	assert.False(t, f.deck.PendingExec())
}

func TestDeck_FragmentErrorsDoNotAbortSlide(t *testing.T) {
	f := newFixture(t, "### slide::\nx = 1 / 0\nz = 2\n")
	f.deck.Next(context.Background())

	assert.Contains(t, f.out.String(), "division by zero")
	assert.Equal(t, "2", f.value("z"))
}

func TestDeck_Echo(t *testing.T) {
	ctx := context.Background()
	src := "### slide::%s\ndef f():\n    return 1\n\n\nf()\n"

	t.Run("Prompts", func(t *testing.T) {
		hist := &MockHistory{}
		hist.On("AddHistory", mock.Anything).Return()
		f := newFixture(t, fmt.Sprintf(src, ""), runtime.WithHistory(hist))

		f.deck.Next(ctx)
		assert.Contains(t, f.out.String(), ">>> def f():\n...     return 1\n\n\n>>> f()\n1\n")
		hist.AssertCalled(t, "AddHistory", "def f():\n    return 1")
		hist.AssertCalled(t, "AddHistory", "f()")
	})

	t.Run("Trailing Blanks Trimmed When Not Running", func(t *testing.T) {
		f := newFixture(t, fmt.Sprintf(src, "p"))

		f.deck.Next(ctx)
		assert.Contains(t, f.out.String(), ">>> def f():\n...     return 1\n>>> f()\n")
	})

	t.Run("No Echo", func(t *testing.T) {
		f := newFixture(t, "### slide::\nsecret = 42\n", runtime.WithPrompts("$ ", "> "))
		parsed := f.deck.Slides()[0]
		parsed.NoEcho = true

		f.deck.Next(ctx)
		assert.NotContains(t, f.out.String(), "secret")
		assert.Equal(t, "42", f.value("secret"))
	})

	t.Run("Highlighting", func(t *testing.T) {
		f := newFixture(t, "### slide::\nx = 1\n", runtime.WithHighlighter(tagHighlighter{}, true))

		f.deck.Next(ctx)
		assert.Contains(t, f.out.String(), "<hl>>>> x = 1\n</hl>")

		f.deck.ToggleHighlight()
		f.deck.Rerun(ctx)
		assert.Contains(t, f.out.String(), "% Code highlighting is now OFF")
		assert.Equal(t, 1, strings.Count(f.out.String(), "<hl>"))
	})

	t.Run("Highlighting Unavailable", func(t *testing.T) {
		f := newFixture(t, "### slide::\nx = 1\n")
		f.deck.ToggleHighlight()
		assert.Contains(t, f.out.String(), "% Code highlighting is not available.")
	})
}

func TestDeck_Bullets(t *testing.T) {
	ctx := context.Background()

	t.Run("Pause Between Bullets Before Code", func(t *testing.T) {
		keys := &MockKeyWaiter{}
		keys.On("WaitKey", mock.Anything).Return(nil)
		f := newFixture(t, "### slide::b\n### * one\n### * two\n### * three\nx = 1\n", runtime.WithKeyWaiter(keys))

		f.deck.Next(ctx)
		keys.AssertNumberOfCalls(t, "WaitKey", 2)
		assert.Contains(t, f.out.String(), "  * one\n  * two\n  * three\n")
	})

	t.Run("Pause After Every Bullet Without Code", func(t *testing.T) {
		keys := &MockKeyWaiter{}
		keys.On("WaitKey", mock.Anything).Return(nil)
		f := newFixture(t, "### slide::b\n### * one\n### * two\n", runtime.WithKeyWaiter(keys))

		f.deck.Next(ctx)
		keys.AssertNumberOfCalls(t, "WaitKey", 2)
	})

	t.Run("Forced Runs Do Not Pause", func(t *testing.T) {
		keys := &MockKeyWaiter{}
		f := newFixture(t, "### slide::b\n### * one\n### * two\n### slide::\nx = 1\n", runtime.WithKeyWaiter(keys))

		f.deck.Goto(ctx, 2)
		keys.AssertNotCalled(t, "WaitKey", mock.Anything)
		assert.Contains(t, f.out.String(), "  * two\n")
	})

	t.Run("Aborted Acknowledgment Stops Pausing", func(t *testing.T) {
		keys := &MockKeyWaiter{}
		keys.On("WaitKey", mock.Anything).Return(context.Canceled)
		f := newFixture(t, "### slide::b\n### * one\n### * two\n### * three\n", runtime.WithKeyWaiter(keys))

		f.deck.Next(ctx)
		keys.AssertNumberOfCalls(t, "WaitKey", 1)
		assert.Contains(t, f.out.String(), "  * three\n")
	})
}

func TestDeck_Presentation(t *testing.T) {
	ctx := context.Background()
	screen := &countingScreen{}
	f := newFixture(t, "### slide::\n# One\na = 1\n### slide::i\n# Two\nb = 2\n",
		runtime.WithPresentation(true), runtime.WithScreen(screen))

	f.deck.Start()
	assert.Contains(t, f.out.String(), "% presentation mode is now ON")

	f.deck.Next(ctx)
	assert.Equal(t, 1, screen.clears)
	assert.Equal(t, 1, f.deck.TopSlide())

	f.deck.Next(ctx)
	assert.Equal(t, 1, screen.clears, "no-clear slide keeps the screen")
	assert.Equal(t, 1, f.deck.ReloadTarget())

	f.deck.TogglePresentation()
	assert.Contains(t, f.out.String(), "% presentation mode is now OFF")
}

func TestDeck_Banner(t *testing.T) {
	f := newFixture(t, "### slide::\n### title::Basics\n# Some words\nx = 1\n### slide::\ny = 2\n")
	f.deck.Next(context.Background())

	var box []string
	for _, l := range strings.Split(f.out.String(), "\n") {
		if strings.HasPrefix(l, "+") || strings.HasPrefix(l, "|") {
			box = append(box, l)
		}
	}
	require.Len(t, box, 5)
	for _, l := range box {
		assert.Len(t, l, 68)
	}
	assert.True(t, strings.HasPrefix(box[1], "| *** Basics *** "))
	assert.True(t, strings.HasSuffix(box[4], " (1 / 2) --+"))

	f.deck.Next(context.Background())
	assert.NotContains(t, f.out.String(), "(2 / 2)", "slides without title or intro have no banner")
}

func TestDeck_InitAndInfo(t *testing.T) {
	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	f := newFixture(t, trackedDeck, runtime.WithTimer(true), runtime.WithClock(now))
	f.deck.Start()
	assert.True(t, f.deck.RunInit())
	assert.Contains(t, f.out.String(), "% executed initial setup slide.")
	assert.Equal(t, "[]", f.value("runs"))

	f.deck.Next(context.Background())
	clock = clock.Add(90 * time.Second)
	f.deck.Info()
	assert.Contains(t, f.out.String(), "% Now at slide 1 of 4 from deck deck.star")
	assert.Contains(t, f.out.String(), "% Elapsed time: 1m30s")

	plain := newFixture(t, "### slide::\nx = 1\n")
	assert.False(t, plain.deck.RunInit())
}
