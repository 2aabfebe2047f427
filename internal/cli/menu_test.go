package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines []string

func (l *lines) ReadLine(context.Context, string) (string, error) {
	if len(*l) == 0 {
		return "", io.EOF
	}
	line := (*l)[0]
	*l = (*l)[1:]
	return line, nil
}

func TestListChapters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"02_loops.star", "01_intro.star", "_helpers.star", "notes.star", "03_extra.py", "04_data.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("### slide::\n"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "05_dir.star"), 0o755))

	chapters, err := ListChapters(dir, []string{".star", ".py"})
	require.NoError(t, err)

	var names []string
	for _, c := range chapters {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"01_intro.star", "02_loops.star", "03_extra.py"}, names)
	assert.Equal(t, filepath.Join(dir, "01_intro.star"), chapters[0].Path)

	_, err = ListChapters(filepath.Join(dir, "missing"), []string{".star"})
	assert.Error(t, err)
}

func TestMenu_Run(t *testing.T) {
	chapters := []Chapter{{Name: "01_intro.star", Path: "slides/01_intro.star"}, {Name: "02_loops.star", Path: "slides/02_loops.star"}}

	newMenu := func(input ...string) (*Menu, *bytes.Buffer, *[]string) {
		buf := &bytes.Buffer{}
		out := termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
		var ran []string
		reader := lines(input)
		m := NewMenu(chapters, &reader, out, func(_ context.Context, path string) error {
			ran = append(ran, path)
			return nil
		})
		return m, buf, &ran
	}

	t.Run("Runs chapters until quit", func(t *testing.T) {
		m, buf, ran := newMenu("2", " 1 ", "Q", "1")

		require.NoError(t, m.Run(context.Background()))
		assert.Equal(t, []string{"slides/02_loops.star", "slides/01_intro.star"}, *ran)
		assert.Contains(t, buf.String(), "Slide Deck\n==========\n[1] 01_intro.star\n[2] 02_loops.star\n[Q] Quit\n")
	})

	t.Run("Invalid input", func(t *testing.T) {
		m, buf, ran := newMenu("3", "0", "-1", "next")

		require.NoError(t, m.Run(context.Background()), "end of input leaves the menu")
		assert.Empty(t, *ran)
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("Invalid slide number")))
		assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("unknown command")))
	})
}
