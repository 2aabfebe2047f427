package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/sliderepl/pkg/ports"
	"github.com/muesli/termenv"
)

var chapterRe = regexp.MustCompile(`^\d+_`)

// Chapter is one deck file offered by the menu.
type Chapter struct {
	Name string
	Path string
}

// ListChapters returns the numbered deck files of dir ("01_intro.star"), sorted.
// Files starting with an underscore are helpers and are never listed.
func ListChapters(dir string, extensions []string) ([]Chapter, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}

	var chapters []Chapter
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || !chapterRe.MatchString(name) {
			continue
		}
		if !slices.Contains(extensions, filepath.Ext(name)) {
			continue
		}
		chapters = append(chapters, Chapter{Name: name, Path: filepath.Join(dir, name)})
	}
	slices.SortFunc(chapters, func(a, b Chapter) int { return strings.Compare(a.Name, b.Name) })
	return chapters, nil
}

// Menu lets the user pick a chapter, runs it, and comes back until quit.
type Menu struct {
	chapters []Chapter
	reader   ports.LineReader
	out      *termenv.Output
	run      func(ctx context.Context, path string) error
}

// NewMenu creates a chapter menu. run presents one deck.
func NewMenu(chapters []Chapter, reader ports.LineReader, out *termenv.Output, run func(ctx context.Context, path string) error) *Menu {
	return &Menu{chapters: chapters, reader: reader, out: out, run: run}
}

// Run shows the menu until the user quits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.print()
		prompt := "\n" + m.out.String("[enter chapter number]: ").Foreground(termenv.ANSIGreen).String()
		line, err := m.reader.ReadLine(ctx, prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		cmd := strings.ToLower(strings.TrimSpace(line))
		num, convErr := strconv.Atoi(cmd)
		switch {
		case cmd == "q":
			return nil
		case convErr == nil && cmd[0] != '-' && cmd[0] != '+':
			if num < 1 || num > len(m.chapters) {
				fmt.Fprintln(m.out, "Invalid slide number")
				continue
			}
			if err := m.run(ctx, m.chapters[num-1].Path); err != nil {
				return err
			}
		default:
			fmt.Fprintln(m.out, "unknown command")
		}
	}
}

func (m *Menu) print() {
	header := func(s string) string { return m.out.String(s).Foreground(termenv.ANSICyan).String() }
	number := func(s string) string { return m.out.String(s).Foreground(termenv.ANSIMagenta).String() }

	fmt.Fprint(m.out, "\n\n\n")
	fmt.Fprintln(m.out, header("Slide Deck"))
	fmt.Fprintln(m.out, header("=========="))
	for i, c := range m.chapters {
		fmt.Fprintln(m.out, number(fmt.Sprintf("[%d]", i+1)), c.Name)
	}
	fmt.Fprintln(m.out, number("[Q]"), "Quit")
}
