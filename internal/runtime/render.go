package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/mattn/go-runewidth"
)

const (
	bannerWidth    = 63
	timeResolution = time.Second
)

// display opens a slide: a clear in presentation mode (unless the slide keeps
// the previous screen), then the chapter banner.
func (d *Deck) display(s *domain.Slide) {
	if d.presentation {
		if !s.NoClear {
			d.screen.Clear()
			if s.Index == d.current {
				d.topSlide = s.Index
			}
		} else {
			fmt.Fprintln(d.out)
		}
	}
	fmt.Fprintln(d.out, d.banner(s))
}

// banner draws the title and intro box with the slide position in its bottom rule.
func (d *Deck) banner(s *domain.Slide) string {
	if s.Title == "" && len(s.Intro) == 0 {
		return ""
	}

	box := bannerWidth
	var title string
	if s.Title != "" {
		title = "*** " + s.Title + " ***"
		box = max(box, runewidth.StringWidth(title))
	}
	for _, l := range s.Intro {
		box = max(box, runewidth.StringWidth(l))
	}
	box += 4

	var b strings.Builder
	if !d.presentation {
		b.WriteString("\n")
	}
	rule := "+" + strings.Repeat("-", box-1) + "+\n"
	b.WriteString(rule)

	if title != "" {
		b.WriteString(boxLine(title, box))
		b.WriteString(rule)
	}
	for _, l := range s.Intro {
		b.WriteString(boxLine(l, box))
	}

	index := fmt.Sprintf(" (%d / %d) ", s.Index, len(d.slides))
	left := box - len(index) - 3
	right := box - left - len(index) - 1
	b.WriteString("+" + strings.Repeat("-", left) + index + strings.Repeat("-", right) + "+\n")
	return b.String()
}

func boxLine(text string, box int) string {
	return "| " + text + strings.Repeat(" ", box-runewidth.StringWidth(text)-2) + "|\n"
}

// renderBullets prints the bullet list, pausing for acknowledgment after each
// bullet except the last one of a slide that still has code to show.
// Forced runs render bullets without pausing.
func (d *Deck) renderBullets(ctx context.Context, s *domain.Slide, mode runMode) {
	if !s.HasBullets() {
		return
	}
	pause := mode != runForce && d.keys != nil
	for i, text := range s.Bullets {
		fmt.Fprintf(d.out, "  * %s\n", text)
		if !pause {
			continue
		}
		if i == len(s.Bullets)-1 && s.HasCode() {
			continue
		}
		if err := d.keys.WaitKey(ctx); err != nil {
			d.logger.Debug("bullet acknowledgment aborted", "slide", s.Index, "err", err)
			pause = false
		}
	}
}

// run echoes and executes the slide fragments. A failing fragment reports its
// trace and execution continues with the next one.
func (d *Deck) run(s *domain.Slide, mode runMode, echo bool) {
	execute := false
	switch mode {
	case runForce:
		execute = true
	case runNormal:
		execute = !(echo && s.NoExec)
	}
	if s.NeverExec {
		execute = false
	}

	for i, frag := range s.Codeblocks {
		if echo && !s.NoEcho {
			d.echo(frag, i == len(s.Codeblocks)-1, execute)
		}
		if execute {
			if err := d.runner.Exec(d.env, frag); err != nil {
				d.reportError(err)
			}
		}
	}
	if execute {
		fmt.Fprintln(d.out)
	}
}

// echo prints a fragment as if typed at the console.
func (d *Deck) echo(frag *domain.Fragment, last, executing bool) {
	display := frag.Display
	if !executing {
		for len(display) > 0 && isBlank(display[len(display)-1]) {
			display = display[:len(display)-1]
		}
	}

	var b strings.Builder
	for j, l := range display {
		switch {
		case j == 0:
			b.WriteString(d.ps1 + l)
		case strings.HasPrefix(l, " "), strings.HasPrefix(l, ")"), strings.HasPrefix(l, "]"):
			b.WriteString(d.ps2 + l)
		case !isBlank(l):
			b.WriteString(d.ps1 + l)
		default:
			b.WriteString(l)
		}
		b.WriteString("\n")
	}

	if d.history != nil {
		if entry := strings.TrimRight(strings.Join(display, "\n"), " \t\n"); entry != "" {
			d.history.AddHistory(entry)
		}
	}

	shown := b.String()
	if last {
		shown = strings.TrimRight(shown, " \t\n") + "\n"
	}
	if d.highlight && d.highlighter != nil {
		shown = d.highlighter.Highlight(shown)
	}
	fmt.Fprint(d.out, shown)
}

func (d *Deck) reportError(err error) {
	d.logger.Debug("fragment failed", "err", err)
	fmt.Fprintln(d.out, domain.Traceback(err))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
