package compiler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
)

// slideBuilder accumulates the lines of one open slide.
type slideBuilder struct {
	slide    *domain.Slide
	compiler ports.Compiler
	logger   *slog.Logger

	// inBody is set by the first non-blank, non-comment line and ends intro capture for good.
	inBody bool
	stack  []string
	level  int
}

func newSlideBuilder(slide *domain.Slide, compiler ports.Compiler, logger *slog.Logger) *slideBuilder {
	return &slideBuilder{slide: slide, compiler: compiler, logger: logger}
}

func (b *slideBuilder) mode() domain.CompileMode {
	if b.slide.NoReturn {
		return domain.ModeExec
	}
	return domain.ModeSingle
}

func (b *slideBuilder) setTitle(title string) {
	b.slide.Title = title
	b.slide.Intro = nil
	b.slide.Lines = nil
}

func (b *slideBuilder) feed(line string) {
	blank := isBlank(line)

	if b.slide.BulletMode {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			b.slide.Bullets = append(b.slide.Bullets, strings.TrimRight(m[1], " \t"))
			return
		}
	}

	if !b.inBody {
		if m := commentRe.FindStringSubmatch(line); m != nil {
			b.slide.Intro = append(b.slide.Intro, strings.TrimRight(m[1], " \t"))
			return
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			b.slide.Intro = append(b.slide.Intro, "* "+strings.TrimRight(m[1], " \t"))
			return
		}
		if blank {
			if len(b.slide.Intro) > 0 {
				b.slide.Intro = append(b.slide.Intro, "")
			}
			return
		}
		b.inBody = true
		b.slide.Lines = nil
	}

	if blank && len(b.slide.Lines) == 0 {
		return
	}
	b.slide.Lines = append(b.slide.Lines, line)
	b.append(line)
}

// append feeds one body line to the statement accumulator. A line indented
// no deeper than the first line of the accumulated text is a candidate
// boundary: if everything before it compiles, that text becomes a fragment.
func (b *slideBuilder) append(line string) {
	blank := isBlank(line)
	if len(b.stack) == 0 {
		if blank {
			return
		}
		b.level = indentOf(line)
		b.stack = append(b.stack, line)
		return
	}

	if indent := indentOf(line); !blank && indent <= b.level {
		frag, err := b.compile(false)
		if err == nil {
			b.commit(frag)
			b.level = indent
		} else {
			b.logger.Debug("fragment continues", "slide", b.slide.Index, "reason", err)
		}
	}
	b.stack = append(b.stack, line)
}

func (b *slideBuilder) compile(final bool) (*domain.Fragment, error) {
	text := strings.Join(b.stack, "\n") + "\n"
	if final {
		// End of slide terminates any open compound statement.
		text += "\n"
	}
	return b.compiler.Compile(fmt.Sprintf("<slide %d>", b.slide.Index), text, b.mode())
}

func (b *slideBuilder) commit(frag *domain.Fragment) {
	frag.Display = append([]string(nil), b.stack...)
	b.slide.Codeblocks = append(b.slide.Codeblocks, frag)
	b.stack = nil
	b.logger.Debug("fragment committed", "slide", b.slide.Index, "lines", len(frag.Display), "echo", frag.Echo)
}

func (b *slideBuilder) close() error {
	if len(b.stack) > 0 {
		frag, err := b.compile(true)
		switch {
		case errors.Is(err, domain.ErrIncomplete):
			b.logger.Debug("unterminated fragment dropped", "slide", b.slide.Index, "lines", len(b.stack))
			b.stack = nil
		case err != nil:
			return &domain.FatalFragmentError{
				File:  b.slide.File,
				Slide: b.slide.Index,
				Text:  strings.Join(b.stack, "\n"),
				Err:   err,
			}
		default:
			b.commit(frag)
		}
	}

	for len(b.slide.Intro) > 0 && isBlank(b.slide.Intro[len(b.slide.Intro)-1]) {
		b.slide.Intro = b.slide.Intro[:len(b.slide.Intro)-1]
	}
	return nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
