package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
)

var (
	slideRe   = regexp.MustCompile(`^### +slide::(.*)$`)
	fileRe    = regexp.MustCompile(`^### +file::(.+)$`)
	titleRe   = regexp.MustCompile(`^### +title::(.+)$`)
	bannerRe  = regexp.MustCompile(`^#####* (.+) #####*$`)
	bulletRe  = regexp.MustCompile(`^### +\* (.+)$`)
	commentRe = regexp.MustCompile(`^#(?: (.*))?$`)
)

// Result is the outcome of parsing a deck.
type Result struct {
	// Slides holds the navigable slides in source order.
	Slides []*domain.Slide
	// Init is the setup slide, if any. When several slides are marked
	// as setup slides the last one wins.
	Init *domain.Slide
	// Files lists every file read, includes included, in read order.
	Files []string
}

// Parser turns annotated deck sources into slides.
type Parser struct {
	loader   ports.SourceLoader
	compiler ports.Compiler
	short    bool
	defaults domain.SlideFlags
	logger   *slog.Logger
}

// Option configures the Parser.
type Option func(*Parser)

// WithShort drops slides marked as long-form.
func WithShort(short bool) Option {
	return func(p *Parser) {
		p.short = short
	}
}

// WithDefaults applies deck-wide flags to every slide.
// Only NoReturn and NoEcho are honored; the others are per-slide markers.
func WithDefaults(flags domain.SlideFlags) Option {
	return func(p *Parser) {
		p.defaults = domain.SlideFlags{NoReturn: flags.NoReturn, NoEcho: flags.NoEcho}
	}
}

// WithLogger configures a logger for parse decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new parser instance.
func NewParser(loader ports.SourceLoader, compiler ports.Compiler, opts ...Option) *Parser {
	p := &Parser{
		loader:   loader,
		compiler: compiler,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// parseState is shared across includes so that an included file behaves
// exactly as if its lines were inlined at the include marker.
type parseState struct {
	res    *Result
	cur    *slideBuilder
	active []string
}

// Parse reads the deck at path and its includes.
// It returns domain.ErrNoSlides when no navigable slide is found and a
// *domain.FatalFragmentError when code left at the end of a slide does not compile.
func (p *Parser) Parse(path string) (*Result, error) {
	st := &parseState{res: &Result{}}

	if err := p.parseFile(st, path); err != nil {
		return nil, err
	}
	if err := p.closeSlide(st); err != nil {
		return nil, err
	}

	if len(st.res.Slides) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSlides, path)
	}
	p.logger.Debug("deck parsed", "path", path, "slides", len(st.res.Slides), "files", len(st.res.Files), "init", st.res.Init != nil)
	return st.res, nil
}

func (p *Parser) parseFile(st *parseState, path string) error {
	path = filepath.Clean(path)
	if slices.Contains(st.active, path) {
		return fmt.Errorf("%w: %s", domain.ErrIncludeCycle, strings.Join(append(st.active, path), " -> "))
	}

	data, err := p.loader.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load deck %s: %w", path, err)
	}
	st.res.Files = append(st.res.Files, path)

	st.active = append(st.active, path)
	defer func() { st.active = st.active[:len(st.active)-1] }()

	lines := splitLines(data)
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := fileRe.FindStringSubmatch(line); m != nil {
			include := strings.TrimSpace(m[1])
			if !filepath.IsAbs(include) {
				include = filepath.Join(filepath.Dir(path), include)
			}
			p.logger.Debug("include resolved", "from", path, "file", include)
			if err := p.parseFile(st, include); err != nil {
				return err
			}
			// The line after an include is a human readable pointer, unless it is another include.
			if i+1 < len(lines) && !fileRe.MatchString(lines[i+1]) {
				i++
			}
			continue
		}

		if title, ok := matchTitle(line); ok {
			if st.cur != nil {
				st.cur.setTitle(title)
			}
			continue
		}

		if m := slideRe.FindStringSubmatch(line); m != nil {
			if err := p.closeSlide(st); err != nil {
				return err
			}
			p.openSlide(st, path, m[1])
			continue
		}

		if st.cur != nil {
			st.cur.feed(line)
		}
	}
	return nil
}

func (p *Parser) openSlide(st *parseState, file, letters string) {
	flags := domain.ParseFlags(letters)
	if flags.Long && p.short {
		p.logger.Debug("long slide dropped", "file", file, "flags", letters)
		st.cur = nil
		return
	}
	flags.NoReturn = flags.NoReturn || p.defaults.NoReturn
	flags.NoEcho = flags.NoEcho || p.defaults.NoEcho

	slide := &domain.Slide{
		Index:      len(st.res.Slides) + 1,
		File:       file,
		SlideFlags: flags,
	}
	st.cur = newSlideBuilder(slide, p.compiler, p.logger)
	p.logger.Debug("slide opened", "slide", slide.Index, "file", file, "flags", letters)
}

func (p *Parser) closeSlide(st *parseState) error {
	if st.cur == nil {
		return nil
	}
	b := st.cur
	st.cur = nil

	if err := b.close(); err != nil {
		return err
	}

	if b.slide.Init {
		st.res.Init = b.slide
		p.logger.Debug("init slide closed", "file", b.slide.File, "fragments", len(b.slide.Codeblocks))
		return nil
	}
	st.res.Slides = append(st.res.Slides, b.slide)
	p.logger.Debug("slide closed", "slide", b.slide.Index, "fragments", len(b.slide.Codeblocks), "bullets", len(b.slide.Bullets))
	return nil
}

func matchTitle(line string) (string, bool) {
	m := titleRe.FindStringSubmatch(line)
	if m == nil {
		m = bannerRe.FindStringSubmatch(line)
	}
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
