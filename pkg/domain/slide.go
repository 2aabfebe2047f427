package domain

import "strings"

// CompileMode selects how a code fragment is compiled by the execution backend.
type CompileMode int

const (
	// ModeSingle accepts exactly one statement; a sole expression echoes its value.
	ModeSingle CompileMode = iota
	// ModeExec accepts any number of statements and never echoes.
	ModeExec
)

func (m CompileMode) String() string {
	if m == ModeExec {
		return "exec"
	}
	return "single"
}

// SlideFlags are the per-slide options declared on the slide marker.
type SlideFlags struct {
	// NoClear ('i') keeps the previous screen when entering the slide in presentation mode.
	NoClear bool `json:"no_clear,omitempty" yaml:"no_clear,omitempty"`
	// NoExec ('p') displays the code and waits for an explicit run.
	NoExec bool `json:"no_exec,omitempty" yaml:"no_exec,omitempty"`
	// NeverExec ('x') displays the code and never runs it. Implies NoExec.
	NeverExec bool `json:"never_exec,omitempty" yaml:"never_exec,omitempty"`
	// NoEcho hides the code of the slide while still running it.
	NoEcho bool `json:"no_echo,omitempty" yaml:"no_echo,omitempty"`
	// NoReturn compiles fragments in exec mode, suppressing the display of return values.
	NoReturn bool `json:"no_return,omitempty" yaml:"no_return,omitempty"`
	// Init ('s') marks the setup slide run once at session start.
	Init bool `json:"init,omitempty" yaml:"init,omitempty"`
	// Long ('l') marks a slide dropped from short presentations.
	Long bool `json:"long,omitempty" yaml:"long,omitempty"`
	// BulletMode ('b') enables "### * text" bullet lines.
	BulletMode bool `json:"bullet_mode,omitempty" yaml:"bullet_mode,omitempty"`
}

// ParseFlags reads the letters following "slide::". Unknown letters are ignored.
func ParseFlags(letters string) SlideFlags {
	var f SlideFlags
	for _, c := range strings.TrimSpace(letters) {
		switch c {
		case 'p':
			f.NoExec = true
		case 'x':
			f.NeverExec = true
			f.NoExec = true
		case 'i':
			f.NoClear = true
		case 's':
			f.Init = true
		case 'l':
			f.Long = true
		case 'b':
			f.BulletMode = true
		}
	}
	return f
}

// Fragment is one compiled, independently executable unit of slide code.
type Fragment struct {
	// Name identifies the fragment in tracebacks (file and slide).
	Name string
	// Display holds the source lines as written in the deck file.
	Display []string
	// Source is the text handed to the backend.
	Source string
	Mode   CompileMode
	// Echo is set by the backend when the fragment is a sole expression
	// whose value is printed after evaluation.
	Echo bool
}

// Slide is one navigable unit of a deck.
type Slide struct {
	// Index is the 1-based position in the deck, assigned at parse time.
	Index int    `json:"index"`
	File  string `json:"file"`
	Title string `json:"title,omitempty"`

	Intro   []string `json:"intro,omitempty"`
	Bullets []string `json:"bullets,omitempty"`

	// Lines is the raw body text as written. A title marker resets it.
	Lines      []string    `json:"-"`
	Codeblocks []*Fragment `json:"-"`

	SlideFlags
}

// HasBullets reports whether the slide was declared with bullet mode.
func (s *Slide) HasBullets() bool {
	return s.BulletMode
}

// HasCode reports whether the slide carries at least one fragment.
func (s *Slide) HasCode() bool {
	return len(s.Codeblocks) > 0
}
