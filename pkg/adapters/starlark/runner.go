package starlark

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/aretw0/sliderepl/pkg/ports"
	backend "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DefaultFileOptions enables the Python-like conveniences slide authors expect
// at the top level of a REPL chunk (if/for/while outside functions, reassigning globals, sets).
var DefaultFileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Runner implements ports.CodeRunner on top of go.starlark.net.
type Runner struct {
	opts *syntax.FileOptions
}

// Option configures the Runner.
type Option func(*Runner)

// WithFileOptions overrides the dialect options used to parse fragments.
func WithFileOptions(opts *syntax.FileOptions) Option {
	return func(r *Runner) {
		r.opts = opts
	}
}

// New creates a Starlark backed CodeRunner.
func New(opts ...Option) *Runner {
	r := &Runner{opts: DefaultFileOptions}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.CodeRunner = (*Runner)(nil)

// Compile parses text as one interactive unit.
//
// Text that stops inside an open bracket, string or compound statement yields
// an error wrapping domain.ErrIncomplete. Compound statements are only complete
// once followed by a blank line, as in an interactive console.
func (r *Runner) Compile(name, text string, mode domain.CompileMode) (*domain.Fragment, error) {
	f, err := r.opts.Parse(name, text, 0)
	if err != nil {
		if isUnexpectedEOF(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrIncomplete, err)
		}
		return nil, err
	}

	if mode == domain.ModeSingle && !oneLogicalLine(f.Stmts) {
		return nil, fmt.Errorf("%s: multiple statements found while compiling a single statement", name)
	}

	if n := len(f.Stmts); n > 0 && isCompound(f.Stmts[n-1]) && !endsWithBlankLine(text) {
		return nil, fmt.Errorf("%w: %s: compound statement not terminated by a blank line", domain.ErrIncomplete, name)
	}

	return &domain.Fragment{
		Name:   name,
		Source: text,
		Mode:   mode,
		Echo:   mode == domain.ModeSingle && hasExprStmt(f),
	}, nil
}

// Exec runs frag against env. In single mode every expression statement
// prints its value unless it is None.
func (r *Runner) Exec(env ports.Environment, frag *domain.Fragment) error {
	e, ok := env.(*Environment)
	if !ok {
		return fmt.Errorf("starlark runner cannot execute in environment %T", env)
	}

	f, err := r.opts.Parse(frag.Name, frag.Source, 0)
	if err != nil {
		return err
	}

	thread := e.acquire(frag.Name)
	defer e.release()

	if !frag.Echo {
		return backend.ExecREPLChunk(f, thread, e.globals)
	}

	for _, stmt := range f.Stmts {
		expr, ok := stmt.(*syntax.ExprStmt)
		if !ok {
			chunk := &syntax.File{Path: f.Path, Stmts: []syntax.Stmt{stmt}, Options: f.Options}
			if err := backend.ExecREPLChunk(chunk, thread, e.globals); err != nil {
				return err
			}
			continue
		}
		v, err := backend.EvalExprOptions(r.opts, thread, expr.X, e.globals)
		if err != nil {
			return err
		}
		if v != backend.None {
			fmt.Fprintln(e.out, v.String())
		}
	}
	return nil
}

// NewEnvironment creates an empty environment writing print() output to out.
func (r *Runner) NewEnvironment(out io.Writer) ports.Environment {
	return NewEnvironment(out)
}

func isUnexpectedEOF(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "end of file") || strings.Contains(msg, "EOF")
}

func isCompound(stmt syntax.Stmt) bool {
	switch stmt.(type) {
	case *syntax.IfStmt, *syntax.ForStmt, *syntax.WhileStmt, *syntax.DefStmt:
		return true
	}
	return false
}

func hasExprStmt(f *syntax.File) bool {
	for _, stmt := range f.Stmts {
		if _, ok := stmt.(*syntax.ExprStmt); ok {
			return true
		}
	}
	return false
}

// oneLogicalLine reports whether stmts form a single interactive statement:
// simple statements joined by ';' all start on the first statement's line.
func oneLogicalLine(stmts []syntax.Stmt) bool {
	if len(stmts) <= 1 {
		return true
	}
	first, _ := stmts[0].Span()
	for _, stmt := range stmts[1:] {
		start, _ := stmt.Span()
		if start.Line != first.Line {
			return false
		}
	}
	return true
}

func endsWithBlankLine(text string) bool {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == ""
}
