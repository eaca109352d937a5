// Package handle wraps compiled patterns in explicitly closed handles.
//
// The surface mirrors a foreign-function binding: Compile returns an owned
// *Pattern, Matches returns an owned *Iter scanning one subject string, and
// both are released with Close. A closed handle reports ErrClosed instead
// of panicking, and Close is idempotent, so double-free style mistakes in
// binding code stay harmless.
package handle

import (
	"errors"

	"github.com/coregx/retrace/backtrack"
	"github.com/coregx/retrace/meta"
)

// ErrClosed is returned when a Pattern is used after Close.
var ErrClosed = errors.New("retrace: use of closed handle")

// Pattern is an owned handle to a compiled regular expression.
//
// A Pattern is single-goroutine, like the binding loops it serves.
type Pattern struct {
	engine  *meta.Engine // nil once closed
	pattern string
	config  meta.Config
}

// Compile compiles pattern into an owned handle under the default
// configuration.
func Compile(pattern string) (*Pattern, error) {
	engine, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		engine:  engine,
		pattern: pattern,
		config:  meta.DefaultConfig(),
	}, nil
}

// Test reports whether src contains a match of the pattern.
func (p *Pattern) Test(src string) (bool, error) {
	if p.engine == nil {
		return false, ErrClosed
	}
	return p.engine.IsMatch(src), nil
}

// TestWithConfig reports whether src contains a match under a one-off
// configuration. The handle's own configuration is untouched; a config
// that differs from it costs a recompilation of the pattern.
func (p *Pattern) TestWithConfig(src string, config meta.Config) (bool, error) {
	if p.engine == nil {
		return false, ErrClosed
	}
	if config == p.config {
		return p.engine.IsMatch(src), nil
	}
	engine, err := meta.CompileWithConfig(p.pattern, config)
	if err != nil {
		return false, err
	}
	return engine.IsMatch(src), nil
}

// Matches returns an owned iterator over the non-overlapping matches of
// the pattern in src.
func (p *Pattern) Matches(src string) (*Iter, error) {
	if p.engine == nil {
		return nil, ErrClosed
	}
	return &Iter{m: p.engine.Matches(src)}, nil
}

// Close releases the handle. Further calls on the Pattern return ErrClosed.
// Iters created before Close stay usable; each holds its own reference to
// the compiled program.
func (p *Pattern) Close() error {
	p.engine = nil
	return nil
}

// Span locates one match in the subject string: byte offset and byte
// length.
type Span struct {
	Offset int
	Len    int
}

// Iter is an owned handle to a match scan over one subject string.
type Iter struct {
	m *backtrack.Matcher // nil once closed
}

// Next returns the next match span. The second return is false once the
// scan is exhausted or the Iter is closed.
func (it *Iter) Next() (Span, bool) {
	if it.m == nil {
		return Span{}, false
	}
	m, ok := it.m.Next()
	if !ok {
		return Span{}, false
	}
	return Span{Offset: m.Start, Len: len(m.Text)}, true
}

// Close releases the iterator. Close is idempotent.
func (it *Iter) Close() error {
	it.m = nil
	return nil
}
