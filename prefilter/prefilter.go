// Package prefilter locates candidate match positions with fast literal
// search so the backtracking engine only runs where a match can start.
//
// A prefilter is built from the literal prefixes extracted from a compiled
// pattern. The extractor guarantees that every match starts with one of
// those prefixes, so positions where no prefix occurs can be skipped
// without consulting the engine at all.
//
// The builder picks the cheapest strategy the literals allow:
//   - single byte → memchr (bytes.IndexByte)
//   - single substring → memmem (rare-byte scan)
//   - multiple literals → Aho-Corasick automaton
//
// Example usage:
//
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(prog)
//	prefixes.Minimize()
//	pf := prefilter.NewBuilder(prefixes).Build()
//	if pf != nil {
//	    pos := pf.Find(haystack, 0)
//	}
package prefilter

import (
	"bytes"

	"github.com/coregx/retrace/internal/bytesearch"
	"github.com/coregx/retrace/literal"
)

// Prefilter finds candidate match positions for a compiled pattern.
//
// A candidate is a position where one of the pattern's literal prefixes
// occurs. It is not a match by itself unless IsComplete reports true;
// otherwise the caller verifies each candidate with the full engine.
// A prefilter is immutable once built and safe for concurrent use.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 when no candidate exists. A start outside the haystack
	// bounds returns -1.
	Find(haystack []byte, start int) int

	// IsComplete reports whether every candidate is itself a whole
	// match. This holds when each extracted literal covers its pattern
	// end to end, which lets engines answer boolean queries from the
	// prefilter alone.
	IsComplete() bool

	// LiteralLen returns the exact match length when IsComplete holds
	// and all candidates share one length, and 0 otherwise.
	LiteralLen() int

	// HeapBytes reports the heap memory retained by the prefilter,
	// for profiling and memory budgeting.
	HeapBytes() int
}

// Builder constructs the best prefilter for a set of extracted literals.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder returns a builder over the literal prefixes extracted from a
// pattern. The sequence should already be minimized. A nil or empty
// sequence yields no prefilter.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter best suited to the literals, or nil when no
// effective prefilter can be constructed. Callers must treat a nil result
// as "scan everything".
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes)
}

// selectPrefilter maps the shape of the literal sequence onto a strategy.
func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	return newAhoPrefilter(seq)
}

// memchrPrefilter scans for a single byte literal.
//
// Example patterns:
//
//	/a.*b/     → search for 'a'
//	/x[0-9]+/  → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}

	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter scans for a single substring literal using the
// rare-byte candidate search from internal/bytesearch.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/foo|foobar/  → after minimization → search for "foo"
//	/prefix.*/    → search for "prefix"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies the needle so the prefilter never aliases
// the extractor's buffers.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytesearch.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := bytesearch.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}

	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
