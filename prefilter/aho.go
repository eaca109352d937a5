package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/retrace/literal"
)

// ahoPrefilter scans for any of several literals with an Aho-Corasick
// automaton. It covers the sequences the single-literal strategies cannot:
// alternations, character classes expanded to multiple prefixes, and
// anything else that extracts to two or more literals.
type ahoPrefilter struct {
	auto      *ahocorasick.Automaton
	complete  bool
	heapBytes int
}

// newAhoPrefilter builds an automaton over every literal in seq. It
// returns nil when construction fails; the caller then scans without a
// prefilter, which is slower but never wrong.
func newAhoPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	patternBytes := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		patternBytes += len(lit.Bytes)
	}

	auto, err := builder.Build()
	if err != nil {
		return nil
	}

	return &ahoPrefilter{
		auto:      auto,
		complete:  seq.AllComplete(),
		heapBytes: patternBytes,
	}
}

// Find implements Prefilter.Find. The automaton reports leftmost matches
// with absolute positions, so the candidate is the match start.
func (p *ahoPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}

	return m.Start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen. With several literals the
// match length varies, so it is always 0.
func (p *ahoPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. The automaton does not expose
// its size, so the pattern bytes serve as a lower bound.
func (p *ahoPrefilter) HeapBytes() int {
	return p.heapBytes
}
