package literal

import (
	"bytes"
	"fmt"
	"sort"
)

// Literal is one byte sequence extracted from a pattern, always a prefix of
// some set of possible matches. Complete marks a literal that covers an
// entire pattern alternative, so text starting with its bytes is a whole
// match on its own.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral builds a Literal over b. The slice is used as is, not copied.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

func (l Literal) String() string {
	return fmt.Sprintf("literal{%s, complete=%v}", l.Bytes, l.Complete)
}

// Seq is the set of alternative literals extracted from one pattern. The
// extractor guarantees that every match of the pattern starts with one of
// the literals; an empty sequence means no such guarantee could be made.
type Seq struct {
	literals []Literal
}

// NewSeq builds a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// AllComplete reports whether every literal covers an entire pattern
// alternative. Finding any literal of such a sequence already proves a
// match. Nil and empty sequences report false.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length in bytes of the shortest literal, 0 for an
// empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	min := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		if lit.Len() < min {
			min = lit.Len()
		}
	}
	return min
}

// Clone returns a deep copy; the literals' byte slices are duplicated.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Bytes:    append([]byte(nil), lit.Bytes...),
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// Minimize drops literals covered by a shorter one in the same sequence.
// A haystack position starting with "foobar" also starts with "foo", so
// keeping only "foo" preserves the sequence's guarantee while shrinking
// the search. Literals are left sorted shortest first.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		redundant := false
		for _, short := range kept {
			if bytes.HasPrefix(lit.Bytes, short.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, lit)
		}
	}
	s.literals = kept
}
