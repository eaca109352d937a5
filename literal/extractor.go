// Package literal derives the literal prefixes a compiled pattern commits
// to. Every match of the pattern is guaranteed to start with one of the
// extracted literals, which is what lets a prefilter skip positions where
// none of them occur.
package literal

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/retrace/backtrack"
)

// maxWalkDepth bounds recursion over pathologically nested patterns.
const maxWalkDepth = 100

// ExtractorConfig bounds extraction.
type ExtractorConfig struct {
	// MaxLiterals caps how many alternative literals a pattern may expand
	// into. A node whose cross product would exceed the cap is treated as
	// opaque instead.
	MaxLiterals int

	// MaxLiteralLen caps the byte length of a single literal. A literal
	// that would grow past the cap stops extending and stays a prefix.
	MaxLiteralLen int

	// MaxClassSize caps how many characters a class may span and still be
	// expanded member by member.
	MaxClassSize int
}

// DefaultConfig returns the extraction bounds used by the engine.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal prefixes from compiled patterns.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor with the given bounds.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes collects the literal prefixes of prog.
//
// The returned sequence is exhaustive: every match of the pattern starts
// with one of its literals. Constructs with no fixed spelling at the point
// a match begins (a leading wildcard, repetition or negated class, an
// alternation with such a branch, a class too large to expand) make that
// guarantee impossible and yield an empty sequence instead. Alternation
// branches whose spellings share a start stay extractable but lose
// completeness: branch order decides which of them the matcher enters.
//
//	hello          extracts ["hello"], complete
//	(foo|bar)x     extracts ["foox", "barx"], complete
//	[ab]c          extracts ["ac", "bc"], complete
//	(a|ab)c        extracts ["a", "ab"], prefix only
//	hello.*world   extracts ["hello"], prefix only
//	^hello         extracts ["hello"], prefix only
//	.*world        extracts nothing
func (e *Extractor) ExtractPrefixes(prog *backtrack.Program) *Seq {
	nodes := prog.Cases
	anchored := len(nodes) > 0 && nodes[0].Op == backtrack.OpBeginText
	if anchored {
		// The anchor constrains position, not spelling. Skipping it keeps
		// the prefixes usable for scanning; they are demoted below since
		// they no longer describe the whole pattern.
		nodes = nodes[1:]
	}

	stems := e.walk(nodes, virgin(), 0)

	out := make([]Literal, 0, len(stems))
	for _, lit := range stems {
		if len(lit.Bytes) == 0 {
			// A stem with no bytes means some match needs no particular
			// prefix at all; no finite literal set covers that.
			return NewSeq()
		}
		if anchored {
			lit.Complete = false
		}
		out = append(out, lit)
	}
	return NewSeq(out...)
}

// virgin is the initial stem set: one empty, still-extending literal.
func virgin() []Literal {
	return []Literal{{Complete: true}}
}

// walk advances stems over nodes in sequence order. A stem's Complete flag
// doubles as liveness during the walk: live stems still track the match
// start exactly and keep extending, dead stems are settled prefixes later
// nodes must leave alone. A construct extraction cannot see through kills
// the live stems and ends the walk.
func (e *Extractor) walk(nodes []*backtrack.Node, stems []Literal, depth int) []Literal {
	if depth > maxWalkDepth {
		return killLive(stems)
	}
	for _, n := range nodes {
		if !anyLive(stems) {
			return stems
		}
		switch n.Op {
		case backtrack.OpChar:
			if n.Lo == utf8.RuneError {
				// Each invalid input byte decodes as a one-byte
				// replacement character, so this node has no fixed
				// byte spelling.
				return killLive(stems)
			}
			stems = e.extendRune(stems, n.Lo)

		case backtrack.OpClass:
			runes, ok := e.classRunes(n)
			if !ok {
				return killLive(stems)
			}
			next, ok := e.crossRunes(stems, runes)
			if !ok {
				return killLive(stems)
			}
			stems = next

		case backtrack.OpSeq, backtrack.OpGroup:
			stems = e.walk(n.Sub, stems, depth+1)

		case backtrack.OpAlternate:
			next, ok := e.crossAlternation(stems, n.Sub, depth)
			if !ok {
				return killLive(stems)
			}
			stems = next

		default:
			// Quantifiers, backreferences, wildcards, negations and
			// anchors have no fixed spelling.
			return killLive(stems)
		}
	}
	return stems
}

func anyLive(stems []Literal) bool {
	for _, s := range stems {
		if s.Complete {
			return true
		}
	}
	return false
}

func killLive(stems []Literal) []Literal {
	for i := range stems {
		stems[i].Complete = false
	}
	return stems
}

// extendRune appends r to every live stem. A stem that would outgrow
// MaxLiteralLen stops extending and stays a prefix.
func (e *Extractor) extendRune(stems []Literal, r rune) []Literal {
	for i := range stems {
		if !stems[i].Complete {
			continue
		}
		if len(stems[i].Bytes)+utf8.RuneLen(r) > e.config.MaxLiteralLen {
			stems[i].Complete = false
			continue
		}
		stems[i].Bytes = utf8.AppendRune(stems[i].Bytes, r)
	}
	return stems
}

// classRunes expands a class node into its member characters. Classes
// spanning more than MaxClassSize characters do not expand. Reversed
// ranges match nothing and contribute nothing.
func (e *Extractor) classRunes(n *backtrack.Node) ([]rune, bool) {
	var runes []rune
	for _, m := range n.Sub {
		switch m.Op {
		case backtrack.OpChar:
			runes = append(runes, m.Lo)
		case backtrack.OpRange:
			if m.Hi < m.Lo {
				continue
			}
			if len(runes)+int(m.Hi-m.Lo)+1 > e.config.MaxClassSize {
				return nil, false
			}
			for r := m.Lo; r <= m.Hi; r++ {
				runes = append(runes, r)
			}
		default:
			return nil, false
		}
		if len(runes) > e.config.MaxClassSize {
			return nil, false
		}
	}
	for _, r := range runes {
		if r == utf8.RuneError {
			// No fixed spelling: invalid input bytes decode to the
			// replacement character one byte at a time.
			return nil, false
		}
	}
	return runes, true
}

// crossRunes replaces every live stem with its extensions by each member
// character. Dead stems pass through untouched. An empty member list drops
// the live stems: the class matches nothing, so no match reaches past it.
func (e *Extractor) crossRunes(stems []Literal, runes []rune) ([]Literal, bool) {
	widest := 0
	for _, r := range runes {
		if n := utf8.RuneLen(r); n > widest {
			widest = n
		}
	}
	out := make([]Literal, 0, len(stems))
	for _, s := range stems {
		if !s.Complete {
			out = append(out, s)
			continue
		}
		if len(s.Bytes)+widest > e.config.MaxLiteralLen {
			s.Complete = false
			out = append(out, s)
			continue
		}
		for _, r := range runes {
			buf := make([]byte, 0, len(s.Bytes)+widest)
			buf = append(buf, s.Bytes...)
			buf = utf8.AppendRune(buf, r)
			out = append(out, Literal{Bytes: buf, Complete: true})
			if len(out) > e.config.MaxLiterals {
				return nil, false
			}
		}
	}
	return out, true
}

// crossAlternation extends every live stem by each branch's own prefixes.
// A branch offering no leading literal poisons the whole alternation: a
// match could enter it with any spelling.
func (e *Extractor) crossAlternation(stems []Literal, branches []*backtrack.Node, depth int) ([]Literal, bool) {
	branchStems := make([][]Literal, 0, len(branches))
	total := 0
	for _, branch := range branches {
		bs := e.walk([]*backtrack.Node{branch}, virgin(), depth+1)
		for _, b := range bs {
			if len(b.Bytes) == 0 && !b.Complete {
				return nil, false
			}
		}
		total += len(bs)
		if total > e.config.MaxLiterals {
			return nil, false
		}
		branchStems = append(branchStems, bs)
	}

	suffixes := make([]Literal, 0, total)
	for _, bs := range branchStems {
		suffixes = append(suffixes, bs...)
	}

	out := make([]Literal, 0, len(stems))
	for _, s := range stems {
		if !s.Complete {
			out = append(out, s)
			continue
		}
		fits := true
		for _, b := range suffixes {
			if len(s.Bytes)+len(b.Bytes) > e.config.MaxLiteralLen {
				fits = false
				break
			}
		}
		if !fits {
			s.Complete = false
			out = append(out, s)
			continue
		}
		for _, b := range suffixes {
			buf := make([]byte, 0, len(s.Bytes)+len(b.Bytes))
			buf = append(buf, s.Bytes...)
			buf = append(buf, b.Bytes...)
			out = append(out, Literal{Bytes: buf, Complete: b.Complete})
			if len(out) > e.config.MaxLiterals {
				return nil, false
			}
		}
	}
	if ambushed(branchStems) {
		out = killLive(out)
	}
	return out, true
}

// ambushed reports whether a stem of one branch is a proper prefix of a
// stem of another. Matching commits the first branch that succeeds at the
// cursor, so when branch spellings share a start the cross product lists
// spellings no committed walk can reach; those literals stay usable
// prefixes but may not claim completeness.
func ambushed(branchStems [][]Literal) bool {
	for i, left := range branchStems {
		for j, right := range branchStems {
			if i == j {
				continue
			}
			for _, a := range left {
				for _, b := range right {
					if len(a.Bytes) < len(b.Bytes) && bytes.HasPrefix(b.Bytes, a.Bytes) {
						return true
					}
				}
			}
		}
	}
	return false
}
