package backtrack

import (
	"fmt"
	"unicode/utf8"
)

// Match is one match found by a Matcher: the byte offset where it starts
// and the matched text.
type Match struct {
	Start int
	Text  string
}

// Span returns the half-open byte range of the match.
func (m Match) Span() (start, end int) {
	return m.Start, m.Start + len(m.Text)
}

// String renders the match as [start,end]: "text".
func (m Match) String() string {
	s, e := m.Span()
	return fmt.Sprintf("[%d,%d]: \"%s\"", s, e, m.Text)
}

// Skipper jumps the scan ahead to positions a match could start at.
// Implementations must be conservative: every real match start has to be
// reported as a candidate. Find returns the earliest candidate at or after
// from, or -1 when no candidate remains.
type Skipper interface {
	Find(src string, from int) int
}

// Matcher iterates over the non-overlapping matches of a compiled pattern
// in a string, leftmost first. A Matcher is single-use and not safe for
// concurrent use; the Program it executes may be shared freely.
type Matcher struct {
	prog         *Program
	entry        *followFrame // the top-level cases, nil for the empty pattern
	ctx          context
	skip         Skipper
	eofAttempted bool
}

// NewMatcher returns a Matcher scanning src. foldCase selects
// case-insensitive matching.
func NewMatcher(prog *Program, src string, foldCase bool) *Matcher {
	var entry *followFrame
	if len(prog.Cases) > 0 {
		entry = &followFrame{nodes: prog.Cases}
	}
	return &Matcher{
		prog:  prog,
		entry: entry,
		ctx:   newContext(src, prog.NumCaptures, foldCase),
	}
}

// SetSkipper installs a candidate skipper consulted after failed attempts.
// A nil skipper means every position is attempted.
func (m *Matcher) SetSkipper(s Skipper) {
	m.skip = s
}

// Next returns the next match; the second return is false once the scan is
// exhausted.
//
// Zero-width matches are legal. After one, the scan advances a character so
// the sequence always makes progress, and one attempt is made at the very
// end of the input. A pattern that matches the empty string therefore
// yields one more match than the input has characters.
func (m *Matcher) Next() (Match, bool) {
	for {
		if m.ctx.atEnd() {
			if m.eofAttempted {
				return Match{}, false
			}
			m.eofAttempted = true
		}

		attempt := m.ctx.clone()
		attempt.following = m.entry
		if attempt.followingMatch() {
			start := m.ctx.pos
			text := m.ctx.input[start:attempt.pos]
			m.ctx = attempt
			if len(text) == 0 {
				m.advance()
			}
			return Match{Start: start, Text: text}, true
		}

		if m.ctx.atEnd() {
			return Match{}, false
		}
		m.advance()

		if m.skip != nil && !m.ctx.atEnd() {
			if pos := m.skip.Find(m.ctx.input, m.ctx.pos); pos >= 0 {
				m.ctx.pos = pos
			} else {
				// No candidate remains; only the end-of-input attempt is left.
				m.ctx.pos = len(m.ctx.input)
			}
		}
	}
}

// Captures returns the capture-group texts as of the most recent Next,
// group 1 at index 0. A group that has not recorded anything yields "".
//
// The state is cumulative across the scan: a later match overwrites only
// the groups it exercises.
func (m *Matcher) Captures() []string {
	out := make([]string, len(m.ctx.caps))
	for i, s := range m.ctx.caps {
		out[i] = m.ctx.input[s.start:s.end]
	}
	return out
}

// advance moves the scan cursor one character forward.
func (m *Matcher) advance() {
	if m.ctx.atEnd() {
		return
	}
	_, size := utf8.DecodeRuneInString(m.ctx.input[m.ctx.pos:])
	m.ctx.pos += size
}
