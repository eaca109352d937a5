package backtrack

import (
	"unicode"
	"unicode/utf8"
)

// followFrame is one link of the continuation: nodes that still have to
// match after the node currently being evaluated, innermost sequence
// first. Frames are immutable once created and shared freely between
// duplicated contexts; nodes is never empty.
type followFrame struct {
	nodes []*Node
	next  *followFrame
}

// capSpan is the half-open byte range a capture group last recorded.
// The zero span yields the empty string.
type capSpan struct {
	start, end int
}

// openCapture marks a group the matcher is currently inside.
type openCapture struct {
	id    int // 1-based capture index
	start int // byte offset where the group opened
}

// context is the complete state of one match attempt: the cursor, the
// recorded capture spans, the stack of open groups, and the continuation
// to satisfy after the current node.
//
// Duplication is O(1): clone shares the capture and open-group slices and
// strips ownership from both sides, so whichever context writes next makes
// a private copy first. A failed attempt is abandoned by discarding its
// duplicate; a successful one is committed by assigning the duplicate back
// over the original.
type context struct {
	input string
	pos   int  // byte offset of the cursor
	fold  bool // case-insensitive matching

	following *followFrame

	caps      []capSpan
	capsOwned bool

	open      []openCapture
	openOwned bool
}

func newContext(input string, numCaps int, fold bool) context {
	return context{
		input:     input,
		fold:      fold,
		caps:      make([]capSpan, numCaps),
		capsOwned: true,
	}
}

// clone duplicates the context. Both sides lose slice ownership.
func (c *context) clone() context {
	c.capsOwned = false
	c.openOwned = false
	return *c
}

// nextChar decodes the character under the cursor and advances past it.
// In case-insensitive mode the character comes back folded to lower case.
func (c *context) nextChar() (rune, bool) {
	if c.pos >= len(c.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.input[c.pos:])
	c.pos += size
	if c.fold {
		r = unicode.ToLower(r)
	}
	return r, true
}

// atEnd reports whether the cursor is past the last character.
func (c *context) atEnd() bool {
	return c.pos >= len(c.input)
}

// foldRune lowers r in case-insensitive mode, matching what nextChar does
// to input characters.
func (c *context) foldRune(r rune) rune {
	if c.fold {
		return unicode.ToLower(r)
	}
	return r
}

// pushCapture opens capture group id at the cursor.
func (c *context) pushCapture(id int) {
	if !c.openOwned {
		c.open = append(make([]openCapture, 0, len(c.open)+1), c.open...)
		c.openOwned = true
	}
	c.open = append(c.open, openCapture{id: id, start: c.pos})
}

// popCapture closes the innermost open group. Shrinking only the local
// slice header never disturbs contexts sharing the backing array, so no
// copy is needed here.
func (c *context) popCapture() {
	c.open = c.open[:len(c.open)-1]
}

// updateOpenCaptures re-records every open group as spanning from its
// opening offset to the cursor.
func (c *context) updateOpenCaptures() {
	if len(c.open) == 0 {
		return
	}
	if !c.capsOwned {
		c.caps = append([]capSpan(nil), c.caps...)
		c.capsOwned = true
	}
	for _, oc := range c.open {
		c.caps[oc.id-1] = capSpan{start: oc.start, end: c.pos}
	}
}

// capturedText returns the text capture group id last recorded.
func (c *context) capturedText(id int) string {
	s := c.caps[id-1]
	return c.input[s.start:s.end]
}

// hasFollowing reports whether any continuation remains.
func (c *context) hasFollowing() bool {
	return c.following != nil
}

// followingMatch consumes the continuation, matching every remaining node
// in order. Each node is evaluated with the rest of the continuation still
// visible, so quantifier lookahead deeper in sees the full remainder.
func (c *context) followingMatch() bool {
	for c.following != nil {
		f := c.following
		node := f.nodes[0]
		if len(f.nodes) > 1 {
			c.following = &followFrame{nodes: f.nodes[1:], next: f.next}
		} else {
			c.following = f.next
		}
		if !node.match(c) {
			return false
		}
	}
	return true
}
