// Package backtrack implements the pattern compiler and the backtracking
// matcher that executes compiled patterns.
//
// A pattern compiles to a slice of match nodes (a sequence). Matching walks
// the sequence over a copy-on-write cursor context; combinators duplicate
// the context to explore a branch and commit the duplicate back only when
// the branch, and where required its continuation, succeeds. Failed
// duplicates are simply discarded, which is what makes backtracking cheap
// to reason about: no state is ever unwound, only thrown away.
package backtrack

import "fmt"

// Op identifies the type of a match node and determines which Node fields
// are valid.
type Op uint8

const (
	// OpChar matches one literal character.
	OpChar Op = iota

	// OpAnyChar matches any single character (the '.' wildcard).
	OpAnyChar

	// OpRange matches one character inside an inclusive range [lo, hi].
	OpRange

	// OpClass matches one character against a member list (a '[...]'
	// class). The members are OpChar and OpRange nodes. The cursor
	// advances one character whether or not a member matched; enclosing
	// combinators discard the cursor on failure.
	OpClass

	// OpNot inverts its sub-node over exactly one character ('[^...]').
	// It fails at end of input, and consumes the character it inspected.
	OpNot

	// OpSeq matches its sub-nodes in order.
	OpSeq

	// OpAlternate tries each branch in order and commits the first branch
	// that matches. Later branches are not reconsidered, even if the
	// committed one makes the continuation fail.
	OpAlternate

	// OpOptional matches its sub-node zero or one time ('?'). The single
	// repetition is kept only when the rest of the pattern also matches
	// after it.
	OpOptional

	// OpPlus matches its sub-node one or more times ('+').
	OpPlus

	// OpStar matches its sub-node zero or more times ('*').
	OpStar

	// OpRepeat matches its sub-node between Min and Max times ('{m,n}').
	// Max < 0 means unbounded. There is no lazy form, and input that
	// forces more than Max repetitions fails the node.
	OpRepeat

	// OpGroup brackets a capture group: it records the span its sub-node
	// consumed under the group's 1-based index.
	OpGroup

	// OpBackref matches the text most recently recorded by the capture
	// group with the same index ('\1' or '\k<1>').
	OpBackref

	// OpBeginText matches the empty string at the start of the input.
	OpBeginText

	// OpEndText matches the empty string at the end of the input.
	OpEndText
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpAnyChar:
		return "AnyChar"
	case OpRange:
		return "Range"
	case OpClass:
		return "Class"
	case OpNot:
		return "Not"
	case OpSeq:
		return "Seq"
	case OpAlternate:
		return "Alternate"
	case OpOptional:
		return "Optional"
	case OpPlus:
		return "Plus"
	case OpStar:
		return "Star"
	case OpRepeat:
		return "Repeat"
	case OpGroup:
		return "Group"
	case OpBackref:
		return "Backref"
	case OpBeginText:
		return "BeginText"
	case OpEndText:
		return "EndText"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(op))
	}
}

// Node is a single node of a compiled pattern. The node's op determines
// which fields are valid. Nodes are immutable after compilation; a compiled
// pattern may be matched concurrently.
type Node struct {
	Op Op

	// Sub holds child nodes: the members of a Seq, Class, or Alternate,
	// or the single inner node of Not, Optional, Plus, Star, Repeat,
	// and Group.
	Sub []*Node

	// Lo is the literal character for Char and the lower bound for Range.
	// Hi is the upper bound for Range.
	Lo, Hi rune

	// Min and Max bound Repeat. Max < 0 means no upper bound.
	Min, Max int

	// Cap is the 1-based capture index for Group and Backref.
	Cap int

	// Lazy marks a Star or Plus as non-greedy.
	Lazy bool
}

// Program is a compiled pattern: the top-level node sequence plus the
// number of capture groups the pattern declares.
type Program struct {
	// Cases is the top-level match sequence.
	Cases []*Node

	// NumCaptures is the number of '(...)' groups in the pattern.
	// Group indices run 1..NumCaptures.
	NumCaptures int
}
