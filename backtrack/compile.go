package backtrack

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxBackref bounds the index a backreference may carry. Indices are
// validated against the declared capture count anyway; the bound only
// stops pathological digit runs from overflowing.
const maxBackref = 1 << 20

// Compile parses pattern into a Program.
//
// The grammar is processed in a single left-to-right pass over a stack of
// scopes, one per open '('. Each scope accumulates a node sequence; '|'
// moves the accumulated sequence into the scope's branch list, and ')'
// folds the scope into a single node appended to its parent. Capture
// indices are assigned in order of the opening parentheses, starting at 1.
//
// Compilation is all-or-nothing: a malformed pattern yields a nil Program
// and a *CompileError wrapping one of the package's sentinel errors.
func Compile(pattern string) (*Program, error) {
	c := &compiler{pattern: pattern}
	c.enterScope(false)
	prog, err := c.parse()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

type scope struct {
	acc  []*Node // nodes accumulated since the scope opened or the last '|'
	alts []*Node // completed alternation branches; non-nil once '|' is seen
	cap  int     // 1-based capture index, 0 for the root scope
}

type compiler struct {
	pattern string
	pos     int // byte offset of the next unread character
	scopes  []scope
	numCaps int
}

func (c *compiler) parse() (*Program, error) {
	for {
		r, ok := c.next()
		if !ok {
			break
		}

		var node *Node
		var err error
		switch r {
		case '.':
			node = &Node{Op: OpAnyChar}
		case '\\':
			node, err = c.escape()
		case '(':
			c.enterScope(true)
			continue
		case ')':
			if len(c.scopes) == 1 {
				return nil, c.fail(fmt.Errorf("%w: unexpected ')'", ErrUnmatchedParen))
			}
			node = c.closeScope()
		case '|':
			if err := c.or(); err != nil {
				return nil, c.fail(err)
			}
			continue
		case '[':
			node, err = c.class()
		case '{':
			node, err = c.repeat()
		case '?', '*', '+':
			node, err = c.multiplier(r)
		case '^':
			node = &Node{Op: OpBeginText}
		case '$':
			node = &Node{Op: OpEndText}
		default:
			node = &Node{Op: OpChar, Lo: r}
		}
		if err != nil {
			return nil, c.fail(err)
		}
		c.append(node)
	}

	if len(c.scopes) != 1 {
		return nil, c.fail(fmt.Errorf("%w: missing ')'", ErrUnmatchedParen))
	}

	root := c.closeScope()
	var cases []*Node
	if root.Op == OpSeq {
		cases = root.Sub
	} else {
		cases = []*Node{root}
	}
	return &Program{Cases: cases, NumCaptures: c.numCaps}, nil
}

func (c *compiler) enterScope(capture bool) {
	id := 0
	if capture {
		c.numCaps++
		id = c.numCaps
	}
	c.scopes = append(c.scopes, scope{cap: id})
}

// closeScope folds the top scope into a single node: the accumulated
// sequence, wrapped as the final alternation branch if the scope saw '|',
// wrapped again as a capture group if the scope was opened by '('.
func (c *compiler) closeScope() *Node {
	s := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]

	node := &Node{Op: OpSeq, Sub: s.acc}
	if s.alts != nil {
		node = &Node{Op: OpAlternate, Sub: append(s.alts, node)}
	}
	if s.cap > 0 {
		node = &Node{Op: OpGroup, Sub: []*Node{node}, Cap: s.cap}
	}
	return node
}

func (c *compiler) or() error {
	s := &c.scopes[len(c.scopes)-1]
	if len(s.acc) == 0 {
		return ErrEmptyBranch
	}
	branch := s.acc[0]
	if len(s.acc) > 1 {
		branch = &Node{Op: OpSeq, Sub: s.acc}
	}
	s.alts = append(s.alts, branch)
	s.acc = nil
	return nil
}

// multiplier handles '?', '*' and '+': it pops the node the quantifier
// applies to and checks for a trailing '?'. The lazy flag is meaningful
// for '*' and '+' only; '?' has no lazy form, so "a??" equals "a?".
func (c *compiler) multiplier(op rune) (*Node, error) {
	last, ok := c.pop()
	if !ok {
		return nil, fmt.Errorf("%w '%c'", ErrDanglingQuantifier, op)
	}

	lazy := false
	if r, ok := c.peek(); ok && r == '?' {
		lazy = true
		c.next()
	}

	switch op {
	case '?':
		return &Node{Op: OpOptional, Sub: []*Node{last}}, nil
	case '+':
		return &Node{Op: OpPlus, Sub: []*Node{last}, Lazy: lazy}, nil
	default:
		return &Node{Op: OpStar, Sub: []*Node{last}, Lazy: lazy}, nil
	}
}

// repeat handles '{m,n}'. Both bounds are optional; an empty lower bound
// means 0 and an empty upper bound means unbounded. The comma is required,
// so "{3}" does not parse. Anything after a second comma is ignored.
func (c *compiler) repeat() (*Node, error) {
	last, ok := c.pop()
	if !ok {
		return nil, fmt.Errorf("%w '{'", ErrDanglingQuantifier)
	}

	rest := c.pattern[c.pos:]
	end := strings.IndexByte(rest, '}')
	if end < 0 {
		return nil, fmt.Errorf("%w: missing closing '}'", ErrBadRepeat)
	}
	parts := strings.Split(rest[:end], ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: bounds must be separated by ',' as in {12,15}", ErrBadRepeat)
	}

	min, err := parseBound(parts[0], 0)
	if err != nil {
		return nil, err
	}
	max, err := parseBound(parts[1], -1)
	if err != nil {
		return nil, err
	}
	c.pos += end + 1

	return &Node{Op: OpRepeat, Sub: []*Node{last}, Min: min, Max: max}, nil
}

func parseBound(s string, empty int) (int, error) {
	if s == "" {
		return empty, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: parsing bound %q", ErrBadRepeat, s)
	}
	return n, nil
}

// class handles '[...]'. A leading '^' negates the class. A '\' makes the
// next character an ordinary member, 'a-b' forms an inclusive range, and a
// '-' with no upper end is an error. The member list may be empty.
func (c *compiler) class() (*Node, error) {
	cur, ok := c.next()
	if !ok {
		return nil, ErrUnterminatedClass
	}
	negated := cur == '^'
	if negated {
		if cur, ok = c.next(); !ok {
			return nil, ErrUnterminatedClass
		}
	}

	var members []*Node
	for cur != ']' {
		if cur == '\\' {
			if cur, ok = c.next(); !ok {
				return nil, ErrUnterminatedClass
			}
		}
		lo := cur
		if cur, ok = c.next(); !ok {
			return nil, ErrUnterminatedClass
		}

		if cur == '-' {
			hi, ok := c.next()
			if !ok {
				return nil, ErrUnterminatedClass
			}
			if hi == ']' {
				return nil, ErrDanglingRange
			}
			members = append(members, &Node{Op: OpRange, Lo: lo, Hi: hi})
			if cur, ok = c.next(); !ok {
				return nil, ErrUnterminatedClass
			}
		} else {
			members = append(members, &Node{Op: OpChar, Lo: lo})
		}
	}

	node := &Node{Op: OpClass, Sub: members}
	if negated {
		node = &Node{Op: OpNot, Sub: []*Node{node}}
	}
	return node, nil
}

// escape handles '\'. A digit run or a 'k<digits>' form is a backreference,
// validated against the captures declared so far; anything else matches the
// escaped character literally.
func (c *compiler) escape() (*Node, error) {
	r, ok := c.peek()
	if !ok {
		return nil, ErrTrailingEscape
	}

	arrows := false
	isRef := r >= '0' && r <= '9'
	if !isRef && strings.HasPrefix(c.pattern[c.pos:], "k<") {
		c.pos += 2
		isRef = true
		arrows = true
	}
	if !isRef {
		c.next()
		return &Node{Op: OpChar, Lo: r}, nil
	}

	n := 0
	for {
		d, ok := c.peek()
		if !ok || d < '0' || d > '9' {
			if arrows {
				g, ok := c.next()
				if !ok || g != '>' {
					return nil, fmt.Errorf("%w: expected closing '>'", ErrBadBackref)
				}
			}
			break
		}
		n = n*10 + int(d-'0')
		if n > maxBackref {
			return nil, fmt.Errorf("%w: index too large", ErrBadBackref)
		}
		c.next()
	}

	if n == 0 {
		return nil, fmt.Errorf("%w: group 0", ErrBadBackref)
	}
	if n > c.numCaps {
		return nil, fmt.Errorf("%w: recalls uncaptured group %d", ErrBadBackref, n)
	}
	return &Node{Op: OpBackref, Cap: n}, nil
}

func (c *compiler) append(n *Node) {
	s := &c.scopes[len(c.scopes)-1]
	s.acc = append(s.acc, n)
}

// pop removes and returns the most recent node of the current scope.
func (c *compiler) pop() (*Node, bool) {
	s := &c.scopes[len(c.scopes)-1]
	if len(s.acc) == 0 {
		return nil, false
	}
	n := s.acc[len(s.acc)-1]
	s.acc = s.acc[:len(s.acc)-1]
	return n, true
}

func (c *compiler) next() (rune, bool) {
	if c.pos >= len(c.pattern) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.pattern[c.pos:])
	c.pos += size
	return r, true
}

func (c *compiler) peek() (rune, bool) {
	if c.pos >= len(c.pattern) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.pattern[c.pos:])
	return r, true
}

func (c *compiler) fail(err error) error {
	return &CompileError{Pattern: c.pattern, Pos: c.pos, Err: err}
}
