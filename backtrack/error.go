package backtrack

import (
	"errors"
	"fmt"
)

// Common parse errors. Compile wraps them in a *CompileError carrying the
// pattern and position; use errors.Is against these to classify a failure.
var (
	// ErrDanglingQuantifier indicates a quantifier with no preceding pattern,
	// such as "*" at the start of an expression.
	ErrDanglingQuantifier = errors.New("expected pattern before quantifier")

	// ErrUnmatchedParen indicates an unopened ')' or an unclosed '('.
	ErrUnmatchedParen = errors.New("unmatched parenthesis")

	// ErrEmptyBranch indicates an alternation branch closed by '|' with
	// no content, such as "|a" or "a||b". A trailing empty branch as in
	// "a|" is allowed and matches the empty string.
	ErrEmptyBranch = errors.New("empty alternation branch")

	// ErrUnterminatedClass indicates a '[' with no closing ']'.
	ErrUnterminatedClass = errors.New("unterminated character class")

	// ErrDanglingRange indicates a '-' at the end of a character class,
	// such as "[a-]".
	ErrDanglingRange = errors.New("expected character after '-' in class")

	// ErrBadRepeat indicates a malformed '{m,n}' repetition.
	ErrBadRepeat = errors.New("malformed repetition bounds")

	// ErrBadBackref indicates a malformed or out-of-range backreference.
	ErrBadBackref = errors.New("invalid backreference")

	// ErrTrailingEscape indicates a '\' at the end of the pattern.
	ErrTrailingEscape = errors.New("trailing backslash")
)

// CompileError wraps a parse error with the pattern and the byte position
// at which compilation failed.
type CompileError struct {
	Pattern string
	Pos     int
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("compiling pattern %q: at %d: %v", e.Pattern, e.Pos, e.Err)
	}
	return fmt.Sprintf("compiling pattern: at %d: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
