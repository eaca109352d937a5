// Package retrace provides a backtracking regular-expression engine for Go.
//
// retrace implements a compact regex dialect with capture groups and numeric
// backreferences through direct backtracking over a compiled pattern tree:
//   - Literal extraction and prefiltering (memchr, memmem, Aho-Corasick)
//     skip the scan past positions no match can start at
//   - Copy-on-write match contexts make backtracking attempts cheap
//   - Streaming match iteration over a subject string
//
// Supported syntax: literals and escapes, '.', character classes ([abc],
// [a-z0-9], [^...]), alternation '|', grouping '(...)' (always capturing),
// quantifiers '?', '*', '+' and '{m,n}' (lazy '*?' and '+?'), anchors '^'
// and '$', and backreferences '\1' or '\k<1>'. There are no perl classes:
// '\d' is the literal 'd'.
//
// Basic usage:
//
//	re, err := retrace.Compile(`go+d`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.Match("good morning") // true
//
//	it := re.FindMatches("god? gooood!")
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Println(m) // [0,3]: "god" then [5,11]: "gooood"
//	}
//
// Advanced usage:
//
//	// Case-insensitive matching
//	config := retrace.DefaultConfig()
//	config.CaseSensitive = false
//	re, err := retrace.CompileWithConfig("hello", config)
//
// Matching backtracks, so adversarial patterns can be slow on adversarial
// input. Use the stdlib regexp package when linear-time guarantees matter
// more than backreferences.
package retrace

import (
	"strings"

	"github.com/coregx/retrace/backtrack"
	"github.com/coregx/retrace/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is immutable and safe to use concurrently from multiple
// goroutines. The Matcher returned by FindMatches holds scan state and is
// single-goroutine.
//
// Example:
//
//	re := retrace.MustCompile(`hello`)
//	if re.Match("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a regular expression pattern.
//
// On a syntax error the returned error is a *backtrack.CompileError
// identifying the pattern and the offending position.
//
// Example:
//
//	re, err := retrace.Compile(`[0-9]{2,4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	engine, err := meta.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var wordRegex = retrace.MustCompile(`[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("retrace: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := retrace.DefaultConfig()
//	config.EnablePrefilter = false
//	re, err := retrace.CompileWithConfig(`(a|b)c`, config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
//
// Example:
//
//	config := retrace.DefaultConfig()
//	config.CaseSensitive = false
//	re, _ := retrace.CompileWithConfig("pattern", config)
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// MatchString reports whether src contains any match of pattern. It
// compiles the pattern for a single use; when matching repeatedly, compile
// once with Compile instead.
//
// Example:
//
//	ok, err := retrace.MatchString(`^[a-z]+$`, "hello")
//	// ok == true
func MatchString(pattern, src string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(src), nil
}

// QuoteMeta returns a string that escapes all regular expression
// metacharacters inside the argument text; the returned string is a regular
// expression matching the literal text.
//
// Example:
//
//	escaped := retrace.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := retrace.MustCompile(escaped)
//	re.Match("hello.world") // true
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	if !strings.ContainsAny(s, special) {
		return s
	}

	var b strings.Builder
	b.Grow(2 * len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Match reports whether src contains any match of the pattern.
//
// Example:
//
//	re := retrace.MustCompile(`[0-9]+`)
//	if re.Match("hello 123") {
//	    println("contains digits")
//	}
func (r *Regex) Match(src string) bool {
	return r.engine.IsMatch(src)
}

// FindMatches returns an iterator over the non-overlapping matches of the
// pattern in src, leftmost first. The returned Matcher is single-use and
// not safe for concurrent use.
//
// Example:
//
//	re := retrace.MustCompile(`[0-9]+`)
//	it := re.FindMatches("1 22 333")
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Println(m.Start, m.Text)
//	}
func (r *Regex) FindMatches(src string) *backtrack.Matcher {
	return r.engine.Matches(src)
}

// FindAll returns all non-overlapping matches of the pattern in src,
// leftmost first. Returns nil if there is no match.
//
// Example:
//
//	re := retrace.MustCompile(`[0-9]+`)
//	matches := re.FindAll("1 22 333")
//	// matches[0].Text == "1", matches[1].Text == "22", ...
func (r *Regex) FindAll(src string) []backtrack.Match {
	var matches []backtrack.Match
	it := r.engine.Matches(src)
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		matches = append(matches, m)
	}
	return matches
}

// ReplaceAll returns a copy of src with every match of the pattern replaced
// by repl. The replacement is literal text; '$' has no special meaning.
// When the pattern does not match, src is returned as is, with no copy.
//
// A zero-width match inserts repl at the match position.
//
// Example:
//
//	re := retrace.MustCompile(`a.?b`)
//	result := re.ReplaceAll("abcdacb", "0")
//	// result == "0cd0"
func (r *Regex) ReplaceAll(src, repl string) string {
	matches := r.FindAll(src)
	if len(matches) == 0 {
		return src
	}

	// The replacement is fixed, so the result length is known exactly.
	replaced := 0
	for _, m := range matches {
		replaced += len(m.Text)
	}

	var b strings.Builder
	b.Grow(len(src) - replaced + len(repl)*len(matches))

	lastEnd := 0
	for _, m := range matches {
		start, end := m.Span()
		b.WriteString(src[lastEnd:start])
		b.WriteString(repl)
		lastEnd = end
	}
	b.WriteString(src[lastEnd:])
	return b.String()
}

// NumCaptures returns the number of parenthesized capture groups in the
// pattern. Group ids are 1-based in backreferences; Matcher.Captures
// returns group i at index i-1.
//
// Example:
//
//	re := retrace.MustCompile(`([a-z]+)@([a-z]+)`)
//	println(re.NumCaptures()) // 2
func (r *Regex) NumCaptures() int {
	return r.engine.NumCaptures()
}

// String returns the source text used to compile the regular expression.
//
// Example:
//
//	re := retrace.MustCompile(`[0-9]+`)
//	println(re.String()) // `[0-9]+`
func (r *Regex) String() string {
	return r.pattern
}
