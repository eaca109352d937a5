// engine.go contains the Engine, compilation and the search entry points.

package meta

import (
	"github.com/coregx/retrace/backtrack"
	"github.com/coregx/retrace/literal"
	"github.com/coregx/retrace/prefilter"
)

// Engine executes a compiled pattern over input strings.
//
// The Engine and everything it holds are immutable after compilation and
// safe for concurrent use. The Matchers it returns are single-use,
// single-goroutine iterators.
//
// Example:
//
//	engine, err := meta.Compile("(foo|bar)baz")
//	if err != nil {
//	    return err
//	}
//
//	m := engine.Matches("xx foobaz yy")
//	for match, ok := m.Next(); ok; match, ok = m.Next() {
//	    println(match.String())
//	}
type Engine struct {
	prog   *backtrack.Program
	pre    prefilter.Prefilter
	config Config
}

// Compile builds an Engine for pattern with DefaultConfig.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig builds an Engine with explicit configuration. The
// configuration is validated first; pattern errors come back as
// *backtrack.CompileError.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	prog, err := backtrack.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return &Engine{
		prog:   prog,
		pre:    buildPrefilter(prog, config),
		config: config,
	}, nil
}

// buildPrefilter extracts literal prefixes and selects a prefilter over
// them, or returns nil when the configuration or the pattern rules one
// out. Case-insensitive engines never prefilter: extracted prefixes are
// exact bytes and would skip differently-cased match starts.
func buildPrefilter(prog *backtrack.Program, config Config) prefilter.Prefilter {
	if !config.EnablePrefilter || !config.CaseSensitive {
		return nil
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	})
	prefixes := extractor.ExtractPrefixes(prog)
	prefixes.Minimize()

	if prefixes.IsEmpty() || prefixes.MinLen() < config.MinLiteralLen {
		return nil
	}

	return prefilter.NewBuilder(prefixes).Build()
}

// Matches returns a Matcher over the non-overlapping matches of the
// pattern in src, with the engine's prefilter wired in as the candidate
// skipper.
func (e *Engine) Matches(src string) *backtrack.Matcher {
	m := backtrack.NewMatcher(e.prog, src, !e.config.CaseSensitive)
	if e.pre != nil {
		m.SetSkipper(&skipAdapter{pre: e.pre, data: []byte(src)})
	}
	return m
}

// IsMatch reports whether src contains at least one match of the pattern.
// When every extracted literal covers a whole pattern alternative, finding
// one is already proof of a match and the engine is skipped entirely.
func (e *Engine) IsMatch(src string) bool {
	if e.pre != nil && e.pre.IsComplete() {
		return e.pre.Find([]byte(src), 0) >= 0
	}

	_, ok := e.Matches(src).Next()
	return ok
}

// NumCaptures returns the number of capture groups in the pattern.
func (e *Engine) NumCaptures() int {
	return e.prog.NumCaptures
}

// Prefilter returns the candidate prefilter built at compile time, nil
// when scanning runs unaided.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.pre
}

// skipAdapter bridges the []byte prefilter to the matcher's string-based
// Skipper. The haystack is converted once per scan, not once per Find.
type skipAdapter struct {
	pre  prefilter.Prefilter
	data []byte
}

// Find implements backtrack.Skipper.
func (a *skipAdapter) Find(_ string, from int) int {
	return a.pre.Find(a.data, from)
}
