// Package meta ties the compiler, the literal prefilter and the scan
// iterator together behind a single compile-and-search engine.
//
// Compilation analyzes the pattern once: literal prefixes are extracted
// and, when they pass the configured gates, a prefilter is built and wired
// into every Matcher the engine hands out as its candidate skipper. The
// match sequence never depends on the prefilter; it only skips positions
// no match can start at.
package meta

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CaseSensitive = false
//	engine, err := meta.CompileWithConfig("hello", config)
type Config struct {
	// CaseSensitive selects exact-case matching. When false, characters,
	// class bounds and backreferences compare case-folded, and literal
	// prefiltering is disabled because extracted prefixes are exact bytes.
	// Default: true
	CaseSensitive bool

	// EnablePrefilter enables literal-based candidate skipping.
	// When false, scanning attempts every position.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length of the shortest extracted
	// literal for a prefilter to be worth building. Shorter literals
	// produce too many candidates to pay off.
	// Default: 1 (single-byte prefilters allowed)
	MinLiteralLen int

	// MaxLiterals caps how many alternative prefixes extraction may
	// produce before giving up on prefiltering.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		CaseSensitive:   true,
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxLiterals:     64,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//
// Both apply only when EnablePrefilter is set.
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "retrace: invalid config: " + e.Field + ": " + e.Message
}
