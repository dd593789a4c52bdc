package copattern

// Config controls how a Grammar executes.
//
// Example:
//
//	config := copattern.DefaultConfig()
//	config.EnableScanners = false // element-wise Until everywhere
//	g, err := copattern.CompileWithConfig(root, hooks, config)
type Config struct {
	// EnableScanners lets Until use byte search kernels (memchr, memmem,
	// byte tables, Aho-Corasick) when the input is []byte and the inner
	// pattern is a tag-free literal, byte set or choice of literals.
	// Results are identical either way.
	// Default: true
	EnableScanners bool

	// MinAhoCorasickLiterals is the smallest literal alternation that is
	// searched with an Aho-Corasick automaton. Smaller alternations are
	// probed one position at a time.
	// Default: 2
	MinAhoCorasickLiterals int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableScanners:         true,
		MinAhoCorasickLiterals: 2,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MinAhoCorasickLiterals: 2 to 10,000
func (c Config) Validate() error {
	if c.EnableScanners {
		if c.MinAhoCorasickLiterals < 2 || c.MinAhoCorasickLiterals > 10_000 {
			return &ConfigError{
				Field:   "MinAhoCorasickLiterals",
				Message: "must be between 2 and 10,000",
			}
		}
	}
	return nil
}
