package copattern

import (
	"errors"
	"fmt"
	"maps"
)

// Match attempts p at the start of in and returns the end of the match.
// Trailing input after the match is not a failure; end a grammar with
// ScanToEnd or a similar pattern to require the whole input.
//
// Tagged spans are reported to v, which may be nil. No pre-match hooks run;
// use Compile to register them.
func Match[E comparable](p Pattern[E], in []E, v Visitor[E]) (end int, ok bool) {
	return MatchRange(p, in, 0, len(in), v)
}

// MatchRange attempts p against in[begin:end]. Positions passed to the
// visitor and the returned end are indexes into in. Bounds outside in are
// reported as no match.
func MatchRange[E comparable](p Pattern[E], in []E, begin, end int, v Visitor[E]) (int, bool) {
	if !validRange(in, begin, end) {
		return 0, false
	}
	m := newMachine(in, end, v, nil, DefaultConfig(), nil)
	return p.match(m, begin)
}

func validRange[E any](in []E, begin, end int) bool {
	return begin >= 0 && begin <= end && end <= len(in)
}

// Grammar is a compiled root pattern together with its pre-match hooks.
//
// A Grammar is safe for concurrent use by multiple goroutines as long as
// each match has its own visitor.
type Grammar[E comparable] struct {
	root   Pattern[E]
	hooks  Hooks[E]
	config Config
	stats  counters
}

// Compile prepares root for matching with the given pre-match hooks, which
// may be nil. The hook table is copied; later changes to hooks have no
// effect on the Grammar.
//
// Every hook must be keyed on a tag that occurs in root.
func Compile[E comparable](root Pattern[E], hooks Hooks[E]) (*Grammar[E], error) {
	return CompileWithConfig(root, hooks, DefaultConfig())
}

// CompileWithConfig is Compile with a custom configuration.
func CompileWithConfig[E comparable](root Pattern[E], hooks Hooks[E], config Config) (*Grammar[E], error) {
	if root == nil {
		return nil, &CompileError{Err: errors.New("nil root pattern")}
	}
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: root.String(), Err: err}
	}

	known := make(map[Tag]bool)
	for _, t := range Tags(root) {
		known[t] = true
	}
	for t, h := range hooks {
		if !known[t] {
			return nil, &CompileError{Pattern: root.String(), Err: fmt.Errorf("%w %v", ErrUnknownTag, t)}
		}
		if h == nil {
			return nil, &CompileError{Pattern: root.String(), Err: fmt.Errorf("nil hook for tag %v", t)}
		}
	}

	return &Grammar[E]{
		root:   root,
		hooks:  maps.Clone(hooks),
		config: config,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile[E comparable](root Pattern[E], hooks Hooks[E]) *Grammar[E] {
	g, err := Compile(root, hooks)
	if err != nil {
		panic(err)
	}
	return g
}

// Root returns the root pattern.
func (g *Grammar[E]) Root() Pattern[E] { return g.root }

// Config returns the configuration the Grammar was compiled with.
func (g *Grammar[E]) Config() Config { return g.config }

// Match attempts the grammar at the start of in. See the package-level Match.
func (g *Grammar[E]) Match(in []E, v Visitor[E]) (end int, ok bool) {
	return g.MatchAt(in, 0, len(in), v)
}

// MatchAt attempts the grammar against in[begin:end].
func (g *Grammar[E]) MatchAt(in []E, begin, end int, v Visitor[E]) (int, bool) {
	if !validRange(in, begin, end) {
		g.stats.misses.Add(1)
		return 0, false
	}
	m := newMachine(in, end, v, g.hooks, g.config, &g.stats)
	pos, ok := g.root.match(m, begin)
	if !ok {
		g.stats.misses.Add(1)
		return 0, false
	}
	g.stats.matches.Add(1)
	return pos, true
}

// Stats returns a snapshot of the execution statistics.
func (g *Grammar[E]) Stats() Stats {
	return g.stats.snapshot()
}

// ResetStats clears the execution statistics.
func (g *Grammar[E]) ResetStats() {
	g.stats.reset()
}

// String returns the root pattern's description.
func (g *Grammar[E]) String() string {
	return g.root.String()
}
