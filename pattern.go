// Package copattern provides composable pattern combinators with a tag and
// visitor protocol for extracting structure from a sequence of elements.
//
// A grammar is a tree of immutable patterns built once and matched many
// times:
//   - Primitives: Literal, Predicate, AnyOf, Until, ScanToEnd, Func
//   - Combinators: Seq, Alt, Repeat (plus Exactly and Optional)
//   - Tagged: marks a sub-pattern whose matched span is reported to a Visitor
//
// Matching is ordered and greedy with no backtracking across siblings: Alt
// commits to the first alternative that matches, and Repeat consumes as many
// repetitions as it can, never giving one back to let a later pattern match.
// Order alternatives from most to least specific.
//
// Basic usage:
//
//	const (
//	    TagKey copattern.Tag = iota + 1
//	    TagValue
//	)
//
//	kv := copattern.Seq(
//	    copattern.Tagged(copattern.Until(copattern.Lit("=")), TagKey),
//	    copattern.Lit("="),
//	    copattern.Tagged(copattern.ScanToEnd[byte](), TagValue),
//	)
//
//	end, ok := copattern.Match(kv, []byte("lang=go"), copattern.VisitorFunc[byte](
//	    func(tag copattern.Tag, in []byte, begin, end int) {
//	        fmt.Println(tag, string(in[begin:end]))
//	    }))
//
// Tagged patterns report their span after their inner pattern has matched,
// so a child's Visit always precedes its parent's. Visits made inside a
// branch that later fails are not undone; visitors that care should
// overwrite rather than accumulate, or reset state in a pre-match Hook
// registered through Compile.
//
// Patterns and Grammars are safe for concurrent use. Visitors are not shared
// by the engine and normally live for a single match.
package copattern

import "strconv"

// Tag identifies a tagged pattern to visitors and hooks. Tags are declared
// by the grammar author, usually as an iota block; uniqueness is the
// author's responsibility.
type Tag int

// String returns the tag in the form "#n".
func (t Tag) String() string {
	return "#" + strconv.Itoa(int(t))
}

// Pattern is an immutable matching rule over elements of type E.
//
// The set of patterns is closed: values are created with the constructors
// in this package. Func covers custom span-level matching.
type Pattern[E comparable] interface {
	// match attempts the pattern at position at. On success it returns the
	// end of the matched span.
	match(m *machine[E], at int) (int, bool)

	// children returns the direct sub-patterns, in matching order.
	children() []Pattern[E]

	String() string
}

// Visitor receives the span of every tagged pattern that matches.
//
// in is the whole input; the matched span is in[begin:end].
type Visitor[E comparable] interface {
	Visit(tag Tag, in []E, begin, end int)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc[E comparable] func(tag Tag, in []E, begin, end int)

// Visit calls f.
func (f VisitorFunc[E]) Visit(tag Tag, in []E, begin, end int) {
	f(tag, in, begin, end)
}

type discard[E comparable] struct{}

func (discard[E]) Visit(Tag, []E, int, int) {}

// Hook runs before the inner pattern of a tagged pattern is attempted.
// It receives the tagged pattern, the input, the candidate start and the
// end bound. Returning false rejects the tagged pattern at this position
// without attempting its inner pattern.
//
// Hooks typically prepare visitor state that nested tags write into.
type Hook[E comparable] func(p *TaggedPattern[E], in []E, begin, end int, v Visitor[E]) bool

// Hooks maps tags to their pre-match hooks.
type Hooks[E comparable] map[Tag]Hook[E]

// machine holds the per-invocation state of a match.
type machine[E comparable] struct {
	in      []E
	bytes   []byte // in, when E is byte
	isBytes bool
	end     int
	visitor Visitor[E]
	hooks   Hooks[E]

	scanners bool
	minAC    int
	stats    *counters
}

func newMachine[E comparable](in []E, end int, v Visitor[E], hooks Hooks[E], config Config, stats *counters) *machine[E] {
	if v == nil {
		v = discard[E]{}
	}
	m := &machine[E]{
		in:       in,
		end:      end,
		visitor:  v,
		hooks:    hooks,
		scanners: config.EnableScanners,
		minAC:    config.MinAhoCorasickLiterals,
		stats:    stats,
	}
	if b, ok := any(in).([]byte); ok {
		m.bytes, m.isBytes = b, true
	}
	return m
}

// Tags returns the distinct tags used in p, in depth-first order.
func Tags[E comparable](p Pattern[E]) []Tag {
	var (
		tags []Tag
		seen = make(map[Tag]bool)
	)
	var walk func(Pattern[E])
	walk = func(p Pattern[E]) {
		if t, ok := p.(*TaggedPattern[E]); ok && !seen[t.tag] {
			seen[t.tag] = true
			tags = append(tags, t.tag)
		}
		for _, c := range p.children() {
			walk(c)
		}
	}
	walk(p)
	return tags
}
