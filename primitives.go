package copattern

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/coregx/copattern/internal/scan"
)

type literal[E comparable] struct {
	seq []E
}

// Literal matches seq exactly, element by element. An empty Literal always
// matches without consuming input.
func Literal[E comparable](seq ...E) Pattern[E] {
	return &literal[E]{seq: slices.Clone(seq)}
}

// Lit is Literal for byte input.
func Lit(s string) Pattern[byte] {
	return &literal[byte]{seq: []byte(s)}
}

func (p *literal[E]) match(m *machine[E], at int) (int, bool) {
	end := at + len(p.seq)
	if end > m.end {
		return 0, false
	}
	if !slices.Equal(m.in[at:end], p.seq) {
		return 0, false
	}
	return end, true
}

func (p *literal[E]) children() []Pattern[E] { return nil }

func (p *literal[E]) String() string {
	if b, ok := any(p.seq).([]byte); ok {
		return strconv.Quote(string(b))
	}
	return fmt.Sprint(p.seq)
}

type predicate[E comparable] struct {
	f func(E) bool
}

// Predicate matches a single element for which f returns true.
func Predicate[E comparable](f func(E) bool) Pattern[E] {
	if f == nil {
		buildPanic("Predicate", "nil function")
	}
	return &predicate[E]{f: f}
}

func (p *predicate[E]) match(m *machine[E], at int) (int, bool) {
	if at >= m.end || !p.f(m.in[at]) {
		return 0, false
	}
	return at + 1, true
}

func (p *predicate[E]) children() []Pattern[E] { return nil }

func (p *predicate[E]) String() string { return "pred" }

type anyOf[E comparable] struct {
	set   map[E]struct{}
	elems []E
	table *scan.Table // byte input only
}

// AnyOf matches a single element that is a member of set.
func AnyOf[E comparable](set ...E) Pattern[E] {
	return newAnyOf(set)
}

// Set is AnyOf for byte input, taking its members from s.
func Set(s string) Pattern[byte] {
	return newAnyOf([]byte(s))
}

func newAnyOf[E comparable](set []E) *anyOf[E] {
	p := &anyOf[E]{set: make(map[E]struct{}, len(set))}
	for _, e := range set {
		if _, dup := p.set[e]; !dup {
			p.set[e] = struct{}{}
			p.elems = append(p.elems, e)
		}
	}
	if b, ok := any(p.elems).([]byte); ok {
		p.table = scan.NewTable(b)
	}
	return p
}

func (p *anyOf[E]) match(m *machine[E], at int) (int, bool) {
	if at >= m.end {
		return 0, false
	}
	if p.table != nil && m.isBytes {
		if !p.table.Has(m.bytes[at]) {
			return 0, false
		}
		return at + 1, true
	}
	if _, ok := p.set[m.in[at]]; !ok {
		return 0, false
	}
	return at + 1, true
}

func (p *anyOf[E]) children() []Pattern[E] { return nil }

func (p *anyOf[E]) String() string {
	if b, ok := any(p.elems).([]byte); ok {
		return "[" + strconv.Quote(string(b)) + "]"
	}
	return "anyof" + fmt.Sprint(p.elems)
}

type until[E comparable] struct {
	inner   Pattern[E]
	scanner scanner
}

// Until matches the shortest prefix, possibly empty, after which inner
// matches. The span matched by inner is not consumed.
//
// Positions are probed left to right from the current position up to and
// including the end of input; Until fails if inner matches at none of them.
// Probes run with the caller's visitor and hooks, so a tagged inner pattern
// reports every successful probe.
func Until[E comparable](inner Pattern[E]) Pattern[E] {
	if inner == nil {
		buildPanic("Until", "nil inner pattern")
	}
	return &until[E]{inner: inner, scanner: newScanner(inner)}
}

func (p *until[E]) match(m *machine[E], at int) (int, bool) {
	if p.scanner != nil && m.scanners && m.isBytes && p.scanner.usable(m.minAC) {
		if m.stats != nil {
			m.stats.scannerSearches.Add(1)
		}
		pos := p.scanner.find(m.bytes[:m.end], at)
		if pos < 0 {
			return 0, false
		}
		return pos, true
	}
	for pos := at; pos <= m.end; pos++ {
		if _, ok := p.inner.match(m, pos); ok {
			return pos, true
		}
	}
	return 0, false
}

func (p *until[E]) children() []Pattern[E] { return []Pattern[E]{p.inner} }

func (p *until[E]) String() string { return "until(" + p.inner.String() + ")" }

type scanToEnd[E comparable] struct{}

// ScanToEnd matches all remaining input.
func ScanToEnd[E comparable]() Pattern[E] {
	return scanToEnd[E]{}
}

func (scanToEnd[E]) match(m *machine[E], at int) (int, bool) {
	return m.end, true
}

func (scanToEnd[E]) children() []Pattern[E] { return nil }

func (scanToEnd[E]) String() string { return "rest" }

type funcPattern[E comparable] struct {
	f func(in []E, begin, end int) (int, bool)
}

// Func matches with a caller-supplied function. f receives the whole input,
// the current position and the end bound, and returns the end of its match.
// A returned position outside [begin, end] counts as no match.
func Func[E comparable](f func(in []E, begin, end int) (int, bool)) Pattern[E] {
	if f == nil {
		buildPanic("Func", "nil function")
	}
	return &funcPattern[E]{f: f}
}

func (p *funcPattern[E]) match(m *machine[E], at int) (int, bool) {
	end, ok := p.f(m.in, at, m.end)
	if !ok || end < at || end > m.end {
		return 0, false
	}
	return end, true
}

func (p *funcPattern[E]) children() []Pattern[E] { return nil }

func (p *funcPattern[E]) String() string { return "func" }

func joinPatterns[E comparable](ps []Pattern[E], sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
