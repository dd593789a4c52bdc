package copattern

import (
	"slices"
	"strconv"
)

// Unbounded is the max argument to Repeat for a repetition without an upper
// limit.
const Unbounded = -1

type sequence[E comparable] struct {
	ps []Pattern[E]
}

// Seq matches each pattern in turn, each starting where the previous one
// ended. It fails, consuming nothing, if any of them fails.
func Seq[E comparable](ps ...Pattern[E]) Pattern[E] {
	checkOperands("Seq", ps)
	if len(ps) == 1 {
		return ps[0]
	}
	return &sequence[E]{ps: slices.Clone(ps)}
}

func (p *sequence[E]) match(m *machine[E], at int) (int, bool) {
	pos := at
	for _, sub := range p.ps {
		next, ok := sub.match(m, pos)
		if !ok {
			return 0, false
		}
		pos = next
	}
	return pos, true
}

func (p *sequence[E]) children() []Pattern[E] { return p.ps }

func (p *sequence[E]) String() string { return joinPatterns(p.ps, " ") }

type alternation[E comparable] struct {
	ps []Pattern[E]
}

// Alt is ordered choice: it returns the result of the first pattern that
// matches at the current position. Later alternatives are not attempted
// once one succeeds, even if they would match more input.
func Alt[E comparable](ps ...Pattern[E]) Pattern[E] {
	checkOperands("Alt", ps)
	if len(ps) == 1 {
		return ps[0]
	}
	return &alternation[E]{ps: slices.Clone(ps)}
}

func (p *alternation[E]) match(m *machine[E], at int) (int, bool) {
	for _, sub := range p.ps {
		if end, ok := sub.match(m, at); ok {
			return end, true
		}
	}
	return 0, false
}

func (p *alternation[E]) children() []Pattern[E] { return p.ps }

func (p *alternation[E]) String() string { return joinPatterns(p.ps, " | ") }

type repetition[E comparable] struct {
	inner    Pattern[E]
	min, max int
}

// Repeat matches inner greedily, up to max times, and succeeds if it matched
// at least min times. Each repetition starts where the previous one ended.
//
// The count is never reduced to let a following pattern match. With max
// set to Unbounded, a repetition that consumes nothing ends the loop once
// min repetitions have matched.
//
// Repeat panics if min is negative or max is less than min.
func Repeat[E comparable](inner Pattern[E], min, max int) Pattern[E] {
	if inner == nil {
		buildPanic("Repeat", "nil inner pattern")
	}
	if min < 0 {
		buildPanic("Repeat", "negative min %d", min)
	}
	if max != Unbounded && max < min {
		buildPanic("Repeat", "max %d is less than min %d", max, min)
	}
	return &repetition[E]{inner: inner, min: min, max: max}
}

// Exactly matches inner exactly n times.
func Exactly[E comparable](inner Pattern[E], n int) Pattern[E] {
	return Repeat(inner, n, n)
}

// Optional matches inner zero or one time.
func Optional[E comparable](inner Pattern[E]) Pattern[E] {
	return Repeat(inner, 0, 1)
}

func (p *repetition[E]) match(m *machine[E], at int) (int, bool) {
	pos, n := at, 0
	for p.max == Unbounded || n < p.max {
		next, ok := p.inner.match(m, pos)
		if !ok {
			break
		}
		n++
		if next == pos && p.max == Unbounded && n >= p.min {
			// Every further repetition would match here too.
			return pos, true
		}
		pos = next
	}
	if n < p.min {
		return 0, false
	}
	return pos, true
}

func (p *repetition[E]) children() []Pattern[E] { return []Pattern[E]{p.inner} }

func (p *repetition[E]) String() string {
	hi := ""
	if p.max != Unbounded {
		hi = strconv.Itoa(p.max)
	}
	return p.inner.String() + "{" + strconv.Itoa(p.min) + "," + hi + "}"
}

// TaggedPattern is a pattern whose matched span is reported to the visitor
// under its tag.
type TaggedPattern[E comparable] struct {
	inner Pattern[E]
	tag   Tag
}

// Tagged wraps inner so that each successful match of it is reported to the
// visitor under tag. Tagging does not change what inner matches.
//
// The returned pattern is a *TaggedPattern.
func Tagged[E comparable](inner Pattern[E], tag Tag) Pattern[E] {
	if inner == nil {
		buildPanic("Tagged", "nil inner pattern")
	}
	return &TaggedPattern[E]{inner: inner, tag: tag}
}

// Tag returns the tag of p.
func (p *TaggedPattern[E]) Tag() Tag { return p.tag }

// Inner returns the wrapped pattern.
func (p *TaggedPattern[E]) Inner() Pattern[E] { return p.inner }

// match runs the three phases of a tagged match: the pre-match hook for the
// tag, if any, then the inner pattern, then the visitor.
func (p *TaggedPattern[E]) match(m *machine[E], at int) (int, bool) {
	if hook := m.hooks[p.tag]; hook != nil {
		if !hook(p, m.in, at, m.end, m.visitor) {
			if m.stats != nil {
				m.stats.hookVetoes.Add(1)
			}
			return 0, false
		}
	}
	end, ok := p.inner.match(m, at)
	if !ok {
		return 0, false
	}
	m.visitor.Visit(p.tag, m.in, at, end)
	return end, true
}

func (p *TaggedPattern[E]) children() []Pattern[E] { return []Pattern[E]{p.inner} }

func (p *TaggedPattern[E]) String() string { return p.inner.String() + p.tag.String() }

func checkOperands[E comparable](op string, ps []Pattern[E]) {
	if len(ps) == 0 {
		buildPanic(op, "no patterns")
	}
	for i, p := range ps {
		if p == nil {
			buildPanic(op, "nil pattern at index %d", i)
		}
	}
}
