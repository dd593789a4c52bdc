package copattern

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/copattern/internal/scan"
)

// scanner finds the first position at or after at where the inner pattern
// of an Until matches. It is only built for inner patterns whose match
// depends on nothing but the input bytes (no tags, no hooks, no functions),
// so a scanner hit is a complete match and needs no verification.
//
// in is the input truncated to the end bound.
type scanner interface {
	find(in []byte, at int) int

	// usable reports whether the scanner applies under the configured
	// Aho-Corasick threshold.
	usable(minAC int) bool
}

// newScanner selects a scanner for inner, or returns nil when inner must be
// probed position by position:
//   - single byte literal: memchr
//   - longer literal: memmem
//   - byte set: table scan
//   - choice of two or more non-empty byte literals: Aho-Corasick
func newScanner[E comparable](inner Pattern[E]) scanner {
	switch p := any(inner).(type) {
	case *literal[byte]:
		switch len(p.seq) {
		case 0:
			return nil
		case 1:
			return byteScanner(p.seq[0])
		}
		return literalScanner(p.seq)
	case *anyOf[byte]:
		return tableScanner{table: p.table}
	case *alternation[byte]:
		lits, ok := literalChoices(p, nil)
		if !ok || len(lits) < 2 {
			return nil
		}
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern(lit)
		}
		auto, err := builder.Build()
		if err != nil {
			return nil
		}
		s := &acScanner{auto: auto, lits: lits}
		for _, lit := range lits {
			s.maxLen = max(s.maxLen, len(lit))
		}
		return s
	}
	return nil
}

// literalChoices flattens an alternation whose leaves are all non-empty
// byte literals.
func literalChoices(p *alternation[byte], dst [][]byte) ([][]byte, bool) {
	for _, sub := range p.ps {
		switch s := sub.(type) {
		case *literal[byte]:
			if len(s.seq) == 0 {
				return nil, false
			}
			dst = append(dst, s.seq)
		case *alternation[byte]:
			var ok bool
			if dst, ok = literalChoices(s, dst); !ok {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return dst, true
}

type byteScanner byte

func (s byteScanner) find(in []byte, at int) int {
	if at >= len(in) {
		return -1
	}
	return offset(at, scan.IndexByte(in[at:], byte(s)))
}

func (byteScanner) usable(int) bool { return true }

type literalScanner []byte

func (s literalScanner) find(in []byte, at int) int {
	if at >= len(in) {
		return -1
	}
	return offset(at, scan.Index(in[at:], s))
}

func (literalScanner) usable(int) bool { return true }

type tableScanner struct {
	table *scan.Table
}

func (s tableScanner) find(in []byte, at int) int {
	if at >= len(in) {
		return -1
	}
	return offset(at, scan.IndexTable(in[at:], s.table))
}

func (tableScanner) usable(int) bool { return true }

// acScanner searches for the leftmost occurrence of any literal of an
// alternation.
type acScanner struct {
	auto   *ahocorasick.Automaton
	lits   [][]byte
	maxLen int
}

func (s *acScanner) find(in []byte, at int) int {
	if at >= len(in) {
		return -1
	}
	m := s.auto.Find(in, at)
	if m == nil {
		return -1
	}
	// An occurrence starting before m.Start ends at or after m.End, so it
	// starts no earlier than m.End-maxLen. Checking that window keeps the
	// result leftmost whichever match kind the automaton reports.
	for pos := max(at, m.End-s.maxLen); pos < m.Start; pos++ {
		for _, lit := range s.lits {
			if bytes.HasPrefix(in[pos:], lit) {
				return pos
			}
		}
	}
	return m.Start
}

func (s *acScanner) usable(minAC int) bool { return len(s.lits) >= minAC }

func offset(at, i int) int {
	if i < 0 {
		return -1
	}
	return at + i
}
