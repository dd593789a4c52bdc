// Package scan provides the byte search kernels behind Until acceleration.
//
// All kernels are pure Go. IndexByte uses SWAR (SIMD Within A Register):
// eight bytes are loaded into a uint64 and tested in parallel with the
// zero-byte detection formula from Hacker's Delight. Index builds on IndexByte
// with a rare-byte heuristic, and IndexTable tests membership in a 256-entry
// table.
package scan

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// IndexByte returns the index of the first instance of c in b, or -1.
func IndexByte(b []byte, c byte) int {
	n := len(b)
	if n < 8 {
		for i := 0; i < n; i++ {
			if b[i] == c {
				return i
			}
		}
		return -1
	}

	// Broadcast c to every byte: 0x42 -> 0x4242424242424242.
	mask := uint64(c) * lo8

	i := 0
	for ; i+8 <= n; i += 8 {
		// Matching bytes become 0x00 after the XOR.
		x := binary.LittleEndian.Uint64(b[i:]) ^ mask
		if zero := (x - lo8) & ^x & hi8; zero != 0 {
			return i + bits.TrailingZeros64(zero)/8
		}
	}
	for ; i < n; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// Index returns the index of the first instance of needle in haystack,
// or -1. An empty needle matches at 0.
//
// Candidates are located by searching for the rarest byte of needle and
// then verified in full.
func Index(haystack, needle []byte) int {
	m, n := len(needle), len(haystack)
	switch {
	case m == 0:
		return 0
	case m > n:
		return -1
	case m == 1:
		return IndexByte(haystack, needle[0])
	}

	rareIdx := rarest(needle)
	rare := needle[rareIdx]
	// Candidate positions of the rare byte lie in [rareIdx, last].
	from, last := rareIdx, n-m+rareIdx
	for from <= last {
		p := IndexByte(haystack[from:last+1], rare)
		if p < 0 {
			return -1
		}
		p += from
		start := p - rareIdx
		if bytes.Equal(haystack[start:start+m], needle) {
			return start
		}
		from = p + 1
	}
	return -1
}

// Table is a byte membership set.
type Table [256]bool

// NewTable returns a table holding every byte of set.
func NewTable(set []byte) *Table {
	var t Table
	for _, c := range set {
		t[c] = true
	}
	return &t
}

// Has reports whether c is in the table.
func (t *Table) Has(c byte) bool {
	return t[c]
}

// IndexTable returns the index of the first byte of b present in t, or -1.
func IndexTable(b []byte, t *Table) int {
	if t == nil {
		return -1
	}
	for i, c := range b {
		if t[c] {
			return i
		}
	}
	return -1
}
