package copattern

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats tracks Grammar execution statistics.
type Stats struct {
	// Matches counts top-level matches that succeeded
	Matches uint64

	// Misses counts top-level matches that failed
	Misses uint64

	// HookVetoes counts pre-match hooks that rejected a tagged pattern
	HookVetoes uint64

	// ScannerSearches counts Until scans served by a byte search kernel
	ScannerSearches uint64
}

// counters is the live form of Stats. A Grammar is shared by concurrent
// matchers, so each counter sits on its own cache line.
type counters struct {
	matches         atomic.Uint64
	_               cpu.CacheLinePad
	misses          atomic.Uint64
	_               cpu.CacheLinePad
	hookVetoes      atomic.Uint64
	_               cpu.CacheLinePad
	scannerSearches atomic.Uint64
	_               cpu.CacheLinePad
}

func (c *counters) snapshot() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Matches:         c.matches.Load(),
		Misses:          c.misses.Load(),
		HookVetoes:      c.hookVetoes.Load(),
		ScannerSearches: c.scannerSearches.Load(),
	}
}

func (c *counters) reset() {
	c.matches.Store(0)
	c.misses.Store(0)
	c.hookVetoes.Store(0)
	c.scannerSearches.Store(0)
}
