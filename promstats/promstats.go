// Package promstats exports copattern Grammar statistics to Prometheus.
//
// Example:
//
//	g := copattern.MustCompile(root, hooks)
//	prometheus.MustRegister(promstats.NewCollector("http", g))
package promstats

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/copattern"
)

// Source is anything that reports copattern statistics, such as a
// *copattern.Grammar.
type Source interface {
	Stats() copattern.Stats
}

// Collector is a prometheus.Collector reading counters from a Source at
// scrape time.
type Collector struct {
	source Source

	matches         *prometheus.Desc
	misses          *prometheus.Desc
	hookVetoes      *prometheus.Desc
	scannerSearches *prometheus.Desc
}

// NewCollector returns a collector for source. Every metric carries the
// constant label grammar=name.
func NewCollector(name string, source Source) *Collector {
	labels := prometheus.Labels{"grammar": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("copattern", "", metric), help, nil, labels)
	}
	return &Collector{
		source:          source,
		matches:         desc("matches_total", "Top-level matches that succeeded."),
		misses:          desc("misses_total", "Top-level matches that failed."),
		hookVetoes:      desc("hook_vetoes_total", "Tagged patterns rejected by a pre-match hook."),
		scannerSearches: desc("scanner_searches_total", "Until scans served by a byte search kernel."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.matches
	ch <- c.misses
	ch <- c.hookVetoes
	ch <- c.scannerSearches
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.matches, prometheus.CounterValue, float64(s.Matches))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.hookVetoes, prometheus.CounterValue, float64(s.HookVetoes))
	ch <- prometheus.MustNewConstMetric(c.scannerSearches, prometheus.CounterValue, float64(s.ScannerSearches))
}
