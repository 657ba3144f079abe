// Package metrics holds the process metrics registry.
// The Registry is created once in main and passed by handle into the ingest
// runner and the API mount, so tests can use an isolated registry each
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the prometheus registry with the counters quakewatch emits
type Registry struct {
	reg *prometheus.Registry

	// IngestedTotal counts successfully stored (non-duplicate) earthquake records
	IngestedTotal prometheus.Counter

	// DedupedTotal counts feed entries skipped because their usgs_id already exists
	DedupedTotal prometheus.Counter

	// CyclesTotal counts completed ingestion cycles regardless of outcome
	CyclesTotal prometheus.Counter

	// CycleFailures counts ingestion cycles that ended with an error
	CycleFailures prometheus.Counter

	// FetchSeconds observes feed fetch latency
	FetchSeconds prometheus.Summary
}

// New builds a Registry with all counters registered
func New() *Registry {
	reg := prometheus.NewRegistry()

	m := &Registry{
		reg: reg,
		IngestedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakewatch",
			Name:      "ingested_total",
			Help:      "Total number of ingested earthquake records",
		}),
		DedupedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakewatch",
			Name:      "deduped_total",
			Help:      "Total number of feed entries skipped as duplicates",
		}),
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakewatch",
			Name:      "ingest_cycles_total",
			Help:      "Total number of completed ingestion cycles",
		}),
		CycleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakewatch",
			Name:      "ingest_cycle_failures_total",
			Help:      "Total number of ingestion cycles that failed",
		}),
		FetchSeconds: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "quakewatch",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Time spent fetching the upstream feed",
		}),
	}

	reg.MustRegister(m.IngestedTotal, m.DedupedTotal, m.CyclesTotal, m.CycleFailures, m.FetchSeconds)
	return m
}

// Handler returns the text exposition handler for this registry
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests
func (m *Registry) Gatherer() prometheus.Gatherer { return m.reg }
