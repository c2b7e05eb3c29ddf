// Package metrics registers the Prometheus metrics exposed by the
// context engine. The engine degrades softly on every internal failure,
// so these counters are the only place where degradation is visible:
// watch embed_failures_total and documents_skipped_total to tell a
// healthy empty context from a broken one.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bankrag"

// Label values for retrievals_total.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
)

// Label values for embed_failures_total.
const (
	OpBatch = "batch"
	OpQuery = "query"
)

// Metrics holds all counters owned by the engine. A single instance is
// created per engine and registered against an injected registry so
// tests stay hermetic.
type Metrics struct {
	// DocumentsLoaded counts documents successfully loaded into the index.
	DocumentsLoaded prometheus.Counter

	// DocumentsSkipped counts configured documents missing from storage.
	DocumentsSkipped prometheus.Counter

	// IndexChunks is the number of chunks in the knowledge index.
	IndexChunks prometheus.Gauge

	// EmbedFailures counts failed embedding calls, partitioned by
	// operation: batch (index build) or query.
	EmbedFailures *prometheus.CounterVec

	// CacheHits and CacheMisses count query-embedding cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Retrievals counts completed retrieve calls, partitioned by
	// outcome: ok (context returned) or empty.
	Retrievals *prometheus.CounterVec
}

// New registers all engine metrics against reg. Passing a fresh
// prometheus.NewRegistry keeps the default registry clean.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DocumentsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "documents_loaded_total",
			Help:      "Documents loaded into the knowledge index.",
		}),
		DocumentsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "documents_skipped_total",
			Help:      "Configured documents missing from storage and skipped.",
		}),
		IndexChunks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "chunks",
			Help:      "Chunks currently held in the knowledge index.",
		}),
		EmbedFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "failures_total",
			Help:      "Failed embedding calls, partitioned by operation.",
		}, []string{"op"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "querycache",
			Name:      "hits_total",
			Help:      "Query-embedding cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "querycache",
			Name:      "misses_total",
			Help:      "Query-embedding cache misses.",
		}),
		Retrievals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieve",
			Name:      "retrievals_total",
			Help:      "Completed retrieve calls, partitioned by outcome.",
		}, []string{"outcome"}),
	}
}
