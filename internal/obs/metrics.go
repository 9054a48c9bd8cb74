package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and histograms exposed by one engine
// instance. Each instance gets its own prometheus.Registry (rather
// than registering against the global default, as the teacher's
// NewMetrics does) because a process may open more than one engine —
// against the default registerer a second Open would panic on
// duplicate metric registration.
type Metrics struct {
	Registry *prometheus.Registry

	Inserts       prometheus.Counter
	Deletes       prometheus.Counter
	Updates       prometheus.Counter
	SearchQueries prometheus.Counter
	SearchErrors  prometheus.Counter
	SearchLatency prometheus.Histogram
	VacuumRuns    prometheus.Counter
}

// NewMetrics builds a fresh registry and metric set for one engine.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Inserts: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_inserts_total",
			Help: "Total documents added",
		}),
		Deletes: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_deletes_total",
			Help: "Total documents soft-deleted",
		}),
		Updates: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_updates_total",
			Help: "Total metadata or vector updates",
		}),
		SearchQueries: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_search_queries_total",
			Help: "Total search queries",
		}),
		SearchErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_search_errors_total",
			Help: "Total search queries that returned an error",
		}),
		SearchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name: "annstore_search_latency_seconds",
			Help: "Search latency in seconds",
		}),
		VacuumRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "annstore_vacuum_runs_total",
			Help: "Total vacuum (offline rebuild) runs",
		}),
	}
}
