// Package metrics exposes Prometheus instrumentation for the generation
// pipeline: one histogram per stage plus a counter of runs and of the
// internal-degeneracy corrections the pipeline applies silently.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worldforge",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of a single pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	runsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "worldforge",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Number of completed generate() invocations.",
		},
	)

	degeneracyCorrections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worldforge",
			Subsystem: "pipeline",
			Name:      "degeneracy_corrections_total",
			Help:      "Count of silent internal-degeneracy corrections applied, by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(stageDuration, runsTotal, degeneracyCorrections)
}

// RecordStageDuration records how long a named pipeline stage took.
func RecordStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun increments the count of completed pipeline runs.
func RecordRun() {
	runsTotal.Inc()
}

// RecordDegeneracyCorrection increments the counter for a named recoverable
// degeneracy (e.g. "no_land", "no_realm_eligible_landmass", "unreached_dijkstra").
func RecordDegeneracyCorrection(kind string) {
	degeneracyCorrections.WithLabelValues(kind).Inc()
}
