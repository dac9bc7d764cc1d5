// Package metrics exposes Prometheus instrumentation for dataset builds.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RowsLoaded counts rows read per source file kind.
	RowsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arepas",
		Name:      "rows_loaded_total",
		Help:      "Rows loaded from input sources.",
	}, []string{"source"})

	// StageRows counts rows surviving each pipeline stage.
	StageRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arepas",
		Name:      "stage_rows_total",
		Help:      "Rows emitted by each pipeline stage.",
	}, []string{"stage"})

	// RunsTotal counts completed dataset builds by outcome.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arepas",
		Name:      "runs_total",
		Help:      "Dataset build runs by final status.",
	}, []string{"status"})

	// RunDuration observes wall-clock build time.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "arepas",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of dataset builds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Handler serves the default registry for the API's /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
