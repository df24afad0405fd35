package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a batch run.
type Metrics struct {
	FilesScanned    prometheus.Counter
	DecodeFailures  prometheus.Counter
	FilesAggregated prometheus.Counter
	PointsRead      prometheus.Counter
	PointsInside    prometheus.Counter
	SurfaceCells    prometheus.Gauge

	RunDuration *prometheus.HistogramVec // labels: mode={select,accumulate,report}

	// Record reader cache.
	ReaderCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all batch metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FilesScanned,
		m.DecodeFailures,
		m.FilesAggregated,
		m.PointsRead,
		m.PointsInside,
		m.SurfaceCells,
		m.RunDuration,
		m.ReaderCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "files_scanned_total",
			Help:      "Directory entries considered by the forecast file selector.",
		}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "filename_decode_failures_total",
			Help:      "Entries skipped because their name did not decode to a date pair.",
		}),
		FilesAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "files_aggregated_total",
			Help:      "Forecast data files clipped and folded into the accumulated surface.",
		}),
		PointsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "points_read_total",
			Help:      "Grid readings read from forecast data files.",
		}),
		PointsInside: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "points_inside_total",
			Help:      "Grid readings that fell inside or on the boundary.",
		}),
		SurfaceCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "precip",
			Name:      "surface_cells",
			Help:      "Distinct coordinates in the last accumulated surface.",
		}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "precip",
			Name:      "run_duration_seconds",
			Help:      "Duration of a batch run by mode.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"mode"}),
		ReaderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "precip",
			Name:      "reader_cache_total",
			Help:      "Record reader cache lookups by result.",
		}, []string{"result"}),
	}
}

// WriteTextfile dumps the default registry in the text exposition format for
// the node-exporter textfile collector. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
