package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// cleaning pipeline.
type Metrics struct {
	RowsRead            prometheus.Counter
	RowsDropped         *prometheus.CounterVec // label: field (first missing required field)
	ObservationsEmitted prometheus.Counter
	SeasonObservations  *prometheus.CounterVec // label: season
	LoadDuration        prometheus.Histogram
	PipelineReady       prometheus.Gauge

	// Sink metrics.
	ObservationsPublished prometheus.Counter
	ArtifactsExported     prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "rows_read_total",
			Help:      "Total raw rows read from the CSV source.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows excluded during cleaning, by first missing required field.",
		}, []string{"field"}),
		ObservationsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "observations_emitted_total",
			Help:      "Cleaned observations that survived the drop filter.",
		}),
		SeasonObservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "season_observations_total",
			Help:      "Cleaned observations by derived Martian season.",
		}, []string{"season"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mars_etl",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete extract-clean-aggregate run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mars_etl",
			Name:      "pipeline_ready",
			Help:      "1 once a dataset has been cleaned and aggregated, 0 before.",
		}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "observations_published_total",
			Help:      "Cleaned observations published to the Kafka sink topic.",
		}),
		ArtifactsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mars_etl",
			Name:      "artifacts_exported_total",
			Help:      "Chart dataset files written to the export directory.",
		}),
	}

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.ObservationsEmitted,
		m.SeasonObservations,
		m.LoadDuration,
		m.PipelineReady,
		m.ObservationsPublished,
		m.ArtifactsExported,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsRead:              prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mars_etl", Name: "rows_read_total"}),
		RowsDropped:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mars_etl", Name: "rows_dropped_total"}, []string{"field"}),
		ObservationsEmitted:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mars_etl", Name: "observations_emitted_total"}),
		SeasonObservations:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mars_etl", Name: "season_observations_total"}, []string{"season"}),
		LoadDuration:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mars_etl", Name: "load_duration_seconds"}),
		PipelineReady:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "mars_etl", Name: "pipeline_ready"}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mars_etl", Name: "observations_published_total"}),
		ArtifactsExported:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mars_etl", Name: "artifacts_exported_total"}),
	}
}
