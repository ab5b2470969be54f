package metrics

import (
	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RecordsRead    *prometheus.CounterVec
	RecordsWritten *prometheus.CounterVec
	CodecErrors    *prometheus.CounterVec
	CodecDuration  *prometheus.HistogramVec
	Comparisons    *prometheus.CounterVec
	Discrepancies  *prometheus.CounterVec
	DuplicateIDs   *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RecordsRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_read_total",
				Help:      "Transactions decoded, by format.",
			},
			[]string{"format"},
		),
		RecordsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_written_total",
				Help:      "Transactions encoded, by format.",
			},
			[]string{"format"},
		),
		CodecErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "codec_errors_total",
				Help:      "Failed reads and writes, by format, operation and error kind.",
			},
			[]string{"format", "op", "kind"},
		),
		CodecDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "codec_duration_seconds",
				Help:      "Time spent reading or writing a whole record set.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"format", "op"},
		),
		Comparisons: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comparisons_total",
				Help:      "Reconciliations, by outcome.",
			},
			[]string{"outcome"},
		),
		Discrepancies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discrepancies_total",
				Help:      "Reconciliation findings, by type.",
			},
			[]string{"type"},
		),
		DuplicateIDs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicate_ids_total",
				Help:      "Transaction ids seen more than once within one side.",
			},
			[]string{"side"},
		),
	}
}

// Gatherer exposes the registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteToTextfile writes the registry in the text exposition format for the
// node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
