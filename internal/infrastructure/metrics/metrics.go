package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesDeleted prometheus.Counter
	EntryAmount    *prometheus.HistogramVec

	// Query metrics
	PagesFetched         prometheus.Counter
	StaleResultsDropped  prometheus.Counter
	QueryErrors          *prometheus.CounterVec
	ReportsComputed      prometheus.Counter
	ReportEntriesScanned prometheus.Histogram

	// Export metrics
	ExportsServed prometheus.Counter
	ExportsEmpty  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_entries_created_total",
			Help: "Total number of entries created",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_entries_deleted_total",
			Help: "Total number of entries deleted",
		}),
		EntryAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "verduapp_entry_amount",
				Help:    "Recorded entry amounts",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000},
			},
			[]string{"type"},
		),

		PagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_pages_fetched_total",
			Help: "Total number of paginated fetches",
		}),
		StaleResultsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_stale_results_dropped_total",
			Help: "Total number of superseded query results discarded",
		}),
		QueryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "verduapp_query_errors_total",
				Help: "Total number of query errors by operation",
			},
			[]string{"operation"},
		),
		ReportsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_reports_computed_total",
			Help: "Total number of report aggregations computed",
		}),
		ReportEntriesScanned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "verduapp_report_entries_scanned",
			Help:    "Entries scanned per report aggregation",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		}),

		ExportsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_exports_served_total",
			Help: "Total number of CSV exports served",
		}),
		ExportsEmpty: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verduapp_exports_empty_total",
			Help: "Total number of CSV exports rejected for having no data",
		}),
	}
}
