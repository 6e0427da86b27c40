package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the wind
// calculation service.
type Metrics struct {
	CalcRequests *prometheus.CounterVec // labels: tool={calc,zones,peak,batch,import,sweep}, outcome={ok,invalid,error}
	CalcDuration prometheus.Histogram

	// Feature usage counters.
	FunnellingApplied prometheus.Counter
	InsetFlagged      prometheus.Counter
	RowsImported      prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CalcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windloads",
			Name:      "calc_requests_total",
			Help:      "Calculation requests by tool and outcome.",
		}, []string{"tool", "outcome"}),
		CalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "windloads",
			Name:      "calc_duration_seconds",
			Help:      "Duration of a full wind calculation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		FunnellingApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windloads",
			Name:      "funnelling_applied_total",
			Help:      "Calculations where a gap correction changed a coefficient.",
		}),
		InsetFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windloads",
			Name:      "inset_flagged_total",
			Help:      "Calculations where an inset corner attracted zone E.",
		}),
		RowsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windloads",
			Name:      "rows_imported_total",
			Help:      "Rows accepted from spreadsheet and CSV imports.",
		}),
	}

	prometheus.MustRegister(
		m.CalcRequests,
		m.CalcDuration,
		m.FunnellingApplied,
		m.InsetFlagged,
		m.RowsImported,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CalcRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "windloads", Name: "calc_requests_total"}, []string{"tool", "outcome"}),
		CalcDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "windloads", Name: "calc_duration_seconds"}),
		FunnellingApplied: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windloads", Name: "funnelling_applied_total"}),
		InsetFlagged:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windloads", Name: "inset_flagged_total"}),
		RowsImported:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "windloads", Name: "rows_imported_total"}),
	}
}
