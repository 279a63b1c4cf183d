package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// recall search service.
type Metrics struct {
	// Query path metrics.
	QueriesTotal       *prometheus.CounterVec // labels: entrypoint={location,date}, outcome={success,empty,error}
	QueryWarnings      *prometheus.CounterVec // labels: code
	APIRequestDuration prometheus.Histogram
	ResultsReturned    prometheus.Histogram
	TruncatedResults   prometheus.Counter

	// Feed metrics.
	FeedRuns         *prometheus.CounterVec // labels: outcome={success,empty,error}
	RecordsPublished prometheus.Counter
	FeedRunning      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recall_search",
			Name:      "queries_total",
			Help:      "Search queries executed, by entry point and outcome.",
		}, []string{"entrypoint", "outcome"}),
		QueryWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recall_search",
			Name:      "query_warnings_total",
			Help:      "Non-fatal advisories attached to query results, by code.",
		}, []string{"code"}),
		APIRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "recall_search",
			Name:      "api_request_duration_seconds",
			Help:      "openFDA API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ResultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "recall_search",
			Name:      "results_returned",
			Help:      "Number of records returned per query.",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		}),
		TruncatedResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "recall_search",
			Name:      "truncated_results_total",
			Help:      "Responses whose total match count exceeded the returned count.",
		}),
		FeedRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recall_search",
			Name:      "feed_runs_total",
			Help:      "Feed poll cycles, by outcome.",
		}, []string{"outcome"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "recall_search",
			Name:      "records_published_total",
			Help:      "Recall records published to the Kafka sink topic.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "recall_search",
			Name:      "feed_running",
			Help:      "1 when the feed loop is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueryWarnings,
		m.APIRequestDuration,
		m.ResultsReturned,
		m.TruncatedResults,
		m.FeedRuns,
		m.RecordsPublished,
		m.FeedRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "recall_search", Name: "queries_total"}, []string{"entrypoint", "outcome"}),
		QueryWarnings:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "recall_search", Name: "query_warnings_total"}, []string{"code"}),
		APIRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "recall_search", Name: "api_request_duration_seconds"}),
		ResultsReturned:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "recall_search", Name: "results_returned"}),
		TruncatedResults:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "recall_search", Name: "truncated_results_total"}),
		FeedRuns:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "recall_search", Name: "feed_runs_total"}, []string{"outcome"}),
		RecordsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "recall_search", Name: "records_published_total"}),
		FeedRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "recall_search", Name: "feed_running"}),
	}
}
