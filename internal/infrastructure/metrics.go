package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics, registered once on the default registry. Labels stay
// low-cardinality: document type only.
var (
	DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "entsocli",
		Subsystem: "pipeline",
		Name:      "documents_processed_total",
		Help:      "Documents successfully decoded and normalized.",
	}, []string{"document_type"})

	DocumentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "entsocli",
		Subsystem: "pipeline",
		Name:      "documents_failed_total",
		Help:      "Documents rejected with a structural decode error.",
	})

	RowsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "entsocli",
		Subsystem: "pipeline",
		Name:      "rows_emitted_total",
		Help:      "Normalized rows produced.",
	}, []string{"document_type"})

	ResolutionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "entsocli",
		Subsystem: "pipeline",
		Name:      "resolution_fallbacks_total",
		Help:      "Periods whose resolution code was not recognized and fell back to the configured default.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "entsocli",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)
