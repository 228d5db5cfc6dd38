// Package metrics holds the Prometheus collectors shared by the report
// services, the graph sync job and the HTTP server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agency_atlas"

var (
	// ReportDuration measures report latency.
	// Labels: report, status (ok, error, timeout)
	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_duration_seconds",
		Help:      "Report build latency in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"report", "status"})

	// GraphFallbacks counts graph reads recomputed from the relational store.
	// Labels: operation, reason (probe, read)
	GraphFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_fallback_total",
		Help:      "Graph reads served by the relational fallback",
	}, []string{"operation", "reason"})

	// GraphSyncs counts graph sync runs.
	// Labels: status (COMPLETED, FAILED)
	GraphSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_sync_total",
		Help:      "Graph sync runs by outcome",
	}, []string{"status"})

	// HTTPRequests counts served HTTP requests.
	// Labels: method, route, code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})
)

// ObserveReport records how long a report took since start.
func ObserveReport(report, status string, start time.Time) {
	ReportDuration.WithLabelValues(report, status).Observe(time.Since(start).Seconds())
}
