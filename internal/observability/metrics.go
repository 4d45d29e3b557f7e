// Package observability provides Prometheus metrics for the comment analysis
// pipeline: ingestion counts, model call latency, datastore operations and
// exports.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Ingestion metrics
	CommentsIngested *prometheus.CounterVec // source: single|bulk
	IngestErrors     *prometheus.CounterVec // kind: validation|classification|database

	// Model metrics
	ModelRequests        *prometheus.CounterVec // status: ok|error
	ModelRequestDuration prometheus.Histogram

	// Datastore metrics
	DBOperations *prometheus.CounterVec // operation, status

	// Export metrics
	Exports *prometheus.CounterVec // format, status
}

// NewMetrics creates a new Metrics instance with all collectors registered
// on a private registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		CommentsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commentnet_comments_ingested_total",
			Help: "Number of comments classified and stored",
		}, []string{"source"}),
		IngestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commentnet_ingest_errors_total",
			Help: "Number of failed ingestion attempts by error kind",
		}, []string{"kind"}),
		ModelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commentnet_model_requests_total",
			Help: "Number of sentiment model invocations",
		}, []string{"status"}),
		ModelRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "commentnet_model_request_duration_seconds",
			Help:    "Latency of sentiment model invocations",
			Buckets: prometheus.DefBuckets,
		}),
		DBOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commentnet_db_operations_total",
			Help: "Number of datastore operations by outcome",
		}, []string{"operation", "status"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "commentnet_exports_total",
			Help: "Number of spreadsheet exports by outcome",
		}, []string{"format", "status"}),
	}

	collectors := []prometheus.Collector{
		m.CommentsIngested,
		m.IngestErrors,
		m.ModelRequests,
		m.ModelRequestDuration,
		m.DBOperations,
		m.Exports,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// Handler returns an http.Handler serving the metrics registry in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
