// Package metrics wires Prometheus counters/histograms around the
// address-space service calls and the edit-node CAS retry loop
// (spec.md's DOMAIN STACK observability expansion).
//
// Grounded on the teacher's pkg/metrics/prometheus package (promauto
// GaugeVec/CounterVec construction against a package-level registry), made
// self-contained here: the teacher split registry lifecycle
// (metrics.IsEnabled/GetRegistry) from the per-component constructors
// (pkg/metrics/prometheus/*.go) across two packages; this repo keeps both
// in one package since there is a single service surface to instrument.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry *prometheus.Registry
	enabled  bool

	serviceCalls   *prometheus.CounterVec
	serviceLatency *prometheus.HistogramVec
	batchSize      *prometheus.HistogramVec
	editRetries    *prometheus.CounterVec
)

// Init creates the Prometheus registry and registers all collectors.
// Must be called once before Registry()/RecordServiceCall/etc. are used.
func Init() *prometheus.Registry {
	registry = prometheus.NewRegistry()
	enabled = true

	serviceCalls = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "opcua_service_calls_total",
			Help: "Total number of Read/Write/Browse service calls by service and status",
		},
		[]string{"service", "status"},
	)
	serviceLatency = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opcua_service_duration_seconds",
			Help:    "Service call duration in seconds by service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	batchSize = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opcua_service_batch_size",
			Help:    "Number of items in a Read/Write service batch",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"service"},
	)
	editRetries = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "opcua_editnode_retries_total",
			Help: "Total number of edit-node compare-and-swap retries by node class",
		},
		[]string{"node_class"},
	)

	return registry
}

// IsEnabled reports whether Init has been called.
func IsEnabled() bool {
	return enabled
}

// Registry returns the Prometheus registry, or nil if Init was never called.
func Registry() *prometheus.Registry {
	return registry
}

// RecordServiceCall records one Read/Write/Browse call's outcome.
func RecordServiceCall(service, status string, durationSeconds float64, items int) {
	if !enabled {
		return
	}
	serviceCalls.WithLabelValues(service, status).Inc()
	serviceLatency.WithLabelValues(service).Observe(durationSeconds)
	batchSize.WithLabelValues(service).Observe(float64(items))
}

// RecordEditRetry records one edit-node CAS retry for the given node class.
func RecordEditRetry(nodeClass string) {
	if !enabled {
		return
	}
	editRetries.WithLabelValues(nodeClass).Inc()
}
