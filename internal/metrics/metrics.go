// Package metrics exposes the Prometheus instruments of the permission server.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the server instruments. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Operation outcomes by operation name and result kind ("ok" on success)
	Operations *prometheus.CounterVec

	// Audit entries appended since start
	AuditEntries prometheus.Counter

	// Current value of the access id counter
	LogCounter prometheus.Gauge

	// gRPC handling latency by full method name
	RequestLatency *prometheus.HistogramVec

	mu        sync.Mutex
	highWater uint64
}

// New creates Metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthperm_operations_total",
			Help: "Permission operations by operation and result",
		}, []string{"operation", "result"}),

		AuditEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthperm_audit_entries_total",
			Help: "Audit entries appended by this process",
		}),

		LogCounter: factory.NewGauge(prometheus.GaugeOpts{
			Name: "healthperm_audit_log_counter",
			Help: "Next access id to be allocated",
		}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthperm_grpc_request_duration_seconds",
			Help:    "Duration of gRPC request handling by method",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method"}),
	}
}

// IncrementOperation records the result of one operation.
func (m *Metrics) IncrementOperation(operation, result string) {
	if m != nil {
		m.Operations.WithLabelValues(operation, result).Inc()
	}
}

// RecordAuditEntry records an appended entry and the counter value after it.
// Appends finishing out of order never move the gauge backwards.
func (m *Metrics) RecordAuditEntry(nextID uint64) {
	if m == nil {
		return
	}
	m.AuditEntries.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if nextID > m.highWater {
		m.highWater = nextID
		m.LogCounter.Set(float64(nextID))
	}
}

// ObserveRequestLatency records the handling duration of a gRPC method.
func (m *Metrics) ObserveRequestLatency(method string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method).Observe(d.Seconds())
	}
}
