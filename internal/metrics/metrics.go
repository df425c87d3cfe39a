// Package metrics provides Prometheus metrics for shelfkey
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for shelfkey
type Metrics struct {
	// gRPC request metrics
	GrpcRequestsTotal    *prometheus.CounterVec
	GrpcRequestDuration  *prometheus.HistogramVec
	GrpcRequestsInFlight prometheus.Gauge

	// Index metrics
	IndexOperationsTotal   *prometheus.CounterVec
	IndexOperationDuration *prometheus.HistogramVec
	IndexEntries           prometheus.Gauge

	// Key computation metrics
	KeysComputedTotal *prometheus.CounterVec

	ServerStartTime time.Time

	factory promauto.Factory
}

// NewMetrics creates all metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		ServerStartTime: time.Now(),
		factory:         f,
	}

	m.GrpcRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfkey_grpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "status"},
	)

	m.GrpcRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfkey_grpc_request_duration_seconds",
			Help:    "Duration of gRPC requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	m.GrpcRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfkey_grpc_requests_in_flight",
			Help: "Number of gRPC requests currently being processed",
		},
	)

	m.IndexOperationsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfkey_index_operations_total",
			Help: "Total number of shelf index operations",
		},
		[]string{"operation", "status"},
	)

	m.IndexOperationDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfkey_index_operation_duration_seconds",
			Help:    "Duration of shelf index operations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	m.IndexEntries = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfkey_index_entries",
			Help: "Number of entries in the shelf index",
		},
	)

	m.KeysComputedTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfkey_keys_computed_total",
			Help: "Total number of call numbers keyed, by scheme",
		},
		[]string{"scheme"},
	)

	f.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "shelfkey_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.ServerStartTime).Seconds() },
	)

	return m
}

// WatchMemo exports the hit and miss counts of a key cache.
func (m *Metrics) WatchMemo(stats func() (hits, misses int64)) {
	m.factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "shelfkey_memo_hits_total",
			Help: "Total number of key cache hits",
		},
		func() float64 { h, _ := stats(); return float64(h) },
	)
	m.factory.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "shelfkey_memo_misses_total",
			Help: "Total number of key cache misses",
		},
		func() float64 { _, mi := stats(); return float64(mi) },
	)
}

// RecordGrpcRequest records a gRPC request with its status
func (m *Metrics) RecordGrpcRequest(method string, status string, duration time.Duration) {
	m.GrpcRequestsTotal.WithLabelValues(method, status).Inc()
	m.GrpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordKeys counts one keyed call number
func (m *Metrics) RecordKeys(scheme string) {
	m.KeysComputedTotal.WithLabelValues(scheme).Inc()
}

// ObserveIndexOp records a shelf index operation
func (m *Metrics) ObserveIndexOp(op, status string, d time.Duration) {
	m.IndexOperationsTotal.WithLabelValues(op, status).Inc()
	m.IndexOperationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// SetIndexEntries updates the index size
func (m *Metrics) SetIndexEntries(n int) {
	m.IndexEntries.Set(float64(n))
}
