package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrdash"

// Metrics holds the collectors for calls to the HR API and the attendance
// fan-out. A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	remoteRequests  *prometheus.CounterVec
	remoteLatency   *prometheus.HistogramVec
	fetchFailures   *prometheus.CounterVec
	fetchBatchSizes prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Requests sent to the HR API by operation and outcome",
		}, []string{"operation", "outcome"}),
		remoteLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Latency of HR API operations including retries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_fetch_failures_total",
			Help:      "Per-employee attendance fetches that were isolated as empty",
		}, []string{"reason"}),
		fetchBatchSizes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attendance_fetch_batch_size",
			Help:      "Employees per attendance fan-out",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	m.registry.MustRegister(
		m.remoteRequests,
		m.remoteLatency,
		m.fetchFailures,
		m.fetchBatchSizes,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ObserveRemote(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remoteRequests.WithLabelValues(operation, outcome).Inc()
	m.remoteLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFetchBatch(size int) {
	if m == nil {
		return
	}
	m.fetchBatchSizes.Observe(float64(size))
}

func (m *Metrics) IncFetchFailure(reason string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(reason).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
