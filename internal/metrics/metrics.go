// Package metrics provides Prometheus metrics for the hero data-access client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for every client request.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeAborted = "aborted"
)

// Manager owns a registry and the metrics registered on it.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace ("heroes" by default).
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		m.namespace = ns
	}
}

// WithHistogramBuckets overrides the latency buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		m.buckets = buckets
	}
}

// WithRegistry registers the metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Manager) {
		m.registry = reg
	}
}

// NewManager creates a manager with its own registry so tests never collide
// on the global default registerer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "heroes",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)
	m.clientRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Hero data-access requests by operation and outcome",
	}, []string{"operation", "outcome"})
	m.clientDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Hero data-access request latency",
		Buckets:   m.buckets,
	}, []string{"operation"})

	return m
}

// ObserveRequest records one data-access call.
func (m *Manager) ObserveRequest(operation, outcome string, d time.Duration) {
	m.clientRequests.WithLabelValues(operation, outcome).Inc()
	m.clientDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
