package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "event_registry"

type Metrics struct {
	registry prometheus.Gatherer

	operations *prometheus.CounterVec
	sectionDur *prometheus.HistogramVec
	drift      *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to keep them isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registration_operations_total",
				Help:      "Registration operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		sectionDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "registration_operation_duration_seconds",
				Help:      "Time spent in an event's exclusive section, lock wait included",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"operation"},
		),
		drift: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registered_count_repairs_total",
				Help:      "Counter repairs made by the reconciler",
			},
			[]string{"direction"},
		),
	}

	reg.MustRegister(m.operations, m.sectionDur, m.drift)

	return m
}

func (m *Metrics) ObserveOperation(operation, outcome string, took time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.sectionDur.WithLabelValues(operation).Observe(took.Seconds())
}

// ObserveDrift counts a repair. Event ids stay out of the labels to keep
// cardinality bounded; they are in the reconciler's log line.
func (m *Metrics) ObserveDrift(_ string, delta int) {
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	m.drift.WithLabelValues(direction).Inc()
}

func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

func (m *Metrics) Drift() *prometheus.CounterVec {
	return m.drift
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nop discards observations.
type Nop struct{}

func (Nop) ObserveOperation(string, string, time.Duration) {}

func (Nop) ObserveDrift(string, int) {}
