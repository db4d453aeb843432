package compliance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks compliance audit persistence.
type Metrics struct {
	EventsEmitted   *prometheus.CounterVec
	PersistFailures prometheus.Counter
	SinkFailures    prometheus.Counter
	Amendments      prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics registers the audit metrics with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		EventsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custodian_audit_events_emitted_total",
			Help: "Compliance audit events durably appended, by action",
		}, []string{"action"}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "custodian_audit_persist_failures_total",
			Help: "Compliance audit writes that failed; each one failed a business operation",
		}),
		SinkFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "custodian_audit_sink_failures_total",
			Help: "Audit events that could not be streamed to the sink",
		}),
		Amendments: f.NewCounter(prometheus.CounterOpts{
			Name: "custodian_audit_amendments_total",
			Help: "Request events downgraded to failed",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "custodian_audit_persist_duration_seconds",
			Help:    "Duration of synchronous compliance audit writes",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) IncEventsEmitted(action string) {
	if m != nil {
		m.EventsEmitted.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) IncSinkFailures() {
	if m != nil {
		m.SinkFailures.Inc()
	}
}

func (m *Metrics) IncAmendments() {
	if m != nil {
		m.Amendments.Inc()
	}
}

func (m *Metrics) ObservePersistDuration(d time.Duration) {
	if m != nil {
		m.PersistDuration.Observe(d.Seconds())
	}
}
