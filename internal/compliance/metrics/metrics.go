package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics provides observability for rights processing and enforcement.
type Metrics struct {
	// Rights requests by right and outcome
	Requests *prometheus.CounterVec

	// End-to-end processing latency by right
	ProcessingLatency *prometheus.HistogramVec

	// Enforcement decisions by outcome and the record that decided them
	EnforcementDecisions *prometheus.CounterVec

	// Third-party side effects that degraded (notification, transmission, sync)
	DegradedSideEffects *prometheus.CounterVec
}

// New registers the compliance metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custodian_rights_requests_total",
			Help: "Rights requests processed, by right and outcome",
		}, []string{"right", "outcome"}), // outcome: "success", "invalid", "error"

		ProcessingLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "custodian_rights_processing_duration_seconds",
			Help:    "Duration of rights request processing including audit writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"right"}),

		EnforcementDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custodian_enforcement_decisions_total",
			Help: "Processing attempts evaluated, by outcome and deciding record",
		}, []string{"outcome", "basis"}), // basis: "restriction", "objection", "none"

		DegradedSideEffects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "custodian_degraded_side_effects_total",
			Help: "Downstream side effects that failed while the request succeeded",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncRequest(right, outcome string) {
	if m != nil {
		m.Requests.WithLabelValues(right, outcome).Inc()
	}
}

func (m *Metrics) ObserveProcessingLatency(right string, d time.Duration) {
	if m != nil {
		m.ProcessingLatency.WithLabelValues(right).Observe(d.Seconds())
	}
}

func (m *Metrics) IncEnforcementDecision(blocked bool, basis string) {
	if m != nil {
		outcome := "allowed"
		if blocked {
			outcome = "blocked"
		}
		m.EnforcementDecisions.WithLabelValues(outcome, basis).Inc()
	}
}

func (m *Metrics) IncDegradedSideEffect(kind string) {
	if m != nil {
		m.DegradedSideEffects.WithLabelValues(kind).Inc()
	}
}
