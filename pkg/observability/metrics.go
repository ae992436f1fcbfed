package observability

import (
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	TokensEmitted    *prometheus.CounterVec
	TokensCompleted  prometheus.Counter
	ValidationErrors *prometheus.CounterVec
	Validations      prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// Passing nil creates unregistered collectors, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TokensEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bpmnflow_tokens_emitted_total",
				Help: "Total number of tokens emitted along sequence flows, by source flow object kind",
			},
			[]string{"kind"},
		),
		TokensCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bpmnflow_tokens_completed_total",
				Help: "Total number of tokens consumed by flow objects without outgoing sequence flows",
			},
		),
		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bpmnflow_validation_errors_total",
				Help: "Total number of structural validation findings, by code",
			},
			[]string{"code"},
		),
		Validations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bpmnflow_validations_total",
				Help: "Total number of process definition validations",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.TokensEmitted, m.TokensCompleted, m.ValidationErrors, m.Validations)
	}
	return m
}

// TokenEmitted records a token leaving a flow object of the given kind.
func (m *Metrics) TokenEmitted(kind domain.Kind) {
	if m == nil {
		return
	}
	m.TokensEmitted.WithLabelValues(kind.String()).Inc()
}

// TokenCompleted records a token that reached a flow object with no way out.
func (m *Metrics) TokenCompleted() {
	if m == nil {
		return
	}
	m.TokensCompleted.Inc()
}

// Validated records one validation run and its findings.
func (m *Metrics) Validated(errs []domain.ValidationError) {
	if m == nil {
		return
	}
	m.Validations.Inc()
	for _, e := range errs {
		m.ValidationErrors.WithLabelValues(e.Code.String()).Inc()
	}
}
