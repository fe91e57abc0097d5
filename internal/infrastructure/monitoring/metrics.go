package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chefwise/chefwise/internal/domain/ai"
)

// Outcome labels
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeFormatError    = "format_error"

	OutcomeCommit   = "commit"
	OutcomeRollback = "rollback"
)

// Metrics handles Prometheus metrics collection
type Metrics struct {
	modelRequestsTotal   *prometheus.CounterVec
	modelRequestDuration *prometheus.HistogramVec
	modelTokensTotal     *prometheus.CounterVec
	unitsOfWorkTotal     *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		modelRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chefwise",
				Name:      "model_requests_total",
				Help:      "Total number of chat completion requests",
			},
			[]string{"model", "outcome"},
		),
		modelRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "chefwise",
				Name:      "model_request_duration_seconds",
				Help:      "Chat completion round trip time in seconds",
				Buckets:   []float64{0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0, 60.0},
			},
			[]string{"model"},
		),
		modelTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chefwise",
				Name:      "model_tokens_total",
				Help:      "Tokens consumed by chat completions",
			},
			[]string{"model", "kind"},
		),
		unitsOfWorkTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chefwise",
				Name:      "units_of_work_total",
				Help:      "Database units of work by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordModelCall records one chat completion
func (m *Metrics) RecordModelCall(model, outcome string, duration time.Duration, usage ai.TokenUsage) {
	if m == nil {
		return
	}
	m.modelRequestsTotal.WithLabelValues(model, outcome).Inc()
	m.modelRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
	if usage.PromptTokens > 0 {
		m.modelTokensTotal.WithLabelValues(model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		m.modelTokensTotal.WithLabelValues(model, "completion").Add(float64(usage.CompletionTokens))
	}
}

// RecordUnitOfWork counts a finished unit of work
func (m *Metrics) RecordUnitOfWork(outcome string) {
	if m == nil {
		return
	}
	m.unitsOfWorkTotal.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps everything gathered by g in the Prometheus text format,
// suitable for the node exporter textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
