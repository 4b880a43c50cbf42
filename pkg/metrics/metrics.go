// Package metrics provides Prometheus-based metrics recording for agent runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder observes completed agent runs. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveRun(agent, model string, promptTokens, completionTokens int, success bool, duration time.Duration)
}

// PrometheusRecorder implements Recorder on a private Prometheus registry.
type PrometheusRecorder struct {
	registry    *prometheus.Registry
	runsTotal   *prometheus.CounterVec
	tokensTotal *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with its own registry so tests
// and multiple recorders never collide on the default registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusRecorder{
		registry: registry,
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_runs_total",
				Help: "Total number of agent runs by agent, model, and status",
			},
			[]string{"agent", "model", "status"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agent_tokens_total",
				Help: "Total number of tokens consumed by agent runs",
			},
			[]string{"agent", "model", "type"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agent_run_duration_seconds",
				Help:    "Duration of agent runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"agent", "model"},
		),
	}
}

// ObserveRun records metrics for a completed agent run.
func (p *PrometheusRecorder) ObserveRun(agent, model string, promptTokens, completionTokens int, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}

	p.runsTotal.WithLabelValues(agent, model, status).Inc()

	// Token counts are only meaningful for successful runs.
	if success {
		p.tokensTotal.WithLabelValues(agent, model, "prompt").Add(float64(promptTokens))
		p.tokensTotal.WithLabelValues(agent, model, "completion").Add(float64(completionTokens))
	}

	p.runDuration.WithLabelValues(agent, model).Observe(duration.Seconds())
}

// Handler returns an exposition handler for this recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
