package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the counters below.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
)

var (
	// TasksTotal counts task executions by task id and final status.
	TasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launch_tasks_total",
		Help: "Task executions by task and status.",
	}, []string{"task", "status"})

	// TaskDuration observes generation time of tasks that ran.
	TaskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "launch_task_duration_seconds",
		Help:    "Generation duration per task.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"task"})

	// KeyRotations counts persisted key index advances per service.
	KeyRotations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launch_key_rotations_total",
		Help: "API key rotations per provider service.",
	}, []string{"service"})

	// ProviderCalls counts outbound provider calls per service and outcome.
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launch_provider_calls_total",
		Help: "Outbound provider calls per service and outcome.",
	}, []string{"service", "outcome"})

	// Evaluations counts best-effort evaluation side effects by outcome.
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launch_evaluations_total",
		Help: "Evaluation side effects by outcome.",
	}, []string{"outcome"})
)

// MetricsHandler exposes the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
