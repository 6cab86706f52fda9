package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the ingestion collectors
const (
	OutcomeSuccess   = "success"
	OutcomeRetry     = "retry"
	OutcomeFailure   = "failure"
	OutcomeCancelled = "cancelled"
)

var (
	filesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "files_processed_total",
			Help:      "Uploaded resume files by outcome and failing stage.",
		},
		[]string{"outcome", "stage"},
	)

	fileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "file_duration_seconds",
			Help:      "End to end processing time of one resume file.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
	)

	llmAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "attempts_total",
			Help:      "LLM extraction attempts by outcome.",
		},
		[]string{"outcome"},
	)

	llmAttemptDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "attempt_duration_seconds",
			Help:      "Latency of a single LLM invocation.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	llmInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "in_flight_calls",
			Help:      "LLM invocations currently admitted past the concurrency gate.",
		},
	)
)

// ObserveFile records the outcome of one file. stage names the step that
// failed and is empty on success.
func ObserveFile(outcome, stage string, elapsed time.Duration) {
	filesProcessedTotal.WithLabelValues(outcome, stage).Inc()
	fileDuration.Observe(elapsed.Seconds())
}

func ObserveLLMAttempt(outcome string, elapsed time.Duration) {
	llmAttemptsTotal.WithLabelValues(outcome).Inc()
	llmAttemptDuration.Observe(elapsed.Seconds())
}

// LLMAdmitted tracks calls holding a concurrency slot; call the returned func on release.
func LLMAdmitted() func() {
	llmInFlight.Inc()
	return llmInFlight.Dec
}
