// Package metrics exposes Prometheus instruments for the instruction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	instructionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "divimap_instructions_total",
			Help: "Instructions processed, by outcome.",
		},
		[]string{"outcome"},
	)

	completionSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "divimap_completion_seconds",
			Help:    "Latency of completion calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"provider"},
	)

	matchedFeatures = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "divimap_filter_matched_features",
			Help:    "Features selected by filter instructions.",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1200},
		},
	)
)

// ObserveInstruction counts one instruction. outcome is "filtro",
// "coordenada" or an error kind such as "parse_error".
func ObserveInstruction(outcome string) {
	instructionsTotal.WithLabelValues(outcome).Inc()
}

func ObserveCompletion(provider string, seconds float64) {
	completionSeconds.WithLabelValues(provider).Observe(seconds)
}

func ObserveMatched(n int) {
	matchedFeatures.Observe(float64(n))
}
