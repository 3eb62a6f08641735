package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vectorizer Prometheus metrics.
var (
	VectorizeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefind",
			Name:      "vectorize_requests_total",
			Help:      "Total number of vectorization requests",
		},
		[]string{"provider", "status"},
	)

	VectorizeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casefind",
			Name:      "vectorize_request_duration_seconds",
			Help:      "Vectorization request duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"provider"},
	)

	VectorizeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casefind",
			Name:      "vectorize_errors_total",
			Help:      "Total vectorization errors",
		},
		[]string{"provider", "error_type"},
	)
)

var vectorizerMetricsRegistered bool

// RegisterVectorizerMetrics registers vectorizer metrics. Must be called once from main.
func RegisterVectorizerMetrics() {
	if vectorizerMetricsRegistered {
		return
	}
	prometheus.MustRegister(VectorizeRequestsTotal)
	prometheus.MustRegister(VectorizeRequestDuration)
	prometheus.MustRegister(VectorizeErrorsTotal)
	vectorizerMetricsRegistered = true
}
