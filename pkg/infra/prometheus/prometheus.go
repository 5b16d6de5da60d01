package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. LLM passes routinely take seconds.
	latencyBuckets = []float64{
		5, 25, 100,
		250, 500, 1000,
		2500, 5000, 10000,
		30000, 60000, 120000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaptergenie_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaptergenie_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	StageLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaptergenie_stage_latency_ms",
			Help:    "Chapter pipeline stage latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"stage", "outcome"},
	)

	RateLimited = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "chaptergenie_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	LLMTokens = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaptergenie_llm_tokens_total",
			Help: "Tokens consumed by LLM passes",
		},
		[]string{"pass", "kind"},
	)
)

var initOnce sync.Once

// Initialize registers the process collector and makes the private registry
// the default gatherer served on /metrics.
func Initialize() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

func Registry() *prometheus.Registry {
	return registry
}
