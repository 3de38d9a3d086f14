package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Store calls are expected to finish well under the request budget.
	latencyBuckets = []float64{
		0.5, 1, 2.5,
		5, 10, 25,
		50, 100, 200,
	}

	DecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustguard_decisions_total",
			Help: "Rate limit decisions by category and outcome",
		},
		[]string{"category", "outcome"},
	)

	BlocksAppliedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustguard_blocks_applied_total",
			Help: "Blocks written after a quota was exceeded",
		},
		[]string{"category"},
	)

	StoreErrorsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustguard_store_errors_total",
			Help: "Failed counter store operations",
		},
		[]string{"operation"},
	)

	StoreLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustguard_store_latency_ms",
			Help:    "Counter store latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation"},
	)

	BreakerState = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "trustguard_breaker_state",
			Help: "Counter store circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)
)

type MetricsConfig struct {
	Enabled bool
}

var Config MetricsConfig

func Registry() *prometheus.Registry {
	return registry
}

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
