package exec

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors an Engine reports evaluation
// activity to. Construct one with NewMetrics and pass it to NewEngine
// via WithMetrics; a nil *Metrics (the Engine's default) disables
// reporting entirely rather than registering collectors nobody scrapes.
type Metrics struct {
	nodesEvaluated  *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	evaluationError *prometheus.CounterVec
	nodeDuration    prometheus.Histogram
}

// NewMetrics registers the engine's collectors against reg and returns a
// Metrics ready to pass to WithMetrics. Use a dedicated
// prometheus.NewRegistry() in tests to avoid collisions with the global
// registry across test runs.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		nodesEvaluated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shadergraph",
			Subsystem: "exec",
			Name:      "nodes_evaluated_total",
			Help:      "Nodes whose NodeDefinition was actually invoked, by node kind.",
		}, []string{"kind"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shadergraph",
			Subsystem: "exec",
			Name:      "cache_hits_total",
			Help:      "Node evaluations served from the output cache without recomputation.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shadergraph",
			Subsystem: "exec",
			Name:      "cache_misses_total",
			Help:      "Node evaluations that required recomputing the node.",
		}),
		evaluationError: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shadergraph",
			Subsystem: "exec",
			Name:      "evaluation_errors_total",
			Help:      "Node evaluation failures, by error kind (structural vs runtime).",
		}, []string{"error_kind"}),
		nodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shadergraph",
			Subsystem: "exec",
			Name:      "node_duration_seconds",
			Help:      "Time spent inside a single NodeDefinition call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) observeCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) observeCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) observeNodeEvaluated(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.nodesEvaluated.WithLabelValues(kind).Inc()
	m.nodeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeError(kind string) {
	if m == nil {
		return
	}
	m.evaluationError.WithLabelValues(kind).Inc()
}
