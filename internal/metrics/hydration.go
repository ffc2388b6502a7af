package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Hydration Prometheus metrics of the HTTP service.
var (
	HydratedHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hydrex",
			Name:      "hydrated_hits_total",
			Help:      "Total number of search hits returned hydrated",
		},
		[]string{"index"},
	)

	HydrationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hydrex",
			Name:      "hydration_failures_total",
			Help:      "Total failed document and search requests by reason",
		},
		[]string{"index", "reason"}, // unmapped_index, missing_factory, hydration, ...
	)
)

// UnmappedIndex is the index label of requests naming an index without a mapping.
const UnmappedIndex = "unmapped"

var registerOnce sync.Once

// RegisterHydrationMetrics registers the hydration metrics on the default registry.
// Safe to call more than once.
func RegisterHydrationMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HydratedHitsTotal)
		prometheus.MustRegister(HydrationFailuresTotal)
	})
}
