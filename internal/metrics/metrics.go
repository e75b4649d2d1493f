// Package metrics provides Prometheus instrumentation for the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Aggregation outcome labels.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeEmpty    = "empty"
	OutcomeFetched  = "fetched"
)

var (
	aggregationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikifreq_aggregations_total",
			Help: "Aggregation pipeline runs by terminal outcome",
		},
		[]string{"outcome"},
	)

	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wikifreq_api_requests_total",
			Help: "Query surface requests by endpoint and response status",
		},
		[]string{"endpoint", "status"},
	)

	registerOnce sync.Once
)

// Init registers the collectors. Must be called once at server startup; the
// counters still work unregistered, so the CLI can skip it.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(aggregationsTotal, apiRequestsTotal)
	})
}

// RecordAggregation counts one pipeline run ending in the given outcome.
func RecordAggregation(outcome string) {
	aggregationsTotal.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest counts one handled query-surface request.
func RecordAPIRequest(endpoint, status string) {
	apiRequestsTotal.WithLabelValues(endpoint, status).Inc()
}
