// Package metrics exposes Prometheus instrumentation for catalog lookups,
// reconciliation, ranking queries and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookr_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookr_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Ranking Engine
	RankingQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookr_ranking_query_duration_seconds",
			Help:    "Duration of dashboard ranking queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"ranking"},
	)

	// External catalog
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookr_catalog_requests_total",
			Help: "Total number of requests sent to the external book catalog",
		},
		[]string{"endpoint", "status"}, // status: HTTP code, "error" or "rejected"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookr_catalog_request_duration_seconds",
			Help:    "Duration of external book catalog requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	CatalogCircuitState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookr_catalog_circuit_state",
			Help: "External catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Catalog Reconciler
	CatalogSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookr_catalog_search_choices",
			Help:    "Number of complete search results offered as choices",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	IngestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookr_ingests_total",
			Help: "Total number of catalog ingests by outcome",
		},
		[]string{"outcome"}, // created, existing, failed
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordRankingQuery(ranking string, duration time.Duration) {
	RankingQueryDuration.WithLabelValues(ranking).Observe(duration.Seconds())
}

// RecordCatalogRequest records one external catalog round trip. status is
// the HTTP status code, or 0 when no response was received.
func RecordCatalogRequest(endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	CatalogRequestsTotal.WithLabelValues(endpoint, label).Inc()
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCatalogRejected counts a request refused by the open circuit breaker.
func RecordCatalogRejected(endpoint string) {
	CatalogRequestsTotal.WithLabelValues(endpoint, "rejected").Inc()
}

func SetCatalogCircuitState(state int) {
	CatalogCircuitState.Set(float64(state))
}

func RecordSearchChoices(n int) {
	CatalogSearchResults.Observe(float64(n))
}

// RecordIngest counts one reconciliation outcome.
func RecordIngest(created bool, err error) {
	switch {
	case err != nil:
		IngestsTotal.WithLabelValues("failed").Inc()
	case created:
		IngestsTotal.WithLabelValues("created").Inc()
	default:
		IngestsTotal.WithLabelValues("existing").Inc()
	}
}
