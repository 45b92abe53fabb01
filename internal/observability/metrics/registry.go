// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track article lifecycle operations
var (
	// ArticlesActive tracks the number of non-deleted articles in the store
	ArticlesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_active",
			Help: "Number of non-deleted articles in the store",
		},
	)

	// ArticleLifecycleEventsTotal counts create, update and delete events
	ArticleLifecycleEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_lifecycle_events_total",
			Help: "Total number of article lifecycle events",
		},
		[]string{"event"},
	)

	// ArticleSearchThrottledTotal counts search requests rejected by the rate limiter
	ArticleSearchThrottledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_search_throttled_total",
			Help: "Total number of search requests rejected by the rate limiter",
		},
	)
)

// Store metrics track document store performance
var (
	// StoreOperationDuration measures article store call duration in seconds
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "article_store_operation_duration_seconds",
			Help:    "Article store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "result"},
	)

	// StoreCircuitBreakerState exposes the breaker state (0=closed, 1=half-open, 2=open)
	StoreCircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "article_store_circuit_breaker_state",
			Help: "Circuit breaker state of the article store (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Worker metrics track the background statistics job
var (
	// StatsRefreshTotal counts refresh runs by status
	StatsRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_stats_refresh_total",
			Help: "Total number of article statistics refresh runs",
		},
		[]string{"status"},
	)
)
