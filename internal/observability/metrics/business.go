package metrics

import (
	"time"
)

// RecordLifecycleEvent increments the lifecycle counter for the given event
// type ("created", "updated" or "deleted").
func RecordLifecycleEvent(event string) {
	ArticleLifecycleEventsTotal.WithLabelValues(event).Inc()
}

// UpdateArticlesActive updates the number of non-deleted articles.
// This gauge is refreshed periodically by the statistics job.
func UpdateArticlesActive(count int64) {
	ArticlesActive.Set(float64(count))
}

// RecordSearchThrottled records a search request rejected by the rate limiter.
func RecordSearchThrottled() {
	ArticleSearchThrottledTotal.Inc()
}

// RecordStoreOperation records the duration of an article store call.
// Operation should name the store method (e.g., "insert", "save", "search").
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperationDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

// SetCircuitBreakerState records the state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	StoreCircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordStatsRefresh records the outcome of a statistics refresh run.
func RecordStatsRefresh(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	StatsRefreshTotal.WithLabelValues(status).Inc()
}
