// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application's domain metrics:
//   - Article lifecycle metrics (created, updated, deleted)
//   - Active article gauge refreshed by the statistics job
//   - Article store operation latency and circuit breaker state
//
// HTTP request metrics live next to the middleware that records them in
// internal/handler/http.
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newspaper/internal/observability/metrics"
//
//	start := time.Now()
//	saved, err := store.Save(ctx, article)
//	metrics.RecordStoreOperation("save", time.Since(start), err)
package metrics
