// Package observability groups the logging, metrics and tracing packages.
//
// Subpackages:
//   - logging: slog JSON logger and request-scoped logger propagation
//   - metrics: Prometheus article, store and worker metrics
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
//
// Example usage:
//
//	import (
//	    "newspaper/internal/observability/logging"
//	    "newspaper/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger("info")
//	    logger.Info("application started")
//
//	    metrics.RecordLifecycleEvent("created")
//	}
package observability
