// Package tracing provides OpenTelemetry tracing integration.
//
// Features:
//   - Automatic HTTP request tracing (Middleware)
//   - A shared tracer for service-level spans (GetTracer)
//   - SDK provider setup with an optional OTLP/HTTP exporter (InitProvider)
//
// Example usage:
//
//	import "newspaper/internal/observability/tracing"
//
//	func main() {
//	    tp, err := tracing.InitProvider(ctx, tracing.Config{ServiceName: "newspaper"})
//	    if err != nil { ... }
//	    defer func() { _ = tp.Shutdown(context.Background()) }()
//	}
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
