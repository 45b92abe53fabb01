package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this application.
const InstrumentationName = "newspaper"

// GetTracer looks the tracer up on the global provider at call time, so
// components built before InitProvider still export through it.
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
