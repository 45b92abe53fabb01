package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader carries the trace ID of the server span back to the client.
const TraceIDHeader = "X-Trace-Id"

// SpanNameFunc derives the server span name from a request.
type SpanNameFunc func(r *http.Request) string

func rawPathSpanName(r *http.Request) string {
	return r.Method + " " + r.URL.Path
}

// statusRecorder remembers the first status written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// Middleware starts a server span per request, named after the raw path.
// Incoming W3C trace context is continued and the trace ID is echoed in
// the X-Trace-Id response header.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithSpanName(rawPathSpanName)(next)
}

// MiddlewareWithSpanName is Middleware with a custom span name, typically a
// normalized route such as "GET /api/v1/articles/:id" so that span names
// stay low-cardinality.
func MiddlewareWithSpanName(name SpanNameFunc) func(http.Handler) http.Handler {
	if name == nil {
		name = rawPathSpanName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := GetTracer().Start(parent, name(r),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.path", r.URL.Path),
				),
			)
			defer span.End()

			w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.code()
			span.SetAttributes(attribute.Int("http.status_code", status))
			// 4xx はクライアント起因なのでエラー扱いしない
			if status >= http.StatusInternalServerError {
				span.SetAttributes(attribute.Bool("error", true))
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
