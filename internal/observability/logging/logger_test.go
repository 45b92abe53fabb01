package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"newspaper/internal/handler/http/requestid"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: " warn ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "invalid", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger("info"))
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "info")

	logger.Debug("this should not appear")
	logger.Info("this should appear", slog.String("article_id", "a1"))

	output := buf.String()
	assert.NotContains(t, output, "this should not appear")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	assert.Equal(t, "this should appear", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "a1", entry["article_id"])
	assert.NotEmpty(t, entry["time"])
}

func TestWithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		wantField bool
	}{
		{name: "with request ID", requestID: "test-request-123", wantField: true},
		{name: "without request ID", requestID: "", wantField: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := NewLoggerWithWriter(&buf, "info")

			ctx := context.Background()
			if tt.requestID != "" {
				ctx = requestid.NewContext(ctx, tt.requestID)
			}

			WithRequestID(ctx, base).Info("hello")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			if tt.wantField {
				assert.Equal(t, tt.requestID, entry["request_id"])
			} else {
				assert.NotContains(t, entry, "request_id")
			}
		})
	}
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter(&buf, "info")

	// no span: logger unchanged
	assert.Same(t, base, WithTraceID(context.Background(), base))

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	WithTraceID(ctx, base).Info("traced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "debug")
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestContextKey_Type(t *testing.T) {
	assert.Equal(t, contextKey("logger"), loggerContextKey)
}

func BenchmarkLogger_WithRequestID(b *testing.B) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "info")
	ctx := requestid.NewContext(context.Background(), "bench-request")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		WithRequestID(ctx, logger).Info("benchmark")
	}
}
