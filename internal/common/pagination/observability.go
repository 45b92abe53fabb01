package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a paginated request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Debug("paginated request",
		slog.String("request_id", requestID),
		slog.Int("limit", params.Limit),
		slog.Int("offset", params.Offset))
}

// LogResponse logs a paginated response with duration and returned count.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration) {
	logger.Debug("paginated response",
		slog.String("request_id", requestID),
		slog.Int("limit", params.Limit),
		slog.Int("offset", params.Offset),
		slog.Int("returned_count", returnedCount),
		slog.Int64("duration_ms", duration.Milliseconds()))
}
