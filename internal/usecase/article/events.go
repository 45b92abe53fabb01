package article

import (
	"context"
	"log/slog"

	"newspaper/internal/observability/logging"
	"newspaper/internal/observability/metrics"
)

// EventType names a lifecycle transition of an article.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// LifecycleEvent describes a committed change to an article.
type LifecycleEvent struct {
	Type    EventType
	ID      string
	Version int64
}

// EventRecorder receives lifecycle events after a change is committed.
// Implementations must not block.
type EventRecorder interface {
	Record(ctx context.Context, ev LifecycleEvent)
}

// EventRecorderFunc adapts a function to EventRecorder.
type EventRecorderFunc func(ctx context.Context, ev LifecycleEvent)

func (f EventRecorderFunc) Record(ctx context.Context, ev LifecycleEvent) { f(ctx, ev) }

// LogEventRecorder writes events to the request logger and counts them.
type LogEventRecorder struct {
	// Logger overrides the logger taken from the context.
	Logger *slog.Logger
}

func (r LogEventRecorder) Record(ctx context.Context, ev LifecycleEvent) {
	logger := r.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger.InfoContext(ctx, "article lifecycle event",
		slog.String("event", string(ev.Type)),
		slog.String("article_id", ev.ID),
		slog.Int64("version", ev.Version))
	metrics.RecordLifecycleEvent(string(ev.Type))
}
