package notifications

import (
	"context"

	"github.com/dishpatch/dishpatch-backend/pkg/logger"
)

// Event is a human-readable cart change, suitable for a toast.
type Event struct {
	SessionID string
	Op        string
	Message   string
}

// Sink receives cart change events. Implementations must not mutate the
// cart from within Notify; the service dispatches events only after the
// mutation is fully applied and persisted.
type Sink interface {
	Notify(ctx context.Context, event Event)
}

// LogSink writes events to the structured log. It stands in for the
// client-facing toast channel.
type LogSink struct {
	logg *logger.Logger
}

func NewLogSink(logg *logger.Logger) *LogSink {
	return &LogSink{logg: logg}
}

func (s *LogSink) Notify(ctx context.Context, event Event) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"session_id": event.SessionID,
		"op":         event.Op,
	})
	s.logg.Info(ctx, event.Message)
}
