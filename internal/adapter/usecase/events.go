package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"guestpost/internal/core/port"
)

// publishEvent delivers a pipeline event best-effort. Publish failures
// are logged and never fail the primary operation.
func publishEvent(ctx context.Context, events port.EventPublisher, logger *slog.Logger, event port.Event) {
	if events == nil {
		return
	}
	event.ID = uuid.NewString()
	event.OccurredAt = time.Now().UTC()
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("event publish failed",
			slog.String("kind", event.Kind), slog.Any("error", err))
	}
}
