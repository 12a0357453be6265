package scheduler

import (
	"context"
	"log/slog"
	"time"

	"guestpost/internal/core/port"
)

// Scheduler drives the materialiser on a fixed interval. Deployments
// that trigger materialisation through the HTTP endpoint instead can
// leave it disabled.
type Scheduler struct {
	materialiser port.Materialiser
	interval     time.Duration
	logger       *slog.Logger
}

// New creates a scheduler ticking every interval.
func New(materialiser port.Materialiser, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{materialiser: materialiser, interval: interval, logger: logger}
}

// Run ticks until ctx is cancelled. The first pass runs immediately so a
// fresh deployment does not wait a full interval for content. Each pass
// is idempotent, so overlap with an external trigger is harmless.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		created, err := s.materialiser.Run(ctx, time.Now())
		if err != nil {
			s.logger.Error("materialiser tick failed", slog.Any("error", err))
		} else if created > 0 {
			s.logger.Info("materialised recurring content", slog.Int("created", created))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
