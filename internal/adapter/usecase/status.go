package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

// StatusEngine derives and persists campaign lifecycle status from the
// campaign's posts and queue rows. It implements port.StatusEngine.
type StatusEngine struct {
	campaigns port.CampaignRepository
	posts     port.PostRepository
	queue     port.QueueRepository
	events    port.EventPublisher
	logger    *slog.Logger
}

// NewStatusEngine creates a status engine with the provided dependencies.
func NewStatusEngine(
	campaigns port.CampaignRepository,
	posts port.PostRepository,
	queue port.QueueRepository,
	events port.EventPublisher,
	logger *slog.Logger,
) *StatusEngine {
	return &StatusEngine{campaigns: campaigns, posts: posts, queue: queue, events: events, logger: logger}
}

// Recompute loads downstream state, derives the campaign status and
// writes it back only when it changed.
func (e *StatusEngine) Recompute(ctx context.Context, campaignID int64) (string, bool, error) {
	campaign, err := e.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", false, err
	}
	if campaign == nil {
		return "", false, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}

	postStatuses, err := e.posts.ListStatusesByCampaign(ctx, campaignID)
	if err != nil {
		return "", false, err
	}
	queueStatuses, err := e.queue.ListStatusesByCampaign(ctx, campaignID)
	if err != nil {
		return "", false, err
	}

	derived := domain.ComputeStatus(campaign.Status, postStatuses, queueStatuses)
	if derived == campaign.Status {
		return derived, false, nil
	}
	if err = e.campaigns.UpdateStatus(ctx, campaignID, derived); err != nil {
		return "", false, err
	}

	publishEvent(ctx, e.events, e.logger, port.Event{
		Kind:       port.EventCampaignStatusChanged,
		TenantID:   campaign.TenantID,
		CampaignID: campaignID,
		Payload:    map[string]any{"from": campaign.Status, "to": derived},
	})
	return derived, true, nil
}

// RecomputeSafe is the fire-and-forget variant attached to post and
// queue mutations. It never fails the caller: errors are logged and nil
// is returned instead.
func (e *StatusEngine) RecomputeSafe(ctx context.Context, campaignID int64) *string {
	status, _, err := e.Recompute(ctx, campaignID)
	if err != nil {
		e.logger.Warn("status recompute skipped",
			slog.Int64("campaign_id", campaignID), slog.Any("error", err))
		return nil
	}
	return &status
}
