package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"guestpost/internal/core/domain"
	"guestpost/internal/core/port"
)

// Reconciler keeps publishing queue rows consistent with posts and the
// tenant's active destination connections. It implements
// port.QueueReconciler.
type Reconciler struct {
	campaigns   port.CampaignRepository
	posts       port.PostRepository
	queue       port.QueueRepository
	connections port.ConnectionRepository
	status      port.StatusEngine
	events      port.EventPublisher
	logger      *slog.Logger
}

// NewReconciler creates a reconciler with the provided dependencies.
func NewReconciler(
	campaigns port.CampaignRepository,
	posts port.PostRepository,
	queue port.QueueRepository,
	connections port.ConnectionRepository,
	status port.StatusEngine,
	events port.EventPublisher,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		campaigns:   campaigns,
		posts:       posts,
		queue:       queue,
		connections: connections,
		status:      status,
		events:      events,
		logger:      logger,
	}
}

// Rebuild derives queue rows from the campaign's approved, scheduled
// posts crossed with the tenant's active connections. Existing pending
// rows make inserts no-ops, so a crashed or repeated rebuild is safe to
// re-invoke. Returns the number of newly created rows.
func (r *Reconciler) Rebuild(ctx context.Context, tenantID, campaignID int64) (int, error) {
	campaign, err := r.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	if campaign == nil {
		return 0, fmt.Errorf("campaign %d: %w", campaignID, port.ErrNotFound)
	}
	if campaign.TenantID != tenantID {
		return 0, port.ErrForbidden
	}

	posts, err := r.posts.ListQueueEligible(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	connections, err := r.connections.ListActive(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, post := range posts {
		if post.ScheduledFor == nil {
			continue
		}
		for _, conn := range connections {
			if !domain.SamePlatform(post.Platform, conn.Platform) {
				continue
			}
			created, err := r.queue.InsertPending(ctx, domain.PublishingQueueItem{
				PostID:       post.ID,
				ConnectionID: conn.ID,
				ScheduledFor: *post.ScheduledFor,
				Status:       domain.QueueStatusPending,
			})
			if err != nil {
				return added, err
			}
			if created {
				added++
			}
		}

		// Pending rows created earlier may have diverged; the post's
		// scheduled_for is authoritative.
		if _, err := r.queue.SyncPending(ctx, post.ID, *post.ScheduledFor); err != nil {
			return added, err
		}
	}

	if added > 0 {
		publishEvent(ctx, r.events, r.logger, port.Event{
			Kind:       port.EventQueueRebuilt,
			TenantID:   tenantID,
			CampaignID: campaignID,
			Payload:    map[string]any{"added": added},
		})
	}
	r.status.RecomputeSafe(ctx, campaignID)
	return added, nil
}

// Sync propagates a post's schedule change onto all of its queue rows,
// resetting retry state. A manual reschedule always wins over queued
// retry backoff.
func (r *Reconciler) Sync(ctx context.Context, tenantID, postID int64, scheduledFor time.Time) error {
	if scheduledFor.IsZero() {
		return port.Validation("scheduled_for", "missing timestamp")
	}

	post, err := r.posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %d: %w", postID, port.ErrNotFound)
	}
	if post.TenantID != tenantID {
		return port.ErrForbidden
	}

	if err = r.posts.UpdateScheduledFor(ctx, postID, scheduledFor); err != nil {
		return err
	}
	if _, err = r.queue.ResetForPost(ctx, postID, scheduledFor); err != nil {
		return err
	}

	if post.CampaignID != nil {
		r.status.RecomputeSafe(ctx, *post.CampaignID)
	}
	return nil
}
