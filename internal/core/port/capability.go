package port

import (
	"context"
	"time"
)

// Capability names carried by authenticated callers.
const (
	CapabilityPostApprove = "post:approve"
)

// RateLimiter limits how often a key (typically a tenant) may perform an
// action. Implementations must be safe for concurrent use.
type RateLimiter interface {
	// Allow reports whether the action identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}

// Event is the envelope published to the broker when the pipeline
// changes observable state.
type Event struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	TenantID   int64          `json:"tenant_id,omitempty"`
	CampaignID int64          `json:"campaign_id,omitempty"`
	PostID     int64          `json:"post_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Event kinds emitted by the pipeline.
const (
	EventCampaignStatusChanged = "campaign.status_changed"
	EventQueueRebuilt          = "queue.rebuilt"
	EventPostsMaterialised     = "posts.materialised"
)

// EventPublisher delivers pipeline events to downstream consumers
// (notifications, audit). Publishing is best-effort; callers must not
// fail their primary operation on publish errors.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
