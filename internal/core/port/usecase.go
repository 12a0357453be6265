package port

import (
	"context"
	"time"

	"guestpost/internal/core/domain"
)

// QueueReconciler keeps publishing queue rows consistent with posts and
// active destination connections.
type QueueReconciler interface {
	// Rebuild derives queue rows for a campaign's approved, scheduled
	// posts across the tenant's active connections. It is idempotent:
	// re-running with no state change adds nothing. Returns the number
	// of newly created rows.
	Rebuild(ctx context.Context, tenantID, campaignID int64) (int, error)
	// Sync propagates a post's new scheduled time onto its queue rows
	// and resets their retry state. This is the "user moved the post on
	// the calendar" entry point and always wins over retry backoff.
	Sync(ctx context.Context, tenantID, postID int64, scheduledFor time.Time) error
}

// Materialiser expands recurring campaigns into concrete future content
// rows inside a rolling window.
type Materialiser interface {
	// Run materialises every eligible campaign and returns the number of
	// content rows created. Safe to run on every scheduler tick.
	Run(ctx context.Context, now time.Time) (int, error)
	// PreviewSlots computes candidate slots for one campaign without
	// persisting anything, for the user-facing slot suggestion view.
	PreviewSlots(ctx context.Context, tenantID, campaignID int64, weeks int) ([]domain.ResolvedSlot, error)
}

// ApprovalAction is one mutating request against a post's approval.
type ApprovalAction struct {
	Action        string
	Comment       string
	Author        string
	PlatformScope string
}

// ApprovalWorkflow gates whether a post may be queued for publishing.
type ApprovalWorkflow interface {
	Get(ctx context.Context, tenantID, postID int64) (*domain.PostApproval, []domain.PostComment, error)
	Act(ctx context.Context, tenantID, postID int64, action ApprovalAction) (*domain.PostApproval, error)
}

// StatusEngine re-derives campaign status from downstream state.
type StatusEngine interface {
	// Recompute loads the campaign's posts and queue rows, derives the
	// status and writes it back if changed. Returns the resulting status
	// and whether a write occurred.
	Recompute(ctx context.Context, campaignID int64) (status string, changed bool, err error)
	// RecomputeSafe is the fire-and-forget variant: it never fails the
	// caller, logging errors and returning nil instead. The returned
	// pointer carries the derived status when recomputation succeeded.
	RecomputeSafe(ctx context.Context, campaignID int64) *string
}
