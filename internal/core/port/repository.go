package port

import (
	"context"
	"time"

	"guestpost/internal/core/domain"
)

// CampaignRepository is the persistence boundary for campaigns. Lookup
// methods return (nil, nil) when no row matches.
type CampaignRepository interface {
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListRecurring returns all active campaigns of a recurring type
	// across every tenant, for the materialiser tick.
	ListRecurring(ctx context.Context) ([]domain.Campaign, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// PostRepository is the persistence boundary for campaign posts.
type PostRepository interface {
	GetPost(ctx context.Context, id int64) (*domain.CampaignPost, error)
	// ListQueueEligible returns the campaign's posts with
	// status=scheduled and approval_status=approved.
	ListQueueEligible(ctx context.Context, campaignID int64) ([]domain.CampaignPost, error)
	// ListScheduledBetween returns posts of the campaign whose
	// scheduled_for falls inside [from, to).
	ListScheduledBetween(ctx context.Context, campaignID int64, from, to time.Time) ([]domain.CampaignPost, error)
	// InsertGenerated bulk-inserts materialised posts and returns how
	// many were actually created. A unique-slot violation counts as
	// already materialised, not as an error.
	InsertGenerated(ctx context.Context, posts []domain.CampaignPost) (int, error)
	ListStatusesByCampaign(ctx context.Context, campaignID int64) ([]string, error)
	UpdateScheduledFor(ctx context.Context, postID int64, at time.Time) error
	UpdateApprovalStatus(ctx context.Context, postID int64, approvalStatus string) error
}

// QueueRepository is the persistence boundary for publishing queue rows.
type QueueRepository interface {
	// InsertPending creates a pending row for (post, connection) and
	// reports whether a new row was created. An existing pending row for
	// the pair makes this a no-op.
	InsertPending(ctx context.Context, item domain.PublishingQueueItem) (bool, error)
	// SyncPending pushes the post's scheduled_for onto all of its
	// pending rows and clears next_attempt_at. Returns affected rows.
	SyncPending(ctx context.Context, postID int64, at time.Time) (int64, error)
	// ResetForPost is the user-reschedule path: every row of the post is
	// forced back to pending at the new time with retry state cleared.
	ResetForPost(ctx context.Context, postID int64, at time.Time) (int64, error)
	ListStatusesByCampaign(ctx context.Context, campaignID int64) ([]string, error)
}

// ConnectionRepository exposes the tenant's destination connections. The
// pipeline only reads them.
type ConnectionRepository interface {
	ListActive(ctx context.Context, tenantID int64) ([]domain.SocialConnection, error)
}

// ApprovalRepository is the persistence boundary for the approval
// workflow.
type ApprovalRepository interface {
	GetByPost(ctx context.Context, postID int64) (*domain.PostApproval, error)
	// EnsureForPost lazily creates the approval row with the tenant's
	// configured quorum and returns it.
	EnsureForPost(ctx context.Context, tenantID, postID int64) (*domain.PostApproval, error)
	// Approve atomically increments approved_count and flips state to
	// approved once the quorum is reached, in a single statement.
	Approve(ctx context.Context, postID int64) (*domain.PostApproval, error)
	// SetState unconditionally sets the approval state (reject,
	// request_changes).
	SetState(ctx context.Context, postID int64, state string) (*domain.PostApproval, error)
	AddComment(ctx context.Context, comment domain.PostComment) error
	ListComments(ctx context.Context, postID int64) ([]domain.PostComment, error)
}
