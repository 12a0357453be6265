package domain

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// CampaignPost is a single piece of content targeted at one platform.
// CampaignID is nil for quick posts owned by the tenant directly.
// ScheduledFor is the single source of truth for when the post goes out;
// every queue row for the post mirrors it.
type CampaignPost struct {
	ID             int64
	TenantID       int64
	CampaignID     *int64
	Platform       string
	Status         string
	ApprovalStatus string
	ScheduledFor   *time.Time
	Content        string
	AutoGenerated  bool
	Provenance     map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
