package domain

import "time"

// Campaign types. Weekly, event and promotion campaigns carry cadence
// rules in Metadata and are expanded by the materialiser; one-off
// campaigns are scheduled directly by the user.
const (
	CampaignTypeOneOff    = "one_off"
	CampaignTypeWeekly    = "weekly"
	CampaignTypeEvent     = "event"
	CampaignTypePromotion = "promotion"
)

// Campaign statuses. Status is derived from downstream post and queue
// state by the status engine and never set directly elsewhere.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

// Campaign is a tenant-owned container for scheduled content. Metadata is
// an opaque map carrying cadence rules and event/promotion dates for
// recurring types.
type Campaign struct {
	ID           int64
	TenantID     int64
	Name         string
	CampaignType string
	Status       string
	Timezone     string
	Metadata     map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Recurring reports whether the campaign is of a type expanded by the
// materialiser.
func (c Campaign) Recurring() bool {
	switch c.CampaignType {
	case CampaignTypeWeekly, CampaignTypeEvent, CampaignTypePromotion:
		return true
	}
	return false
}

// Location resolves the campaign's configured time zone, falling back to
// UTC when the zone name is missing or unknown.
func (c Campaign) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
