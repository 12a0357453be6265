package domain

import "time"

// SocialConnection is a tenant's link to one destination platform
// instance. The pipeline reads it only as a matching key; token health
// and refresh live elsewhere.
type SocialConnection struct {
	ID          int64
	TenantID    int64
	Platform    string
	DisplayName string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
