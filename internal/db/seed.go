package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data into the guestpost database: two tenants with
// active connections, a weekly campaign with cadence rules, an event
// campaign and a handful of one-off posts. Intended for local
// development only.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	quorums := []int{1, 2}
	for i := 1; i <= 2; i++ {
		name := fmt.Sprintf("Demo Bistro %d", i)
		_, err := db.Exec(ctx, `INSERT INTO tenants (id, name, approval_quorum)
VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, i, name, quorums[i-1])
		if err != nil {
			return err
		}

		for j, platform := range []string{"instagram", "facebook"} {
			connID := (i-1)*2 + j + 1
			display := fmt.Sprintf("%s %s %s", name, platform, uuid.NewString()[:8])
			_, err = db.Exec(ctx, `INSERT INTO social_connections (id, tenant_id, platform, display_name, is_active)
VALUES ($1, $2, $3, $4, true) ON CONFLICT DO NOTHING`, connID, i, platform, display)
			if err != nil {
				return err
			}
		}
	}

	weeklyMeta, _ := json.Marshal(map[string]any{
		"cadences": []map[string]any{
			{"platform": "instagram", "weekday": "monday", "time": "09:00"},
			{"platform": "facebook", "weekday": "thursday", "time": "17:30"},
		},
	})
	_, err := db.Exec(ctx, `INSERT INTO campaigns (id, tenant_id, name, campaign_type, status, timezone, metadata)
VALUES (1, 1, 'Weekly specials', 'weekly', 'active', 'Europe/London', $1) ON CONFLICT DO NOTHING`, weeklyMeta)
	if err != nil {
		return err
	}

	eventMeta, _ := json.Marshal(map[string]any{
		"platform":   "instagram_business",
		"event_date": time.Now().AddDate(0, 0, 21).Format(time.RFC3339),
	})
	_, err = db.Exec(ctx, `INSERT INTO campaigns (id, tenant_id, name, campaign_type, status, timezone, metadata)
VALUES (2, 1, 'Summer tasting night', 'event', 'active', 'Europe/London', $1) ON CONFLICT DO NOTHING`, eventMeta)
	if err != nil {
		return err
	}

	scheduledFor := time.Now().Add(48 * time.Hour)
	_, err = db.Exec(ctx, `INSERT INTO campaign_posts
(id, tenant_id, campaign_id, platform, status, approval_status, scheduled_for, content)
VALUES (1, 1, 1, 'instagram', 'scheduled', 'approved', $1, 'Chef''s special this Monday!')
ON CONFLICT DO NOTHING`, scheduledFor)
	return err
}
