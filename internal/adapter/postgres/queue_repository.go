package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestpost/internal/core/domain"
)

// QueueRepository implements port.QueueRepository using pgxpool.
type QueueRepository struct {
	pool *pgxpool.Pool
}

// NewQueueRepository returns a new repository instance.
func NewQueueRepository(pool *pgxpool.Pool) *QueueRepository {
	return &QueueRepository{pool: pool}
}

// InsertPending creates a pending row for (post, connection). The partial
// unique index on pending rows makes a concurrent duplicate insert land
// on the conflict clause, so re-running a rebuild never duplicates work.
func (r *QueueRepository) InsertPending(ctx context.Context, item domain.PublishingQueueItem) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO publishing_queue (post_id, connection_id, scheduled_for, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (post_id, connection_id) WHERE status = 'pending' DO NOTHING`,
		item.PostID, item.ConnectionID, item.ScheduledFor, domain.QueueStatusPending)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, nil
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SyncPending pushes the post's current scheduled time onto its pending
// rows and clears next_attempt_at, keeping queue time authoritative to
// the post.
func (r *QueueRepository) SyncPending(ctx context.Context, postID int64, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE publishing_queue
		 SET scheduled_for = $1, next_attempt_at = NULL, updated_at = now()
		 WHERE post_id = $2 AND status = $3`,
		at, postID, domain.QueueStatusPending)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ResetForPost is the explicit user-reschedule path: every queue row of
// the post goes back to pending at the new instant with retry state
// cleared, un-failing previously failed rows.
func (r *QueueRepository) ResetForPost(ctx context.Context, postID int64, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE publishing_queue
		 SET scheduled_for = $1,
		     status = $2,
		     attempts = 0,
		     last_attempt_at = NULL,
		     last_error = NULL,
		     next_attempt_at = NULL,
		     updated_at = now()
		 WHERE post_id = $3`,
		at, domain.QueueStatusPending, postID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListStatusesByCampaign returns the status strings of all queue rows
// belonging to the campaign's posts.
func (r *QueueRepository) ListStatusesByCampaign(ctx context.Context, campaignID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.status
		 FROM publishing_queue q
		 JOIN campaign_posts p ON p.id = q.post_id
		 WHERE p.campaign_id = $1`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	})
}
