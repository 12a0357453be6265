package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestpost/internal/core/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint
// violation.
const uniqueViolation = "23505"

// PostRepository implements port.PostRepository using pgxpool.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a new repository instance.
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, tenant_id, campaign_id, platform, status, approval_status, scheduled_for, content, auto_generated, provenance, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.CampaignPost, error) {
	var (
		p   domain.CampaignPost
		raw []byte
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.CampaignID, &p.Platform, &p.Status, &p.ApprovalStatus,
		&p.ScheduledFor, &p.Content, &p.AutoGenerated, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &p.Provenance); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]domain.CampaignPost, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignPost, error) {
		p, err := scanPost(row)
		if err != nil {
			return domain.CampaignPost{}, err
		}
		return *p, nil
	})
}

// GetPost returns a post by id, or (nil, nil) when absent.
func (r *PostRepository) GetPost(ctx context.Context, id int64) (*domain.CampaignPost, error) {
	p, err := scanPost(r.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM campaign_posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListQueueEligible returns the campaign's scheduled, approved posts.
func (r *PostRepository) ListQueueEligible(ctx context.Context, campaignID int64) ([]domain.CampaignPost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM campaign_posts
		 WHERE campaign_id = $1 AND status = $2 AND approval_status = $3
		 ORDER BY scheduled_for`,
		campaignID, domain.PostStatusScheduled, domain.ApprovalStateApproved)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// ListScheduledBetween returns the campaign's posts scheduled inside
// [from, to).
func (r *PostRepository) ListScheduledBetween(ctx context.Context, campaignID int64, from, to time.Time) ([]domain.CampaignPost, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postColumns+` FROM campaign_posts
		 WHERE campaign_id = $1 AND scheduled_for >= $2 AND scheduled_for < $3
		 ORDER BY scheduled_for`,
		campaignID, from, to)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// InsertGenerated bulk-inserts materialised posts. A unique violation on
// the campaign slot index means a concurrent tick already created the
// row; it is skipped, not surfaced.
func (r *PostRepository) InsertGenerated(ctx context.Context, posts []domain.CampaignPost) (int, error) {
	created := 0
	for _, p := range posts {
		prov, err := json.Marshal(p.Provenance)
		if err != nil {
			return created, err
		}
		_, err = r.pool.Exec(ctx,
			`INSERT INTO campaign_posts
			 (tenant_id, campaign_id, platform, status, approval_status, scheduled_for, content, auto_generated, provenance)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.TenantID, p.CampaignID, p.Platform, p.Status, p.ApprovalStatus,
			p.ScheduledFor, p.Content, p.AutoGenerated, prov)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// ListStatusesByCampaign returns the status strings of every post in the
// campaign.
func (r *PostRepository) ListStatusesByCampaign(ctx context.Context, campaignID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status FROM campaign_posts WHERE campaign_id = $1`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	})
}

// UpdateScheduledFor moves a post to a new instant.
func (r *PostRepository) UpdateScheduledFor(ctx context.Context, postID int64, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaign_posts SET scheduled_for = $1, updated_at = now() WHERE id = $2`, at, postID)
	return err
}

// UpdateApprovalStatus mirrors the approval workflow state onto the post.
func (r *PostRepository) UpdateApprovalStatus(ctx context.Context, postID int64, approvalStatus string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaign_posts SET approval_status = $1, updated_at = now() WHERE id = $2`, approvalStatus, postID)
	return err
}
