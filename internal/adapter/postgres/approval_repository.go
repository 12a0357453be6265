package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestpost/internal/core/domain"
)

// ApprovalRepository implements port.ApprovalRepository using pgxpool.
type ApprovalRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRepository returns a new repository instance.
func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

const approvalColumns = `id, tenant_id, post_id, required, approved_count, state, created_at, updated_at`

func scanApproval(row pgx.Row) (*domain.PostApproval, error) {
	var a domain.PostApproval
	err := row.Scan(&a.ID, &a.TenantID, &a.PostID, &a.Required, &a.ApprovedCount, &a.State, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByPost returns the approval row for a post, or (nil, nil) when none
// exists yet.
func (r *ApprovalRepository) GetByPost(ctx context.Context, postID int64) (*domain.PostApproval, error) {
	a, err := scanApproval(r.pool.QueryRow(ctx,
		`SELECT `+approvalColumns+` FROM post_approvals WHERE post_id = $1`, postID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// EnsureForPost lazily creates the approval row, seeding the quorum from
// the tenant's configuration. The unique post_id constraint makes a
// concurrent create converge on a single row.
func (r *ApprovalRepository) EnsureForPost(ctx context.Context, tenantID, postID int64) (*domain.PostApproval, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_approvals (tenant_id, post_id, required, approved_count, state)
		 SELECT $1, $2, GREATEST(t.approval_quorum, 1), 0, $3
		 FROM tenants t WHERE t.id = $1
		 ON CONFLICT (post_id) DO NOTHING`,
		tenantID, postID, domain.ApprovalStatePending)
	if err != nil {
		return nil, err
	}
	return r.GetByPost(ctx, postID)
}

// Approve increments the count and flips state to approved once the
// quorum is reached, in one statement. Concurrent approvals therefore
// cannot under-count or leave a satisfied quorum unapproved.
func (r *ApprovalRepository) Approve(ctx context.Context, postID int64) (*domain.PostApproval, error) {
	a, err := scanApproval(r.pool.QueryRow(ctx,
		`UPDATE post_approvals
		 SET approved_count = approved_count + 1,
		     state = CASE WHEN approved_count + 1 >= required THEN $1 ELSE state END,
		     updated_at = now()
		 WHERE post_id = $2
		 RETURNING `+approvalColumns,
		domain.ApprovalStateApproved, postID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SetState unconditionally sets the approval state, regardless of count.
func (r *ApprovalRepository) SetState(ctx context.Context, postID int64, state string) (*domain.PostApproval, error) {
	a, err := scanApproval(r.pool.QueryRow(ctx,
		`UPDATE post_approvals SET state = $1, updated_at = now()
		 WHERE post_id = $2
		 RETURNING `+approvalColumns,
		state, postID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AddComment appends an immutable comment row.
func (r *ApprovalRepository) AddComment(ctx context.Context, c domain.PostComment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_comments (tenant_id, post_id, kind, body, author)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.TenantID, c.PostID, c.Kind, c.Body, c.Author)
	return err
}

// ListComments returns the post's comments oldest first.
func (r *ApprovalRepository) ListComments(ctx context.Context, postID int64) ([]domain.PostComment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, post_id, kind, body, author, created_at
		 FROM post_comments WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PostComment, error) {
		var c domain.PostComment
		err := row.Scan(&c.ID, &c.TenantID, &c.PostID, &c.Kind, &c.Body, &c.Author, &c.CreatedAt)
		return c, err
	})
}
