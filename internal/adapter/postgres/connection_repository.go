package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestpost/internal/core/domain"
)

// ConnectionRepository implements port.ConnectionRepository using pgxpool.
type ConnectionRepository struct {
	pool *pgxpool.Pool
}

// NewConnectionRepository returns a new repository instance.
func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{pool: pool}
}

// ListActive returns the tenant's active destination connections.
func (r *ConnectionRepository) ListActive(ctx context.Context, tenantID int64) ([]domain.SocialConnection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, platform, display_name, is_active, created_at, updated_at
		 FROM social_connections
		 WHERE tenant_id = $1 AND is_active
		 ORDER BY id`, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SocialConnection, error) {
		var c domain.SocialConnection
		err := row.Scan(&c.ID, &c.TenantID, &c.Platform, &c.DisplayName, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
}
