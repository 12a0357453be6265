package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"guestpost/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, tenant_id, name, campaign_type, status, timezone, metadata, created_at, updated_at`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c   domain.Campaign
		raw []byte
	)
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.CampaignType, &c.Status, &c.Timezone, &raw, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &c.Metadata); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// GetCampaign returns a campaign by id, or (nil, nil) when absent.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListRecurring returns all active campaigns of recurring types across
// every tenant. Drafts are not expanded until the campaign goes live.
func (r *CampaignRepository) ListRecurring(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		 WHERE campaign_type IN ($1, $2, $3) AND status = $4
		 ORDER BY id`,
		domain.CampaignTypeWeekly, domain.CampaignTypeEvent, domain.CampaignTypePromotion,
		domain.CampaignStatusActive)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

// UpdateStatus writes a derived campaign status.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}
