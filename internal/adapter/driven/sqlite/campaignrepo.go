package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CampaignStore = (*CampaignRepo)(nil)

const campaignColumns = `id, user_id, marketplace, external_id, name, status, daily_budget, spent,
	impressions, clicks, started_at, created_at, updated_at`

// CampaignRepo is the SQLite implementation of the CampaignStore port interface.
type CampaignRepo struct {
	db  *DB
	now func() time.Time
}

// NewCampaignRepo creates a new CampaignRepo backed by the given DB.
func NewCampaignRepo(db *DB) *CampaignRepo {
	return &CampaignRepo{db: db, now: time.Now}
}

// Create inserts a new advertising campaign.
func (r *CampaignRepo) Create(ctx context.Context, c model.Campaign) (model.Campaign, error) {
	const query = `INSERT INTO ad_campaigns (user_id, marketplace, external_id, name, status, daily_budget, spent,
		impressions, clicks, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := r.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	result, err := r.db.Writer.ExecContext(ctx, query,
		c.UserID, string(c.Marketplace), c.ExternalID, c.Name, string(c.Status),
		c.DailyBudget.String(), c.Spent.String(), c.Impressions, c.Clicks,
		formatTime(c.StartedAt), formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("create campaign %q: %w", c.Name, err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return model.Campaign{}, fmt.Errorf("last insert id: %w", err)
	}
	return c, nil
}

// Get returns the campaign with the given ID owned by userID.
func (r *CampaignRepo) Get(ctx context.Context, userID, id int64) (model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM ad_campaigns WHERE user_id = ? AND id = ?`
	c, err := scanCampaign(r.db.Reader.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return model.Campaign{}, notFound(err, "campaign", id)
	}
	return c, nil
}

// List returns the user's campaigns, newest first. An empty marketplace lists
// all of them.
func (r *CampaignRepo) List(ctx context.Context, userID int64, marketplace model.Marketplace) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM ad_campaigns WHERE user_id = ?`
	args := []any{userID}
	if marketplace != "" {
		query += ` AND marketplace = ?`
		args = append(args, string(marketplace))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}

	return campaigns, nil
}

// Update replaces the mutable fields of an existing campaign.
func (r *CampaignRepo) Update(ctx context.Context, c model.Campaign) (model.Campaign, error) {
	const query = `UPDATE ad_campaigns SET marketplace = ?, external_id = ?, name = ?, status = ?,
		daily_budget = ?, spent = ?, impressions = ?, clicks = ?, started_at = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	existing, err := r.Get(ctx, c.UserID, c.ID)
	if err != nil {
		return model.Campaign{}, err
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.now().UTC()

	result, err := r.db.Writer.ExecContext(ctx, query,
		string(c.Marketplace), c.ExternalID, c.Name, string(c.Status),
		c.DailyBudget.String(), c.Spent.String(), c.Impressions, c.Clicks,
		formatTime(c.StartedAt), formatTime(c.UpdatedAt),
		c.UserID, c.ID,
	)
	if err != nil {
		return model.Campaign{}, fmt.Errorf("update campaign %d: %w", c.ID, err)
	}
	if err := requireAffected(result, "campaign", c.ID); err != nil {
		return model.Campaign{}, err
	}
	return c, nil
}

// Delete removes the campaign with the given ID owned by userID.
func (r *CampaignRepo) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM ad_campaigns WHERE user_id = ? AND id = ?`
	result, err := r.db.Writer.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete campaign %d: %w", id, err)
	}
	return requireAffected(result, "campaign", id)
}

func scanCampaign(row rowScanner) (model.Campaign, error) {
	var c model.Campaign
	var marketplace, status, budget, spent, createdAt, updatedAt string
	var startedAt sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &marketplace, &c.ExternalID, &c.Name, &status, &budget, &spent,
		&c.Impressions, &c.Clicks, &startedAt, &createdAt, &updatedAt); err != nil {
		return model.Campaign{}, err
	}
	c.Marketplace = model.Marketplace(marketplace)
	c.Status = model.CampaignStatus(status)

	var err error
	if c.DailyBudget, err = parseDecimal(budget); err != nil {
		return model.Campaign{}, err
	}
	if c.Spent, err = parseDecimal(spent); err != nil {
		return model.Campaign{}, err
	}
	if c.StartedAt, err = parseNullTime(startedAt); err != nil {
		return model.Campaign{}, fmt.Errorf("parse started_at: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Campaign{}, fmt.Errorf("parse created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Campaign{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return c, nil
}
