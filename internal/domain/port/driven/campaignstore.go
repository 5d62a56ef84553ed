package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// CampaignStore defines the driven port for advertising campaign persistence.
type CampaignStore interface {
	Create(ctx context.Context, campaign model.Campaign) (model.Campaign, error)
	Get(ctx context.Context, userID, id int64) (model.Campaign, error)
	List(ctx context.Context, userID int64, marketplace model.Marketplace) ([]model.Campaign, error)
	Update(ctx context.Context, campaign model.Campaign) (model.Campaign, error)
	Delete(ctx context.Context, userID, id int64) error
}
