package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// ProductStore defines the driven port for product persistence.
// Create and Update return model.ErrAlreadyExists when the SKU is already used
// on the same marketplace by the same user.
type ProductStore interface {
	Create(ctx context.Context, product model.Product) (model.Product, error)
	Get(ctx context.Context, userID, id int64) (model.Product, error)
	List(ctx context.Context, userID int64, marketplace model.Marketplace) ([]model.Product, error)
	Update(ctx context.Context, product model.Product) (model.Product, error)
	Delete(ctx context.Context, userID, id int64) error
	Count(ctx context.Context, userID int64) (int, error)
}
