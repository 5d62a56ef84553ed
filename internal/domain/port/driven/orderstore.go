package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// OrderStore defines the driven port for order persistence. All operations are
// scoped to the owning user. Get, Update and Delete return model.ErrNotFound
// when the order does not exist for that user.
type OrderStore interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	Get(ctx context.Context, userID, id int64) (model.Order, error)
	List(ctx context.Context, userID int64, filter model.OrderFilter) ([]model.Order, error)
	Update(ctx context.Context, order model.Order) (model.Order, error)
	Delete(ctx context.Context, userID, id int64) error
	// CountByStatus returns the number of orders per status for userID.
	CountByStatus(ctx context.Context, userID int64) (map[model.OrderStatus]int, error)
}
