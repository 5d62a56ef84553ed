package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// FinanceStore defines the driven port for finance record persistence.
type FinanceStore interface {
	Create(ctx context.Context, record model.FinanceRecord) (model.FinanceRecord, error)
	Get(ctx context.Context, userID, id int64) (model.FinanceRecord, error)
	// List returns records matching filter, newest first.
	List(ctx context.Context, userID int64, filter model.FinanceFilter) ([]model.FinanceRecord, error)
	Update(ctx context.Context, record model.FinanceRecord) (model.FinanceRecord, error)
	Delete(ctx context.Context, userID, id int64) error
}
