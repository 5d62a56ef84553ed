package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// UserStore defines the driven port for back-office accounts.
type UserStore interface {
	// Create inserts a user. Returns model.ErrAlreadyExists if the username is taken.
	Create(ctx context.Context, user model.User) (model.User, error)
	// GetByUsername returns model.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (model.User, error)
	// GetByID returns model.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id int64) (model.User, error)
	// UpdatePassword replaces the stored hash for the user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
