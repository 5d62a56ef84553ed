// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// CredentialStore defines the driven port for encrypted marketplace credential
// persistence. The adapter seals values before write and opens them after read;
// this interface operates on plaintext at the domain boundary.
type CredentialStore interface {
	// Get returns the credentials stored for (userID, marketplace). A missing
	// row yields an empty record and no error. A stored value that fails
	// integrity checks yields an error wrapping ErrSecretTampered.
	Get(ctx context.Context, userID int64, marketplace model.Marketplace) (model.MarketplaceCredentials, error)

	// Save stores or replaces the credentials for (userID, marketplace).
	// Empty fields are stored as absent.
	Save(ctx context.Context, userID int64, marketplace model.Marketplace, creds model.MarketplaceCredentials) error

	// Delete removes the credentials for (userID, marketplace). Deleting a
	// missing row is not an error.
	Delete(ctx context.Context, userID int64, marketplace model.Marketplace) error

	// ListConfigured reports which marketplaces have stored credentials for
	// userID, without decrypting anything.
	ListConfigured(ctx context.Context, userID int64) ([]model.CredentialStatus, error)
}
