package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port interface.
// Credential values are sealed by the codec before write and opened after read,
// so plaintext never reaches SQL.
type CredentialRepo struct {
	db    *DB
	codec driven.SecretCodec
	now   func() time.Time
}

// NewCredentialRepo creates a new CredentialRepo that seals values with codec.
func NewCredentialRepo(db *DB, codec driven.SecretCodec) *CredentialRepo {
	return &CredentialRepo{db: db, codec: codec, now: time.Now}
}

// Get returns the decrypted credentials for (userID, marketplace).
// Returns an empty record and no error if no row exists.
func (r *CredentialRepo) Get(ctx context.Context, userID int64, marketplace model.Marketplace) (model.MarketplaceCredentials, error) {
	const query = `SELECT api_key, client_id, secret_key, seller_id
		FROM marketplace_credentials WHERE user_id = ? AND marketplace = ?`

	var apiKey, clientID, secretKey, sellerID sql.NullString
	err := r.db.Reader.QueryRowContext(ctx, query, userID, string(marketplace)).
		Scan(&apiKey, &clientID, &secretKey, &sellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MarketplaceCredentials{}, nil
	}
	if err != nil {
		return model.MarketplaceCredentials{}, fmt.Errorf("get credentials %s for user %d: %w", marketplace, userID, err)
	}

	var creds model.MarketplaceCredentials
	fields := []struct {
		name   string
		sealed sql.NullString
		dst    *string
	}{
		{"api_key", apiKey, &creds.APIKey},
		{"client_id", clientID, &creds.ClientID},
		{"secret_key", secretKey, &creds.SecretKey},
		{"seller_id", sellerID, &creds.SellerID},
	}
	for _, f := range fields {
		if !f.sealed.Valid {
			continue
		}
		plain, err := r.codec.Open(f.sealed.String)
		if err != nil {
			return model.MarketplaceCredentials{}, fmt.Errorf("open %s credential %s for user %d: %w", marketplace, f.name, userID, err)
		}
		*f.dst = plain
	}

	return creds, nil
}

// Save stores or replaces the credentials for (userID, marketplace).
func (r *CredentialRepo) Save(ctx context.Context, userID int64, marketplace model.Marketplace, creds model.MarketplaceCredentials) error {
	sealed := make([]any, 0, 4)
	for _, plain := range []string{creds.APIKey, creds.ClientID, creds.SecretKey, creds.SellerID} {
		v, err := r.seal(plain)
		if err != nil {
			return fmt.Errorf("seal %s credentials for user %d: %w", marketplace, userID, err)
		}
		sealed = append(sealed, v)
	}

	const query = `INSERT INTO marketplace_credentials
		(user_id, marketplace, api_key, client_id, secret_key, seller_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, marketplace) DO UPDATE SET
			api_key = excluded.api_key,
			client_id = excluded.client_id,
			secret_key = excluded.secret_key,
			seller_id = excluded.seller_id,
			updated_at = excluded.updated_at`

	args := append([]any{userID, string(marketplace)}, sealed...)
	args = append(args, formatTime(r.now()))

	if _, err := r.db.Writer.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s credentials for user %d: %w", marketplace, userID, err)
	}
	return nil
}

// Delete removes the credentials for (userID, marketplace).
func (r *CredentialRepo) Delete(ctx context.Context, userID int64, marketplace model.Marketplace) error {
	const query = `DELETE FROM marketplace_credentials WHERE user_id = ? AND marketplace = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, userID, string(marketplace)); err != nil {
		return fmt.Errorf("delete %s credentials for user %d: %w", marketplace, userID, err)
	}
	return nil
}

// ListConfigured reports stored credential fields per marketplace for userID.
func (r *CredentialRepo) ListConfigured(ctx context.Context, userID int64) ([]model.CredentialStatus, error) {
	const query = `SELECT marketplace,
			api_key IS NOT NULL, client_id IS NOT NULL, secret_key IS NOT NULL, seller_id IS NOT NULL,
			updated_at
		FROM marketplace_credentials WHERE user_id = ? ORDER BY marketplace`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials for user %d: %w", userID, err)
	}
	defer rows.Close()

	var statuses []model.CredentialStatus
	for rows.Next() {
		var st model.CredentialStatus
		var marketplace, updatedAt string
		if err := rows.Scan(&marketplace, &st.HasAPIKey, &st.HasClientID, &st.HasSecretKey, &st.HasSellerID, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan credential status: %w", err)
		}
		st.Marketplace = model.Marketplace(marketplace)

		st.UpdatedAt, err = parseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at for %s: %w", marketplace, err)
		}

		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credential statuses: %w", err)
	}

	return statuses, nil
}

// seal returns nil for empty plaintext so absent values are stored as NULL.
func (r *CredentialRepo) seal(plaintext string) (any, error) {
	if plaintext == "" {
		return nil, nil
	}
	envelope, err := r.codec.Seal(plaintext)
	if err != nil {
		return nil, err
	}
	return envelope, nil
}
