package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	masker "github.com/goliatone/go-masker"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// IntegrationSummary describes a user's integration with one relay-enabled
// marketplace. Credential fields hold masked previews, never plaintext.
type IntegrationSummary struct {
	Marketplace model.Marketplace
	Configured  bool
	APIKey      string
	ClientID    string
	SecretKey   string
	SellerID    string
	UpdatedAt   time.Time
}

// SettingsService manages the marketplace credentials a user configures in the
// integration settings.
type SettingsService struct {
	credentials driven.CredentialStore
	gateway     driven.MarketplaceGateway
}

// NewSettingsService creates a new SettingsService. The gateway decides which
// marketplaces are listed by Describe.
func NewSettingsService(credentials driven.CredentialStore, gateway driven.MarketplaceGateway) *SettingsService {
	return &SettingsService{
		credentials: credentials,
		gateway:     gateway,
	}
}

// Save stores creds for the marketplace named by marketplaceKey. Empty fields
// keep the previously stored value. Saving an all-empty record with nothing
// stored removes the integration.
func (s *SettingsService) Save(ctx context.Context, userID int64, marketplaceKey string, creds model.MarketplaceCredentials) error {
	m, err := model.ParseMarketplace(marketplaceKey)
	if err != nil {
		return err
	}

	creds = trimCredentials(creds)

	stored, err := s.credentials.Get(ctx, userID, m)
	if err != nil {
		return fmt.Errorf("load %s credentials: %w", m, err)
	}

	merged := creds.MergeFrom(stored)
	if merged.IsEmpty() {
		return s.credentials.Delete(ctx, userID, m)
	}

	if err := s.credentials.Save(ctx, userID, m, merged); err != nil {
		return fmt.Errorf("save %s credentials: %w", m, err)
	}
	return nil
}

// Remove deletes the stored credentials for the marketplace.
func (s *SettingsService) Remove(ctx context.Context, userID int64, marketplaceKey string) error {
	m, err := model.ParseMarketplace(marketplaceKey)
	if err != nil {
		return err
	}
	if err := s.credentials.Delete(ctx, userID, m); err != nil {
		return fmt.Errorf("delete %s credentials: %w", m, err)
	}
	return nil
}

// Describe returns one summary per relay-enabled marketplace, in the order of
// model.Marketplaces.
func (s *SettingsService) Describe(ctx context.Context, userID int64) ([]IntegrationSummary, error) {
	statuses, err := s.credentials.ListConfigured(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configured integrations: %w", err)
	}
	byMarketplace := make(map[model.Marketplace]model.CredentialStatus, len(statuses))
	for _, st := range statuses {
		byMarketplace[st.Marketplace] = st
	}

	summaries := make([]IntegrationSummary, 0, len(model.Marketplaces))
	for _, m := range model.Marketplaces {
		if !s.gateway.Supports(m) {
			continue
		}

		summary := IntegrationSummary{Marketplace: m}
		if st, ok := byMarketplace[m]; ok {
			creds, err := s.credentials.Get(ctx, userID, m)
			if err != nil {
				return nil, fmt.Errorf("load %s credentials: %w", m, err)
			}
			summary.Configured = !creds.IsEmpty()
			summary.APIKey = maskSecret(creds.APIKey)
			summary.ClientID = maskSecret(creds.ClientID)
			summary.SecretKey = maskSecret(creds.SecretKey)
			summary.SellerID = maskSecret(creds.SellerID)
			summary.UpdatedAt = st.UpdatedAt
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func trimCredentials(c model.MarketplaceCredentials) model.MarketplaceCredentials {
	return model.MarketplaceCredentials{
		APIKey:    strings.TrimSpace(c.APIKey),
		ClientID:  strings.TrimSpace(c.ClientID),
		SecretKey: strings.TrimSpace(c.SecretKey),
		SellerID:  strings.TrimSpace(c.SellerID),
	}
}

// minPreviewLen is the shortest value whose ends may be shown. Shorter values
// are masked completely.
const minPreviewLen = 8

// maskSecret returns a preview of value with only its first and last two
// characters visible.
func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) < minPreviewLen {
		return strings.Repeat("*", len(runes))
	}
	if masked, err := masker.Default.String("preserveEnds(2,2)", value); err == nil && masked != value {
		return masked
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
