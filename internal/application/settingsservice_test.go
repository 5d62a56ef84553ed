package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpro/backoffice/internal/domain/model"
)

func TestSettingsService_SaveMergesEmptyFields(t *testing.T) {
	store := newMockCredentialStore()
	store.rows[credKey{1, model.MarketplaceOzon}] = model.MarketplaceCredentials{APIKey: "old-key", ClientID: "old-client"}
	svc := NewSettingsService(store, newMockGateway())

	err := svc.Save(context.Background(), 1, "ozon", model.MarketplaceCredentials{APIKey: "  new-key  "})
	require.NoError(t, err)

	got := store.rows[credKey{1, model.MarketplaceOzon}]
	assert.Equal(t, "new-key", got.APIKey)
	assert.Equal(t, "old-client", got.ClientID)
}

func TestSettingsService_SaveUnknownMarketplace(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewSettingsService(store, newMockGateway())

	err := svc.Save(context.Background(), 1, "aliexpress", model.MarketplaceCredentials{APIKey: "k"})
	assert.ErrorIs(t, err, model.ErrUnknownMarketplace)
	assert.Empty(t, store.rows)
}

func TestSettingsService_SaveEmptyRemoves(t *testing.T) {
	store := newMockCredentialStore()
	svc := NewSettingsService(store, newMockGateway())

	err := svc.Save(context.Background(), 1, "wildberries", model.MarketplaceCredentials{})
	require.NoError(t, err)
	assert.Empty(t, store.rows)
	assert.Len(t, store.deleted, 1)
}

func TestSettingsService_Remove(t *testing.T) {
	store := newMockCredentialStore()
	store.rows[credKey{1, model.MarketplaceWildberries}] = model.MarketplaceCredentials{APIKey: "wb"}
	svc := NewSettingsService(store, newMockGateway())

	require.NoError(t, svc.Remove(context.Background(), 1, "WILDBERRIES"))
	assert.Empty(t, store.rows)

	assert.ErrorIs(t, svc.Remove(context.Background(), 1, "nope"), model.ErrUnknownMarketplace)
}

func TestSettingsService_DescribeMasksValues(t *testing.T) {
	store := newMockCredentialStore()
	store.rows[credKey{7, model.MarketplaceOzon}] = model.MarketplaceCredentials{
		APIKey:   "ab-SECRETMIDDLE-yz",
		ClientID: "123",
	}
	// Megamarket has no relay profile and is not described.
	store.rows[credKey{7, model.MarketplaceMegamarket}] = model.MarketplaceCredentials{APIKey: "mm-key-value"}
	svc := NewSettingsService(store, newMockGateway())

	summaries, err := svc.Describe(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	ozon := summaries[0]
	assert.Equal(t, model.MarketplaceOzon, ozon.Marketplace)
	assert.True(t, ozon.Configured)
	assert.NotEmpty(t, ozon.APIKey)
	assert.NotContains(t, ozon.APIKey, "SECRETMIDDLE")
	assert.Equal(t, "***", ozon.ClientID, "short values are fully masked")
	assert.Empty(t, ozon.SecretKey)

	assert.Equal(t, model.MarketplaceWildberries, summaries[1].Marketplace)
	assert.False(t, summaries[1].Configured)
	assert.Equal(t, model.MarketplaceYandexMarket, summaries[2].Marketplace)

	for _, s := range summaries {
		assert.NotEqual(t, model.MarketplaceMegamarket, s.Marketplace)
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "****", maskSecret("abcd"))

	masked := maskSecret("0123456789abcdef")
	assert.NotEqual(t, "0123456789abcdef", masked)
	assert.NotContains(t, masked, "456789abc")
}
