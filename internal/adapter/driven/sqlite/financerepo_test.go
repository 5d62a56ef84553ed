package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpro/backoffice/internal/domain/model"
)

func TestFinanceRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepo(db)
	userID := createTestUser(t, db, "seller")
	ctx := context.Background()

	occurred := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, model.FinanceRecord{
		UserID:      userID,
		Marketplace: model.MarketplaceOzon,
		Kind:        model.FinanceKindCommission,
		Amount:      decimal.RequireFromString("120.55"),
		Description: "Ozon commission",
		OccurredAt:  occurred,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FinanceKindCommission, got.Kind)
	assert.True(t, decimal.RequireFromString("120.55").Equal(got.Amount))
	assert.True(t, occurred.Equal(got.OccurredAt))
}

func TestFinanceRepo_ListDateRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepo(db)
	userID := createTestUser(t, db, "seller")
	ctx := context.Background()

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{jan, feb, mar} {
		_, err := repo.Create(ctx, model.FinanceRecord{
			UserID:      userID,
			Marketplace: model.MarketplaceWildberries,
			Kind:        model.FinanceKindSale,
			Amount:      decimal.NewFromInt(100),
			OccurredAt:  at,
		})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, userID, model.FinanceFilter{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, got, 1, "To is exclusive")
	assert.True(t, feb.Equal(got[0].OccurredAt))

	all, err := repo.List(ctx, userID, model.FinanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, mar.Equal(all[0].OccurredAt), "newest first")
}

func TestFinanceRepo_ListByKind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepo(db)
	userID := createTestUser(t, db, "seller")
	ctx := context.Background()

	for _, kind := range []model.FinanceKind{model.FinanceKindSale, model.FinanceKindRefund, model.FinanceKindSale} {
		_, err := repo.Create(ctx, model.FinanceRecord{
			UserID:      userID,
			Marketplace: model.MarketplaceOzon,
			Kind:        kind,
			Amount:      decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	sales, err := repo.List(ctx, userID, model.FinanceFilter{Kind: model.FinanceKindSale})
	require.NoError(t, err)
	assert.Len(t, sales, 2)
}

func TestFinanceRepo_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFinanceRepo(db)
	userID := createTestUser(t, db, "seller")
	ctx := context.Background()

	created, err := repo.Create(ctx, model.FinanceRecord{
		UserID:      userID,
		Marketplace: model.MarketplaceOzon,
		Kind:        model.FinanceKindSale,
		Amount:      decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	created.Amount = decimal.NewFromInt(25)
	created.OccurredAt = time.Time{}
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.False(t, updated.OccurredAt.IsZero())

	got, err := repo.Get(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(got.Amount))

	require.NoError(t, repo.Delete(ctx, userID, created.ID))
	_, err = repo.Get(ctx, userID, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
