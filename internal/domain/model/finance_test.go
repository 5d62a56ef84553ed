package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/marketpro/backoffice/internal/domain/model"
)

func TestFinanceTotals_Add(t *testing.T) {
	var totals model.FinanceTotals
	for _, r := range []model.FinanceRecord{
		{Kind: model.FinanceKindSale, Amount: decimal.RequireFromString("1500.50")},
		{Kind: model.FinanceKindCommission, Amount: decimal.RequireFromString("150.05")},
		{Kind: model.FinanceKindRefund, Amount: decimal.RequireFromString("100")},
		{Kind: model.FinanceKindPayout, Amount: decimal.RequireFromString("1000")},
	} {
		totals.Add(r)
	}

	assert.Equal(t, "1500.5", totals.Income.String())
	assert.Equal(t, "250.05", totals.Expenses.String())
	assert.Equal(t, "1000", totals.Payouts.String())
	assert.Equal(t, "1250.45", totals.Net().String())
}

func TestCampaign_Metrics(t *testing.T) {
	c := model.Campaign{Spent: decimal.RequireFromString("100"), Impressions: 3000, Clicks: 7}

	assert.Equal(t, "0.23", c.CTR().String())
	assert.Equal(t, "14.29", c.CPC().String())

	idle := model.Campaign{Spent: decimal.RequireFromString("10")}
	assert.True(t, idle.CTR().IsZero())
	assert.True(t, idle.CPC().IsZero())
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, model.OrderStatusReturned.IsValid())
	assert.False(t, model.OrderStatus("lost").IsValid())
	assert.True(t, model.FinanceKindLogistics.IsValid())
	assert.False(t, model.FinanceKind("bonus").IsValid())
	assert.True(t, model.CampaignStatusPaused.IsValid())
	assert.False(t, model.CampaignStatus("deleted").IsValid())
}
