package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpro/backoffice/internal/domain/model"
)

type mockOrderStore struct {
	counts map[model.OrderStatus]int
}

func (m *mockOrderStore) Create(_ context.Context, o model.Order) (model.Order, error) { return o, nil }
func (m *mockOrderStore) Get(_ context.Context, _, _ int64) (model.Order, error) {
	return model.Order{}, model.ErrNotFound
}
func (m *mockOrderStore) List(_ context.Context, _ int64, _ model.OrderFilter) ([]model.Order, error) {
	return []model.Order{}, nil
}
func (m *mockOrderStore) Update(_ context.Context, o model.Order) (model.Order, error) { return o, nil }
func (m *mockOrderStore) Delete(_ context.Context, _, _ int64) error                  { return nil }
func (m *mockOrderStore) CountByStatus(_ context.Context, _ int64) (map[model.OrderStatus]int, error) {
	return m.counts, nil
}

type mockProductStore struct {
	count int
}

func (m *mockProductStore) Create(_ context.Context, p model.Product) (model.Product, error) {
	return p, nil
}
func (m *mockProductStore) Get(_ context.Context, _, _ int64) (model.Product, error) {
	return model.Product{}, model.ErrNotFound
}
func (m *mockProductStore) List(_ context.Context, _ int64, _ model.Marketplace) ([]model.Product, error) {
	return []model.Product{}, nil
}
func (m *mockProductStore) Update(_ context.Context, p model.Product) (model.Product, error) {
	return p, nil
}
func (m *mockProductStore) Delete(_ context.Context, _, _ int64) error { return nil }
func (m *mockProductStore) Count(_ context.Context, _ int64) (int, error) {
	return m.count, nil
}

type mockCampaignStore struct {
	campaigns []model.Campaign
}

func (m *mockCampaignStore) Create(_ context.Context, c model.Campaign) (model.Campaign, error) {
	return c, nil
}
func (m *mockCampaignStore) Get(_ context.Context, _, _ int64) (model.Campaign, error) {
	return model.Campaign{}, model.ErrNotFound
}
func (m *mockCampaignStore) List(_ context.Context, _ int64, _ model.Marketplace) ([]model.Campaign, error) {
	return m.campaigns, nil
}
func (m *mockCampaignStore) Update(_ context.Context, c model.Campaign) (model.Campaign, error) {
	return c, nil
}
func (m *mockCampaignStore) Delete(_ context.Context, _, _ int64) error { return nil }

func TestDashboardService_Build(t *testing.T) {
	orders := &mockOrderStore{counts: map[model.OrderStatus]int{
		model.OrderStatusNew:       3,
		model.OrderStatusDelivered: 2,
	}}
	products := &mockProductStore{count: 12}
	campaigns := &mockCampaignStore{campaigns: []model.Campaign{
		{Status: model.CampaignStatusActive},
		{Status: model.CampaignStatusActive},
		{Status: model.CampaignStatusPaused},
	}}
	finance := NewFinanceService(&mockFinanceStore{records: []model.FinanceRecord{
		financeRecord(model.MarketplaceOzon, model.FinanceKindSale, "100", time.Now()),
		financeRecord(model.MarketplaceOzon, model.FinanceKindRefund, "30", time.Now()),
	}})
	svc := NewDashboardService(orders, products, campaigns, finance)

	d, err := svc.Build(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 5, d.TotalOrders)
	assert.Equal(t, 3, d.OrdersByStatus[model.OrderStatusNew])
	assert.Equal(t, 0, d.OrdersByStatus[model.OrderStatusShipped])
	assert.Len(t, d.OrdersByStatus, len(model.OrderStatuses), "every status is present")
	assert.Equal(t, 12, d.Products)
	assert.Equal(t, 3, d.Campaigns)
	assert.Equal(t, 2, d.ActiveCampaigns)
	assert.Equal(t, "70", d.Finance.Net().String())
}
