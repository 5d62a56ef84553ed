package application

import (
	"context"
	"fmt"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// DashboardService assembles the landing-page aggregate from the record stores.
type DashboardService struct {
	orders    driven.OrderStore
	products  driven.ProductStore
	campaigns driven.CampaignStore
	finance   *FinanceService
}

// NewDashboardService creates a new DashboardService with the required dependencies.
func NewDashboardService(
	orders driven.OrderStore,
	products driven.ProductStore,
	campaigns driven.CampaignStore,
	finance *FinanceService,
) *DashboardService {
	return &DashboardService{
		orders:    orders,
		products:  products,
		campaigns: campaigns,
		finance:   finance,
	}
}

// Build returns the dashboard for userID. Finance totals cover all time.
func (s *DashboardService) Build(ctx context.Context, userID int64) (model.Dashboard, error) {
	byStatus, err := s.orders.CountByStatus(ctx, userID)
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("count orders: %w", err)
	}

	products, err := s.products.Count(ctx, userID)
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("count products: %w", err)
	}

	campaigns, err := s.campaigns.List(ctx, userID, "")
	if err != nil {
		return model.Dashboard{}, fmt.Errorf("list campaigns: %w", err)
	}

	summary, err := s.finance.Summary(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		return model.Dashboard{}, err
	}

	d := model.Dashboard{
		OrdersByStatus: make(map[model.OrderStatus]int, len(model.OrderStatuses)),
		Products:       products,
		Campaigns:      len(campaigns),
		Finance:        summary.Total,
	}
	for _, st := range model.OrderStatuses {
		d.OrdersByStatus[st] = byStatus[st]
		d.TotalOrders += byStatus[st]
	}
	for _, c := range campaigns {
		if c.Status == model.CampaignStatusActive {
			d.ActiveCampaigns++
		}
	}

	return d, nil
}
