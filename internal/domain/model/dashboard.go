package model

// Dashboard is the aggregated landing-page view for one user.
type Dashboard struct {
	OrdersByStatus  map[OrderStatus]int
	TotalOrders     int
	Products        int
	ActiveCampaigns int
	Campaigns       int
	Finance         FinanceTotals
}
