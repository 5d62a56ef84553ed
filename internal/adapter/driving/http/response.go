package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/application"
	"github.com/marketpro/backoffice/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeErrorDetails writes a JSON error response carrying additional details.
func writeErrorDetails(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthResponse is the JSON response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// RelayResponse wraps a successful marketplace response.
type RelayResponse struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// IntegrationResponse is the JSON representation of a marketplace integration.
// Credential fields are masked previews.
type IntegrationResponse struct {
	Marketplace string `json:"marketplace"`
	Name        string `json:"name"`
	Configured  bool   `json:"configured"`
	APIKey      string `json:"api_key"`
	ClientID    string `json:"client_id"`
	SecretKey   string `json:"secret_key"`
	SellerID    string `json:"seller_id"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// UserResponse is the JSON representation of the authenticated user.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// OrderResponse is the JSON representation of an order.
type OrderResponse struct {
	ID          int64           `json:"id"`
	Marketplace string          `json:"marketplace"`
	ExternalID  string          `json:"external_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	OrderedAt   string          `json:"ordered_at"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ProductResponse is the JSON representation of a product.
type ProductResponse struct {
	ID              int64           `json:"id"`
	Marketplace     string          `json:"marketplace"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"description_html"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// FinanceRecordResponse is the JSON representation of a finance record.
type FinanceRecordResponse struct {
	ID          int64           `json:"id"`
	Marketplace string          `json:"marketplace"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OccurredAt  string          `json:"occurred_at"`
	CreatedAt   string          `json:"created_at"`
}

// TotalsResponse is the JSON representation of finance totals.
type TotalsResponse struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Payouts  decimal.Decimal `json:"payouts"`
	Net      decimal.Decimal `json:"net"`
}

// MarketplaceTotalsResponse is the finance breakdown for one marketplace.
type MarketplaceTotalsResponse struct {
	Marketplace string `json:"marketplace"`
	TotalsResponse
}

// FinanceSummaryResponse is the JSON representation of a finance summary.
type FinanceSummaryResponse struct {
	From          string                      `json:"from,omitempty"`
	To            string                      `json:"to,omitempty"`
	Total         TotalsResponse              `json:"total"`
	ByMarketplace []MarketplaceTotalsResponse `json:"by_marketplace"`
}

// CampaignResponse is the JSON representation of an advertising campaign.
type CampaignResponse struct {
	ID          int64           `json:"id"`
	Marketplace string          `json:"marketplace"`
	ExternalID  string          `json:"external_id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	DailyBudget decimal.Decimal `json:"daily_budget"`
	Spent       decimal.Decimal `json:"spent"`
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
	CTR         decimal.Decimal `json:"ctr"`
	CPC         decimal.Decimal `json:"cpc"`
	StartedAt   string          `json:"started_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// DashboardResponse is the JSON representation of the dashboard aggregate.
type DashboardResponse struct {
	OrdersByStatus  map[string]int `json:"orders_by_status"`
	TotalOrders     int            `json:"total_orders"`
	Products        int            `json:"products"`
	Campaigns       int            `json:"campaigns"`
	ActiveCampaigns int            `json:"active_campaigns"`
	Finance         TotalsResponse `json:"finance"`
}

// formatTime renders t as RFC 3339 in UTC, or "" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// upstreamData returns body as raw JSON when it parses, otherwise as a string.
// An empty body yields nil.
func upstreamData(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

func toIntegrationResponse(s application.IntegrationSummary) IntegrationResponse {
	return IntegrationResponse{
		Marketplace: string(s.Marketplace),
		Name:        s.Marketplace.DisplayName(),
		Configured:  s.Configured,
		APIKey:      s.APIKey,
		ClientID:    s.ClientID,
		SecretKey:   s.SecretKey,
		SellerID:    s.SellerID,
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func toOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Marketplace: string(o.Marketplace),
		ExternalID:  o.ExternalID,
		ProductSKU:  o.ProductSKU,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderedAt:   formatTime(o.OrderedAt),
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Marketplace:     string(p.Marketplace),
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		DescriptionHTML: renderDescription(p.Description),
		Price:           p.Price,
		Stock:           p.Stock,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func toFinanceRecordResponse(r model.FinanceRecord) FinanceRecordResponse {
	return FinanceRecordResponse{
		ID:          r.ID,
		Marketplace: string(r.Marketplace),
		Kind:        string(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		OccurredAt:  formatTime(r.OccurredAt),
		CreatedAt:   formatTime(r.CreatedAt),
	}
}

func toTotalsResponse(t model.FinanceTotals) TotalsResponse {
	return TotalsResponse{
		Income:   t.Income,
		Expenses: t.Expenses,
		Payouts:  t.Payouts,
		Net:      t.Net(),
	}
}

func toFinanceSummaryResponse(s application.FinanceSummary) FinanceSummaryResponse {
	resp := FinanceSummaryResponse{
		From:          formatTime(s.From),
		To:            formatTime(s.To),
		Total:         toTotalsResponse(s.Total),
		ByMarketplace: make([]MarketplaceTotalsResponse, 0, len(s.ByMarketplace)),
	}
	for _, mt := range s.ByMarketplace {
		resp.ByMarketplace = append(resp.ByMarketplace, MarketplaceTotalsResponse{
			Marketplace:    string(mt.Marketplace),
			TotalsResponse: toTotalsResponse(mt.Totals),
		})
	}
	return resp
}

func toCampaignResponse(c model.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID,
		Marketplace: string(c.Marketplace),
		ExternalID:  c.ExternalID,
		Name:        c.Name,
		Status:      string(c.Status),
		DailyBudget: c.DailyBudget,
		Spent:       c.Spent,
		Impressions: c.Impressions,
		Clicks:      c.Clicks,
		CTR:         c.CTR(),
		CPC:         c.CPC(),
		StartedAt:   formatTime(c.StartedAt),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func toDashboardResponse(d model.Dashboard) DashboardResponse {
	byStatus := make(map[string]int, len(d.OrdersByStatus))
	for st, n := range d.OrdersByStatus {
		byStatus[string(st)] = n
	}
	return DashboardResponse{
		OrdersByStatus:  byStatus,
		TotalOrders:     d.TotalOrders,
		Products:        d.Products,
		Campaigns:       d.Campaigns,
		ActiveCampaigns: d.ActiveCampaigns,
		Finance:         toTotalsResponse(d.Finance),
	}
}
