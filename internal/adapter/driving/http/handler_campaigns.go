package httphandler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// CampaignRequest is the request body for creating or replacing an
// advertising campaign.
type CampaignRequest struct {
	Marketplace string          `json:"marketplace" validate:"required,marketplace"`
	ExternalID  string          `json:"external_id" validate:"max=128"`
	Name        string          `json:"name" validate:"required,max=256"`
	Status      string          `json:"status" validate:"required,campaign_status"`
	DailyBudget decimal.Decimal `json:"daily_budget" validate:"gte=0"`
	Spent       decimal.Decimal `json:"spent" validate:"gte=0"`
	Impressions int64           `json:"impressions" validate:"gte=0"`
	Clicks      int64           `json:"clicks" validate:"gte=0,ltefield=Impressions"`
	StartedAt   time.Time       `json:"started_at"`
}

func (req CampaignRequest) toModel(userID int64) model.Campaign {
	m, _ := model.ParseMarketplace(req.Marketplace)
	return model.Campaign{
		UserID:      userID,
		Marketplace: m,
		ExternalID:  req.ExternalID,
		Name:        req.Name,
		Status:      model.CampaignStatus(req.Status),
		DailyBudget: req.DailyBudget,
		Spent:       req.Spent,
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
		StartedAt:   req.StartedAt.UTC(),
	}
}

// ListCampaigns returns the current user's campaigns, optionally filtered by
// ?marketplace=.
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	m, ok := queryMarketplace(w, r)
	if !ok {
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), userID, m)
	if err != nil {
		h.writeStoreError(w, err, "campaigns", "user_id", userID)
		return
	}

	resp := make([]CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		resp = append(resp, toCampaignResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateCampaign adds an advertising campaign.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req CampaignRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	campaign, err := h.campaigns.Create(r.Context(), req.toModel(userID))
	if err != nil {
		h.writeStoreError(w, err, "campaign", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toCampaignResponse(campaign))
}

// GetCampaign returns a single campaign.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	campaign, err := h.campaigns.Get(r.Context(), userID, id)
	if err != nil {
		h.writeStoreError(w, err, "campaign", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(campaign))
}

// UpdateCampaign replaces a campaign.
func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CampaignRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	campaign := req.toModel(userID)
	campaign.ID = id
	campaign, err := h.campaigns.Update(r.Context(), campaign)
	if err != nil {
		h.writeStoreError(w, err, "campaign", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toCampaignResponse(campaign))
}

// DeleteCampaign removes a campaign.
func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.campaigns.Delete(r.Context(), userID, id); err != nil {
		h.writeStoreError(w, err, "campaign", "user_id", userID, "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
