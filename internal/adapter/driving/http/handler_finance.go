package httphandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// FinanceRecordRequest is the request body for creating or replacing a
// finance record. Amount is non-negative; its direction follows from kind.
type FinanceRecordRequest struct {
	Marketplace string          `json:"marketplace" validate:"required,marketplace"`
	Kind        string          `json:"kind" validate:"required,finance_kind"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
	Description string          `json:"description" validate:"max=1024"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func (req FinanceRecordRequest) toModel(userID int64) model.FinanceRecord {
	m, _ := model.ParseMarketplace(req.Marketplace)
	return model.FinanceRecord{
		UserID:      userID,
		Marketplace: m,
		Kind:        model.FinanceKind(req.Kind),
		Amount:      req.Amount,
		Description: req.Description,
		OccurredAt:  req.OccurredAt.UTC(),
	}
}

// ListFinanceRecords returns the current user's finance records, optionally
// filtered by ?marketplace=, ?kind=, ?from= and ?to=.
func (h *Handler) ListFinanceRecords(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	m, ok := queryMarketplace(w, r)
	if !ok {
		return
	}
	kind := model.FinanceKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown finance record kind")
		return
	}
	from, to, ok := queryPeriod(w, r)
	if !ok {
		return
	}

	records, err := h.records.List(r.Context(), userID, model.FinanceFilter{
		Marketplace: m,
		Kind:        kind,
		From:        from,
		To:          to,
	})
	if err != nil {
		h.writeStoreError(w, err, "finance records", "user_id", userID)
		return
	}

	resp := make([]FinanceRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toFinanceRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateFinanceRecord adds a finance record.
func (h *Handler) CreateFinanceRecord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req FinanceRecordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.records.Create(r.Context(), req.toModel(userID))
	if err != nil {
		h.writeStoreError(w, err, "finance record", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toFinanceRecordResponse(rec))
}

// GetFinanceRecord returns a single finance record.
func (h *Handler) GetFinanceRecord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.records.Get(r.Context(), userID, id)
	if err != nil {
		h.writeStoreError(w, err, "finance record", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toFinanceRecordResponse(rec))
}

// UpdateFinanceRecord replaces a finance record.
func (h *Handler) UpdateFinanceRecord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req FinanceRecordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rec := req.toModel(userID)
	rec.ID = id
	rec, err := h.records.Update(r.Context(), rec)
	if err != nil {
		h.writeStoreError(w, err, "finance record", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toFinanceRecordResponse(rec))
}

// DeleteFinanceRecord removes a finance record.
func (h *Handler) DeleteFinanceRecord(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.records.Delete(r.Context(), userID, id); err != nil {
		h.writeStoreError(w, err, "finance record", "user_id", userID, "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FinanceSummary returns income, expenses and net for ?from= <= t < ?to=,
// in total and per marketplace.
func (h *Handler) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	from, to, ok := queryPeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.finance.Summary(r.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to build finance summary", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toFinanceSummaryResponse(summary))
}

// queryPeriod parses the optional ?from= and ?to= bounds. Both accept RFC 3339
// timestamps or YYYY-MM-DD dates (midnight UTC). It writes a 400 and returns
// false on a malformed value.
func queryPeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := parseQueryTime(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from: expected RFC 3339 timestamp or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := parseQueryTime(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to: expected RFC 3339 timestamp or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseQueryTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
