package httphandler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// OrderRequest is the request body for creating or replacing an order.
type OrderRequest struct {
	Marketplace string          `json:"marketplace" validate:"required,marketplace"`
	ExternalID  string          `json:"external_id" validate:"max=128"`
	ProductSKU  string          `json:"product_sku" validate:"max=128"`
	ProductName string          `json:"product_name" validate:"required,max=512"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"gte=0"`
	Status      string          `json:"status" validate:"required,order_status"`
	OrderedAt   time.Time       `json:"ordered_at"`
}

func (req OrderRequest) toModel(userID int64) model.Order {
	m, _ := model.ParseMarketplace(req.Marketplace)
	return model.Order{
		UserID:      userID,
		Marketplace: m,
		ExternalID:  req.ExternalID,
		ProductSKU:  req.ProductSKU,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		Status:      model.OrderStatus(req.Status),
		OrderedAt:   req.OrderedAt.UTC(),
	}
}

// ListOrders returns the current user's orders, optionally filtered by
// ?marketplace= and ?status=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	m, ok := queryMarketplace(w, r)
	if !ok {
		return
	}
	status := model.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	orders, err := h.orders.List(r.Context(), userID, model.OrderFilter{Marketplace: m, Status: status})
	if err != nil {
		h.writeStoreError(w, err, "orders", "user_id", userID)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateOrder records a new order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req OrderRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orders.Create(r.Context(), req.toModel(userID))
	if err != nil {
		h.writeStoreError(w, err, "order", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GetOrder returns a single order.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), userID, id)
	if err != nil {
		h.writeStoreError(w, err, "order", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateOrder replaces an order.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req OrderRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	order := req.toModel(userID)
	order.ID = id
	order, err := h.orders.Update(r.Context(), order)
	if err != nil {
		h.writeStoreError(w, err, "order", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// DeleteOrder removes an order.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), userID, id); err != nil {
		h.writeStoreError(w, err, "order", "user_id", userID, "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
