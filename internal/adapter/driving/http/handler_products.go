package httphandler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// ProductRequest is the request body for creating or replacing a product.
type ProductRequest struct {
	Marketplace string          `json:"marketplace" validate:"required,marketplace"`
	SKU         string          `json:"sku" validate:"required,max=128"`
	Name        string          `json:"name" validate:"required,max=512"`
	Description string          `json:"description" validate:"max=20000"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (req ProductRequest) toModel(userID int64) model.Product {
	m, _ := model.ParseMarketplace(req.Marketplace)
	return model.Product{
		UserID:      userID,
		Marketplace: m,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
}

// ListProducts returns the current user's products, optionally filtered by
// ?marketplace=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	m, ok := queryMarketplace(w, r)
	if !ok {
		return
	}

	products, err := h.products.List(r.Context(), userID, m)
	if err != nil {
		h.writeStoreError(w, err, "products", "user_id", userID)
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateProduct adds a product. A duplicate SKU on the same marketplace is a conflict.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req ProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.products.Create(r.Context(), req.toModel(userID))
	if err != nil {
		h.writeStoreError(w, err, "product", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), userID, id)
	if err != nil {
		h.writeStoreError(w, err, "product", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProduct replaces a product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	product := req.toModel(userID)
	product.ID = id
	product, err := h.products.Update(r.Context(), product)
	if err != nil {
		h.writeStoreError(w, err, "product", "user_id", userID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), userID, id); err != nil {
		h.writeStoreError(w, err, "product", "user_id", userID, "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
