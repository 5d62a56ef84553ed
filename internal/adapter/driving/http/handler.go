// Package httphandler is the REST driving adapter of the back-office API.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/marketpro/backoffice/internal/application"
	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Deps groups the services and stores the Handler serves from.
type Deps struct {
	Relay     *application.RelayService
	Settings  *application.SettingsService
	Auth      *application.AuthService
	Finance   *application.FinanceService
	Dashboard *application.DashboardService

	Orders    driven.OrderStore
	Products  driven.ProductStore
	Records   driven.FinanceStore
	Campaigns driven.CampaignStore
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	relay     *application.RelayService
	settings  *application.SettingsService
	auth      *application.AuthService
	finance   *application.FinanceService
	dashboard *application.DashboardService
	orders    driven.OrderStore
	products  driven.ProductStore
	records   driven.FinanceStore
	campaigns driven.CampaignStore
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	return &Handler{
		relay:     deps.Relay,
		settings:  deps.Settings,
		auth:      deps.Auth,
		finance:   deps.Finance,
		dashboard: deps.Dashboard,
		orders:    deps.Orders,
		products:  deps.Products,
		records:   deps.Records,
		campaigns: deps.Campaigns,
		validate:  newValidator(),
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with request ID, logging and recovery middleware. Every route except health
// and login requires a bearer token.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/v1/auth/me", h.Me)
	api.HandleFunc("PUT /api/v1/auth/password", h.ChangePassword)

	api.HandleFunc("GET /api/v1/integrations", h.ListIntegrations)
	api.HandleFunc("PUT /api/v1/integrations/{marketplace}", h.SaveIntegration)
	api.HandleFunc("DELETE /api/v1/integrations/{marketplace}", h.RemoveIntegration)
	api.HandleFunc("POST /api/v1/integrations/{marketplace}/request", h.RelayRequest)

	api.HandleFunc("GET /api/v1/orders", h.ListOrders)
	api.HandleFunc("POST /api/v1/orders", h.CreateOrder)
	api.HandleFunc("GET /api/v1/orders/{id}", h.GetOrder)
	api.HandleFunc("PUT /api/v1/orders/{id}", h.UpdateOrder)
	api.HandleFunc("DELETE /api/v1/orders/{id}", h.DeleteOrder)

	api.HandleFunc("GET /api/v1/products", h.ListProducts)
	api.HandleFunc("POST /api/v1/products", h.CreateProduct)
	api.HandleFunc("GET /api/v1/products/{id}", h.GetProduct)
	api.HandleFunc("PUT /api/v1/products/{id}", h.UpdateProduct)
	api.HandleFunc("DELETE /api/v1/products/{id}", h.DeleteProduct)

	api.HandleFunc("GET /api/v1/finance/records", h.ListFinanceRecords)
	api.HandleFunc("POST /api/v1/finance/records", h.CreateFinanceRecord)
	api.HandleFunc("GET /api/v1/finance/records/{id}", h.GetFinanceRecord)
	api.HandleFunc("PUT /api/v1/finance/records/{id}", h.UpdateFinanceRecord)
	api.HandleFunc("DELETE /api/v1/finance/records/{id}", h.DeleteFinanceRecord)
	api.HandleFunc("GET /api/v1/finance/summary", h.FinanceSummary)

	api.HandleFunc("GET /api/v1/advertising/campaigns", h.ListCampaigns)
	api.HandleFunc("POST /api/v1/advertising/campaigns", h.CreateCampaign)
	api.HandleFunc("GET /api/v1/advertising/campaigns/{id}", h.GetCampaign)
	api.HandleFunc("PUT /api/v1/advertising/campaigns/{id}", h.UpdateCampaign)
	api.HandleFunc("DELETE /api/v1/advertising/campaigns/{id}", h.DeleteCampaign)

	api.HandleFunc("GET /api/v1/dashboard", h.Dashboard)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.Handle("/api/v1/", authMiddleware(h.auth, api))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Dashboard returns the landing-page aggregate for the current user.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	d, err := h.dashboard.Build(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to build dashboard", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

// pathID parses the {id} path value. It writes a 400 and returns false when
// the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// queryMarketplace parses the optional ?marketplace= filter. It writes a 400
// and returns false on an unknown value.
func queryMarketplace(w http.ResponseWriter, r *http.Request) (model.Marketplace, bool) {
	v := r.URL.Query().Get("marketplace")
	if v == "" {
		return "", true
	}
	m, err := model.ParseMarketplace(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return m, true
}

// writeStoreError maps record store errors to responses. Unexpected errors are
// logged and reported as 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error, what string, attrs ...any) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, model.ErrAlreadyExists):
		writeError(w, http.StatusConflict, what+" already exists")
	default:
		h.logger.Error("failed to access "+what, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
