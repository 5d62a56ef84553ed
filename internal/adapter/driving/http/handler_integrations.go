package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// RelayRequestBody is the request body for forwarding a call to a marketplace API.
type RelayRequestBody struct {
	Method  string                     `json:"method" validate:"max=10"`
	Path    string                     `json:"path" validate:"required,max=2048"`
	Data    json.RawMessage            `json:"data"`
	Params  map[string]json.RawMessage `json:"params" validate:"max=100"`
	Headers map[string]string          `json:"headers" validate:"max=50"`
}

// SaveIntegrationRequest is the request body for storing marketplace
// credentials. Empty fields keep the stored value.
type SaveIntegrationRequest struct {
	APIKey    string `json:"api_key" validate:"max=4096"`
	ClientID  string `json:"client_id" validate:"max=256"`
	SecretKey string `json:"secret_key" validate:"max=4096"`
	SellerID  string `json:"seller_id" validate:"max=256"`
}

// RelayRequest forwards the described call to the marketplace API with the
// current user's credentials and returns the upstream response.
func (h *Handler) RelayRequest(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	marketplaceKey := r.PathValue("marketplace")

	var body RelayRequestBody
	if !h.decodeAndValidate(w, r, &body) {
		return
	}

	query, err := paramsToQuery(body.Params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	header := make(http.Header, len(body.Headers))
	for k, v := range body.Headers {
		if k = strings.TrimSpace(k); k != "" {
			header.Set(k, v)
		}
	}

	resp, err := h.relay.Forward(r.Context(), userID, marketplaceKey, model.RelayRequest{
		Method: body.Method,
		Path:   model.NormalizeRelayPath(body.Path),
		Query:  query,
		Body:   body.Data,
		Header: header,
	})
	if err != nil {
		h.writeRelayError(w, err, userID, marketplaceKey)
		return
	}

	writeJSON(w, http.StatusOK, RelayResponse{
		Status: resp.StatusCode,
		Data:   upstreamData(resp.Body),
	})
}

// writeRelayError maps relay failures to responses. Upstream error statuses
// are passed through with the upstream body as details.
func (h *Handler) writeRelayError(w http.ResponseWriter, err error, userID int64, marketplaceKey string) {
	var upErr *model.UpstreamError
	switch {
	case errors.As(err, &upErr):
		writeErrorDetails(w, upErr.StatusCode, upErr.Error(), upstreamData(upErr.Body))
	case errors.Is(err, model.ErrUnsupportedMarketplace):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Marketplace %q is not supported", marketplaceKey))
	case errors.Is(err, model.ErrInvalidRelayPath),
		errors.Is(err, model.ErrInvalidRelayMethod),
		errors.Is(err, model.ErrCredentialsMissing):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, driven.ErrSecretTampered):
		h.logger.Error("stored credentials failed integrity check",
			"user_id", userID, "marketplace", marketplaceKey, "error", err)
		writeError(w, http.StatusInternalServerError, "stored credentials could not be decrypted")
	case errors.Is(err, model.ErrUpstreamUnavailable):
		writeError(w, http.StatusInternalServerError, "marketplace API is unavailable")
	default:
		h.logger.Error("marketplace relay failed",
			"user_id", userID, "marketplace", marketplaceKey, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ListIntegrations returns the integration state of every relay-enabled
// marketplace with masked credential previews.
func (h *Handler) ListIntegrations(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	summaries, err := h.settings.Describe(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to describe integrations", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]IntegrationResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, toIntegrationResponse(s))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SaveIntegration stores the current user's credentials for a marketplace.
func (h *Handler) SaveIntegration(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	marketplaceKey := r.PathValue("marketplace")

	var req SaveIntegrationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.settings.Save(r.Context(), userID, marketplaceKey, model.MarketplaceCredentials{
		APIKey:    req.APIKey,
		ClientID:  req.ClientID,
		SecretKey: req.SecretKey,
		SellerID:  req.SellerID,
	})
	if err != nil {
		if errors.Is(err, model.ErrUnknownMarketplace) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save integration", "user_id", userID, "marketplace", marketplaceKey, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveIntegration deletes the current user's credentials for a marketplace.
func (h *Handler) RemoveIntegration(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	marketplaceKey := r.PathValue("marketplace")

	if err := h.settings.Remove(r.Context(), userID, marketplaceKey); err != nil {
		if errors.Is(err, model.ErrUnknownMarketplace) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to remove integration", "user_id", userID, "marketplace", marketplaceKey, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// paramsToQuery converts JSON query parameters to url.Values. Scalars become
// one value, arrays of scalars become repeated values and null is skipped.
// Numbers keep their literal form.
func paramsToQuery(params map[string]json.RawMessage) (url.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}

	query := make(url.Values, len(params))
	for key, raw := range params {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, item := range list {
				v, ok, err := scalarParam(key, item)
				if err != nil {
					return nil, err
				}
				if ok {
					query.Add(key, v)
				}
			}
			continue
		}

		v, ok, err := scalarParam(key, raw)
		if err != nil {
			return nil, err
		}
		if ok {
			query.Add(key, v)
		}
	}
	return query, nil
}

func scalarParam(key string, raw json.RawMessage) (string, bool, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "null":
		return "", false, nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("invalid value for parameter %q", key)
		}
		return s, true, nil
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return "", false, fmt.Errorf("parameter %q must be a scalar or an array of scalars", key)
	default:
		// Numbers and booleans keep their literal JSON text.
		return trimmed, true, nil
	}
}
