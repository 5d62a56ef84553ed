package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// RelayService forwards caller-described requests to marketplace APIs on behalf
// of a user, attaching that user's stored credentials. It keeps no state between
// calls and is safe for concurrent use.
type RelayService struct {
	credentials driven.CredentialStore
	gateway     driven.MarketplaceGateway
}

// NewRelayService creates a new RelayService with the required dependencies.
func NewRelayService(credentials driven.CredentialStore, gateway driven.MarketplaceGateway) *RelayService {
	return &RelayService{
		credentials: credentials,
		gateway:     gateway,
	}
}

// Forward relays req to the marketplace named by marketplaceKey using the
// credentials userID stored for it. Unsupported marketplaces and malformed
// requests fail before any storage or network I/O; missing credentials fail
// before any network I/O.
//
// On a completed exchange the upstream response is returned. When its status
// is 400 or above, a *model.UpstreamError carrying the same status and body is
// returned alongside it.
func (s *RelayService) Forward(ctx context.Context, userID int64, marketplaceKey string, req model.RelayRequest) (*model.UpstreamResponse, error) {
	m, err := model.ParseMarketplace(marketplaceKey)
	if err != nil || !s.gateway.Supports(m) {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedMarketplace, marketplaceKey)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.credentials.Get(ctx, userID, m)
	if err != nil {
		return nil, fmt.Errorf("load %s credentials: %w", m, err)
	}

	resp, err := s.gateway.Send(ctx, m, creds, req)
	if err != nil {
		if !errors.Is(err, model.ErrCredentialsMissing) {
			slog.Warn("marketplace relay failed",
				"user_id", userID,
				"marketplace", m,
				"method", req.Method,
				"path", req.Path,
				"error", err,
			)
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return resp, &model.UpstreamError{
			Marketplace: m,
			StatusCode:  resp.StatusCode,
			Body:        resp.Body,
		}
	}

	return resp, nil
}
