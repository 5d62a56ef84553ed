package driven

import (
	"context"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// MarketplaceGateway issues authenticated calls to marketplace APIs.
type MarketplaceGateway interface {
	// Supports reports whether requests can be relayed to marketplace.
	Supports(marketplace model.Marketplace) bool

	// Send attaches the marketplace auth headers derived from creds and issues
	// exactly one upstream request. Missing credentials fail with an error
	// wrapping model.ErrCredentialsMissing before any network I/O. Any upstream
	// status is returned as a response; only transport failures are errors.
	Send(ctx context.Context, marketplace model.Marketplace, creds model.MarketplaceCredentials, req model.RelayRequest) (*model.UpstreamResponse, error)
}
