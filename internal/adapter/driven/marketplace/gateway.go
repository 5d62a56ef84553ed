// Package marketplace implements the MarketplaceGateway port over plain HTTP.
package marketplace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marketpro/backoffice/internal/domain/model"
	"github.com/marketpro/backoffice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MarketplaceGateway = (*Gateway)(nil)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 30 * time.Second

// maxResponseSize is the largest upstream body the gateway will buffer (10MB).
const maxResponseSize = 10 * 1024 * 1024

// authorizeFunc sets the marketplace auth headers on h, or reports which
// credential is missing.
type authorizeFunc func(h http.Header, creds model.MarketplaceCredentials) error

// profile describes how to reach and authenticate against one marketplace API.
type profile struct {
	baseURL   string
	authorize authorizeFunc
}

// missingCredentialsError carries a user-facing message and unwraps to
// model.ErrCredentialsMissing.
type missingCredentialsError string

func (e missingCredentialsError) Error() string { return string(e) }
func (e missingCredentialsError) Unwrap() error { return model.ErrCredentialsMissing }

func authorizeOzon(h http.Header, creds model.MarketplaceCredentials) error {
	if creds.APIKey == "" || creds.ClientID == "" {
		return missingCredentialsError("Ozon API key or Client ID is missing")
	}
	h.Set("Api-Key", creds.APIKey)
	h.Set("Client-Id", creds.ClientID)
	h.Set("Content-Type", "application/json")
	return nil
}

func authorizeWildberries(h http.Header, creds model.MarketplaceCredentials) error {
	if creds.APIKey == "" {
		return missingCredentialsError("Wildberries API key is missing")
	}
	h.Set("Authorization", creds.APIKey)
	h.Set("Content-Type", "application/json")
	return nil
}

func authorizeYandexMarket(h http.Header, creds model.MarketplaceCredentials) error {
	if creds.APIKey == "" {
		return missingCredentialsError("Yandex Market API key is missing")
	}
	h.Set("Api-Key", creds.APIKey)
	h.Set("Content-Type", "application/json")
	return nil
}

func defaultProfiles() map[model.Marketplace]profile {
	return map[model.Marketplace]profile{
		model.MarketplaceOzon:         {baseURL: "https://api-seller.ozon.ru", authorize: authorizeOzon},
		model.MarketplaceWildberries:  {baseURL: "https://suppliers-api.wildberries.ru", authorize: authorizeWildberries},
		model.MarketplaceYandexMarket: {baseURL: "https://api.partner.market.yandex.ru", authorize: authorizeYandexMarket},
	}
}

// Gateway relays authenticated requests to marketplace REST APIs. It holds no
// per-request state and is safe for concurrent use.
type Gateway struct {
	httpClient *http.Client
	profiles   map[model.Marketplace]profile
}

// NewGateway creates a Gateway whose upstream calls are bounded by timeout.
// A non-positive timeout uses DefaultTimeout.
func NewGateway(timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{
		httpClient: &http.Client{Timeout: timeout, CheckRedirect: noRedirect},
		profiles:   defaultProfiles(),
	}
}

// noRedirect returns redirects to the caller unfollowed so credential headers
// never reach another host.
func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// NewGatewayWithHTTPClient creates a Gateway with a custom http.Client and
// base URL overrides per marketplace. This constructor is intended for testing,
// allowing injection of an httptest server.
func NewGatewayWithHTTPClient(httpClient *http.Client, baseURLs map[model.Marketplace]string) *Gateway {
	profiles := defaultProfiles()
	for m, base := range baseURLs {
		p, ok := profiles[m]
		if !ok {
			continue
		}
		p.baseURL = base
		profiles[m] = p
	}
	client := *httpClient
	client.CheckRedirect = noRedirect
	return &Gateway{httpClient: &client, profiles: profiles}
}

// Supports reports whether marketplace has a relay profile.
func (g *Gateway) Supports(marketplace model.Marketplace) bool {
	_, ok := g.profiles[marketplace]
	return ok
}

// Send issues exactly one request to the marketplace API with auth headers
// derived from creds. Caller headers are applied first so the profile headers
// always win.
func (g *Gateway) Send(ctx context.Context, marketplace model.Marketplace, creds model.MarketplaceCredentials, req model.RelayRequest) (*model.UpstreamResponse, error) {
	p, ok := g.profiles[marketplace]
	if !ok {
		return nil, fmt.Errorf("%s: %w", marketplace, model.ErrUnsupportedMarketplace)
	}

	header := make(http.Header, len(req.Header)+3)
	for k, vs := range req.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	if err := p.authorize(header, creds); err != nil {
		return nil, err
	}

	target, err := resolveURL(p.baseURL, req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.HasBody() {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", marketplace, err)
	}
	httpReq.Header = header

	start := time.Now()
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		slog.Warn("marketplace api call failed",
			"marketplace", marketplace,
			"method", method,
			"path", req.Path,
			"duration", time.Since(start),
		)
		return nil, fmt.Errorf("%s %s %s: %w: %v", marketplace.DisplayName(), method, req.Path, model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w: %v", marketplace.DisplayName(), model.ErrUpstreamUnavailable, err)
	}
	if len(data) > maxResponseSize {
		return nil, fmt.Errorf("%s: response exceeds %d bytes: %w", marketplace.DisplayName(), maxResponseSize, model.ErrUpstreamUnavailable)
	}

	slog.Debug("marketplace api call",
		"marketplace", marketplace,
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &model.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       data,
	}, nil
}

// errHostChanged reports a path that would move the request off the
// marketplace host.
var errHostChanged = errors.New("path resolves outside the marketplace API host")

// resolveURL joins base and path, merges query into any query already present
// in path, and rejects results that leave the base host.
func resolveURL(base, path string, query url.Values) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidRelayPath, err)
	}
	if u.Scheme != baseURL.Scheme || u.Host != baseURL.Host || u.User != nil {
		return "", fmt.Errorf("%w: %w", model.ErrInvalidRelayPath, errHostChanged)
	}

	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	u.Fragment = ""

	return u.String(), nil
}
