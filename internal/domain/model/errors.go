package model

import (
	"errors"
	"fmt"
)

// Validation errors. These are raised before any storage or network I/O.
var (
	ErrUnknownMarketplace     = errors.New("unknown marketplace")
	ErrUnsupportedMarketplace = errors.New("unsupported marketplace")
	ErrInvalidRelayPath       = errors.New("invalid request path")
	ErrInvalidRelayMethod     = errors.New("invalid request method")
	ErrCredentialsMissing     = errors.New("marketplace credentials missing")
)

// ErrInvalidPeriod reports a reporting period whose start is not before its end.
var ErrInvalidPeriod = errors.New("invalid period")

// Relay transport errors.
var ErrUpstreamUnavailable = errors.New("marketplace API unavailable")

// Record errors shared by the CRUD stores.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// UpstreamError reports a marketplace response with a non-success status.
// Body holds the raw upstream payload so callers can pass it through.
type UpstreamError struct {
	Marketplace Marketplace
	StatusCode  int
	Body        []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API responded with status %d", e.Marketplace.DisplayName(), e.StatusCode)
}
