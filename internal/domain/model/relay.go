package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RelayRequest is a caller-described HTTP call to be forwarded to a
// marketplace API. It is never persisted.
type RelayRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   json.RawMessage
	Header http.Header
}

// UpstreamResponse is the marketplace response returned verbatim to the caller.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

var relayMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// NormalizeRelayPath prefixes a missing leading slash. It does not validate.
func NormalizeRelayPath(path string) string {
	path = strings.TrimSpace(path)
	if path != "" && !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// Validate checks the request shape and canonicalizes the method. An empty
// method means GET.
func (r *RelayRequest) Validate() error {
	if !strings.HasPrefix(r.Path, "/") || len(r.Path) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidRelayPath, r.Path)
	}

	method := strings.ToUpper(strings.TrimSpace(r.Method))
	if method == "" {
		method = http.MethodGet
	}
	if !relayMethods[method] {
		return fmt.Errorf("%w: %q", ErrInvalidRelayMethod, r.Method)
	}
	r.Method = method

	return nil
}

// HasBody reports whether a JSON body should be sent upstream.
func (r *RelayRequest) HasBody() bool {
	trimmed := strings.TrimSpace(string(r.Body))
	return trimmed != "" && trimmed != "null"
}
