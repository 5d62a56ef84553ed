package application

import (
	"context"
	"sync"

	"github.com/marketpro/backoffice/internal/domain/model"
)

// --- Shared mock implementations for service tests ---

type credKey struct {
	userID      int64
	marketplace model.Marketplace
}

// mockCredentialStore is an in-memory CredentialStore that counts Get calls.
type mockCredentialStore struct {
	mu      sync.Mutex
	rows    map[credKey]model.MarketplaceCredentials
	getErr  error
	gets    int
	deleted []credKey
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{rows: make(map[credKey]model.MarketplaceCredentials)}
}

func (m *mockCredentialStore) Get(_ context.Context, userID int64, marketplace model.Marketplace) (model.MarketplaceCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return model.MarketplaceCredentials{}, m.getErr
	}
	return m.rows[credKey{userID, marketplace}], nil
}

func (m *mockCredentialStore) Save(_ context.Context, userID int64, marketplace model.Marketplace, creds model.MarketplaceCredentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[credKey{userID, marketplace}] = creds
	return nil
}

func (m *mockCredentialStore) Delete(_ context.Context, userID int64, marketplace model.Marketplace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, credKey{userID, marketplace})
	m.deleted = append(m.deleted, credKey{userID, marketplace})
	return nil
}

func (m *mockCredentialStore) ListConfigured(_ context.Context, userID int64) ([]model.CredentialStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CredentialStatus
	for _, mk := range model.Marketplaces {
		c, ok := m.rows[credKey{userID, mk}]
		if !ok {
			continue
		}
		out = append(out, model.CredentialStatus{
			Marketplace:  mk,
			HasAPIKey:    c.APIKey != "",
			HasClientID:  c.ClientID != "",
			HasSecretKey: c.SecretKey != "",
			HasSellerID:  c.SellerID != "",
		})
	}
	return out, nil
}

// sentRequest records one MarketplaceGateway.Send invocation.
type sentRequest struct {
	marketplace model.Marketplace
	creds       model.MarketplaceCredentials
	req         model.RelayRequest
}

// mockGateway supports a fixed set of marketplaces and answers every Send
// with resp or err.
type mockGateway struct {
	mu        sync.Mutex
	supported map[model.Marketplace]bool
	resp      *model.UpstreamResponse
	err       error
	sent      []sentRequest
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		supported: map[model.Marketplace]bool{
			model.MarketplaceOzon:         true,
			model.MarketplaceWildberries:  true,
			model.MarketplaceYandexMarket: true,
		},
		resp: &model.UpstreamResponse{StatusCode: 200, Body: []byte(`{}`)},
	}
}

func (m *mockGateway) Supports(marketplace model.Marketplace) bool {
	return m.supported[marketplace]
}

func (m *mockGateway) Send(_ context.Context, marketplace model.Marketplace, creds model.MarketplaceCredentials, req model.RelayRequest) (*model.UpstreamResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentRequest{marketplace: marketplace, creds: creds, req: req})
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockGateway) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
