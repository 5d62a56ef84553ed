package model

import "time"

// MarketplaceCredentials holds the decrypted API credentials a user configured
// for one marketplace. An empty field means the value is not configured.
type MarketplaceCredentials struct {
	APIKey    string
	ClientID  string
	SecretKey string
	SellerID  string
}

// IsEmpty reports whether no credential field is set.
func (c MarketplaceCredentials) IsEmpty() bool {
	return c.APIKey == "" && c.ClientID == "" && c.SecretKey == "" && c.SellerID == ""
}

// MergeFrom returns c with every empty field filled from stored.
func (c MarketplaceCredentials) MergeFrom(stored MarketplaceCredentials) MarketplaceCredentials {
	if c.APIKey == "" {
		c.APIKey = stored.APIKey
	}
	if c.ClientID == "" {
		c.ClientID = stored.ClientID
	}
	if c.SecretKey == "" {
		c.SecretKey = stored.SecretKey
	}
	if c.SellerID == "" {
		c.SellerID = stored.SellerID
	}
	return c
}

// CredentialStatus describes which credential fields are stored for a
// marketplace without exposing their values.
type CredentialStatus struct {
	Marketplace  Marketplace
	HasAPIKey    bool
	HasClientID  bool
	HasSecretKey bool
	HasSellerID  bool
	UpdatedAt    time.Time
}
