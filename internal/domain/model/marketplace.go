package model

import (
	"fmt"
	"strings"
)

// Marketplace identifies an external e-commerce platform a seller trades on.
type Marketplace string

const (
	MarketplaceOzon         Marketplace = "ozon"
	MarketplaceWildberries  Marketplace = "wildberries"
	MarketplaceYandexMarket Marketplace = "yandexmarket"
	MarketplaceMegamarket   Marketplace = "megamarket"
	MarketplaceMagnitmarket Marketplace = "magnitmarket"
)

// Marketplaces lists every marketplace records can be attributed to.
var Marketplaces = []Marketplace{
	MarketplaceOzon,
	MarketplaceWildberries,
	MarketplaceYandexMarket,
	MarketplaceMegamarket,
	MarketplaceMagnitmarket,
}

// IsValid reports whether m is a known marketplace.
func (m Marketplace) IsValid() bool {
	switch m {
	case MarketplaceOzon, MarketplaceWildberries, MarketplaceYandexMarket,
		MarketplaceMegamarket, MarketplaceMagnitmarket:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-readable marketplace name used in messages.
func (m Marketplace) DisplayName() string {
	switch m {
	case MarketplaceOzon:
		return "Ozon"
	case MarketplaceWildberries:
		return "Wildberries"
	case MarketplaceYandexMarket:
		return "Yandex Market"
	case MarketplaceMegamarket:
		return "Megamarket"
	case MarketplaceMagnitmarket:
		return "Magnitmarket"
	default:
		return string(m)
	}
}

// ParseMarketplace normalizes s and returns the matching Marketplace.
// Unknown values yield an error wrapping ErrUnknownMarketplace.
func ParseMarketplace(s string) (Marketplace, error) {
	m := Marketplace(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMarketplace, s)
	}
	return m, nil
}
