package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a listing a seller publishes on a marketplace. SKU is unique per
// user and marketplace.
type Product struct {
	ID          int64
	UserID      int64
	Marketplace Marketplace
	SKU         string
	Name        string
	Description string // Markdown.
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
