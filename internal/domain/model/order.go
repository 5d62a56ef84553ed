package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of a marketplace order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// OrderStatuses lists all order statuses in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is a customer order received through a marketplace.
type Order struct {
	ID          int64
	UserID      int64
	Marketplace Marketplace
	ExternalID  string // Order number on the marketplace side.
	ProductSKU  string
	ProductName string
	Quantity    int
	TotalAmount decimal.Decimal
	Status      OrderStatus
	OrderedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderFilter narrows an order listing. Zero values match everything.
type OrderFilter struct {
	Marketplace Marketplace
	Status      OrderStatus
}
