package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInProcess OrderStatus = "IN_PROCESS"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed from the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order describes a dress sale or rental order fulfilled by a shop.
type Order struct {
	ID        int64
	ShopID    int64
	UserID    int64
	Status    OrderStatus
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
