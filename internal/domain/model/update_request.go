package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateRequestStatus describes review state of an order surcharge request.
type UpdateRequestStatus string

const (
	UpdateRequestStatusPending  UpdateRequestStatus = "PENDING"
	UpdateRequestStatusAccepted UpdateRequestStatus = "ACCEPTED"
	UpdateRequestStatusRejected UpdateRequestStatus = "REJECTED"
)

// UpdateRequest is a shop-proposed surcharge on an open order. Accepting
// it raises the order amount; pending requests past a configured age are
// rejected by the background sweep.
type UpdateRequest struct {
	ID        int64
	OrderID   int64
	Amount    decimal.Decimal
	Note      string
	Status    UpdateRequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
