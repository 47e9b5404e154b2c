package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUpdateRequestRequest describes an order surcharge proposal.
type CreateUpdateRequestRequest struct {
	OrderID int64           `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
}

// UpdateRequestResponse describes a surcharge request.
type UpdateRequestResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
