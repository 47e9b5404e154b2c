package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse represents the two wallet balances.
type BalanceResponse struct {
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
}

// DepositRequest describes a wallet top-up payload.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// WithdrawRequest describes a withdrawal request payload.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
	OTP    string          `json:"otp"`
}

// TransactionResponse describes a ledger entry.
type TransactionResponse struct {
	ID           int64           `json:"id"`
	OrderID      *int64          `json:"order_id,omitempty"`
	MembershipID *int64          `json:"membership_id,omitempty"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	FromBalance  string          `json:"from_balance"`
	ToBalance    string          `json:"to_balance"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
