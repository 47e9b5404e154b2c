package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypePayment  TransactionType = "PAYMENT"
	TransactionTypeRefund   TransactionType = "REFUND"
	TransactionTypeOther    TransactionType = "OTHER"
)

// TransactionStatus describes settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
	TransactionStatusDisputed  TransactionStatus = "DISPUTED"
)

// Transaction is an append-only ledger entry describing a single balance
// movement. COMPLETED and CANCELLED entries are terminal; the only allowed
// transition is the withdrawal review from PENDING to COMPLETED or CANCELLED.
type Transaction struct {
	ID           int64
	WalletID     int64
	OrderID      *int64
	MembershipID *int64
	From         string
	To           string
	FromBalance  BalanceType
	ToBalance    BalanceType
	Amount       decimal.Decimal
	Type         TransactionType
	Status       TransactionStatus
	Note         string
	CreatedAt    time.Time
}
