package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceType identifies which side of the wallet a movement touches.
type BalanceType string

const (
	BalanceTypeAvailable BalanceType = "AVAILABLE"
	BalanceTypeLocked    BalanceType = "LOCKED"
)

// Wallet holds funds for a single account. Available funds are free to
// spend or withdraw; locked funds are committed to in-flight orders or
// memberships. Both balances stay non-negative and change only together
// with a ledger transaction.
type Wallet struct {
	ID        int64
	OwnerID   int64
	Available decimal.Decimal
	Locked    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
