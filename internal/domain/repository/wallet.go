package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// WalletRepository manages wallet balances. Balances are adjusted only
// inside a transaction that also appends the matching ledger entry.
type WalletRepository interface {
	Create(ctx context.Context, ownerID int64) (*model.Wallet, error)
	GetByOwner(ctx context.Context, ownerID int64) (*model.Wallet, error)
	GetByID(ctx context.Context, id int64) (*model.Wallet, error)
	// GetByOwnerForUpdate locks the wallet row for the duration of the
	// surrounding transaction, serializing concurrent balance movements.
	GetByOwnerForUpdate(ctx context.Context, ownerID int64) (*model.Wallet, error)
	GetForUpdate(ctx context.Context, id int64) (*model.Wallet, error)
	// AdjustBalances applies signed deltas to the available and locked
	// balances. Fails if either balance would go negative.
	AdjustBalances(ctx context.Context, id int64, availableDelta, lockedDelta decimal.Decimal) error
}
