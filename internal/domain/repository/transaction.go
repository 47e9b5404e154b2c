package repository

import (
	"context"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// TransactionRepository provides access to the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error)
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	// GetForUpdate locks the ledger row so a pending entry is settled at
	// most once under concurrent review calls.
	GetForUpdate(ctx context.Context, id int64) (*model.Transaction, error)
	// ListByWallet returns entries sorted by creation time, newest first.
	ListByWallet(ctx context.Context, walletID int64) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus) error
}
