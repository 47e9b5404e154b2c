package repository

import "context"

// TxManager runs a function inside a single storage transaction. Repository
// calls made with the context passed to fn join that transaction, so a
// multi-entity mutation commits or rolls back as one unit.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
