package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, shopID, userID int64, amount decimal.Decimal) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetForUpdate locks the order row for the duration of the surrounding
	// transaction, serializing concurrent progression cascades per order.
	GetForUpdate(ctx context.Context, id int64) (*model.Order, error)
	// GetOpenByShop returns the order only when it belongs to the shop and
	// is still PENDING or IN_PROCESS.
	GetOpenByShop(ctx context.Context, shopID, orderID int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	AddAmount(ctx context.Context, id int64, delta decimal.Decimal) error
}
