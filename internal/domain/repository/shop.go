package repository

import (
	"context"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// ShopRepository resolves seller profiles.
type ShopRepository interface {
	Create(ctx context.Context, ownerID int64, name string) (*model.Shop, error)
	GetByOwner(ctx context.Context, ownerID int64) (*model.Shop, error)
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
}
