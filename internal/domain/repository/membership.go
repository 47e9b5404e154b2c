package repository

import (
	"context"
	"time"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// MembershipRepository manages shop subscription grants.
type MembershipRepository interface {
	Create(ctx context.Context, m *model.Membership) (*model.Membership, error)
	GetActiveByShop(ctx context.Context, shopID int64) (*model.Membership, error)
	Deactivate(ctx context.Context, id int64, endDate time.Time) error
}

// SubscriptionRepository provides read access to priced tiers.
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Subscription, error)
	List(ctx context.Context) ([]model.Subscription, error)
}
