package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// UpdateRequestUseCase manages order surcharge requests: shops propose a
// price adjustment, the buyer accepts or rejects it, and a background
// sweep rejects requests left pending too long. Accepting raises the
// order amount in the same transaction that settles the request.
type UpdateRequestUseCase struct {
	shops    repository.ShopRepository
	orders   repository.OrderRepository
	requests repository.UpdateRequestRepository
	tx       repository.TxManager
}

// NewUpdateRequestUseCase constructs UpdateRequestUseCase.
func NewUpdateRequestUseCase(
	shops repository.ShopRepository,
	orders repository.OrderRepository,
	requests repository.UpdateRequestRepository,
	tx repository.TxManager,
) *UpdateRequestUseCase {
	return &UpdateRequestUseCase{shops: shops, orders: orders, requests: requests, tx: tx}
}

// Create files a surcharge request against an open order owned by the
// caller's shop.
func (u *UpdateRequestUseCase) Create(ctx context.Context, shopUserID, orderID int64, amount decimal.Decimal, note string) (*model.UpdateRequest, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	shop, err := u.shops.GetByOwner(ctx, shopUserID)
	if err != nil {
		return nil, err
	}
	if _, err := u.orders.GetOpenByShop(ctx, shop.ID, orderID); err != nil {
		return nil, err
	}
	return u.requests.Create(ctx, &model.UpdateRequest{
		OrderID: orderID,
		Amount:  amount,
		Note:    note,
		Status:  model.UpdateRequestStatusPending,
	})
}

// Accept lets the buyer approve a pending surcharge, raising the order
// amount atomically with the status flip.
func (u *UpdateRequestUseCase) Accept(ctx context.Context, userID, requestID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := u.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.UpdateRequestStatusPending {
			return domainErrors.ErrInvalidState
		}

		order, err := u.orders.GetForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotFound
		}
		if order.Status.Terminal() {
			return domainErrors.ErrInvalidState
		}

		if err := u.orders.AddAmount(ctx, order.ID, req.Amount); err != nil {
			return err
		}
		return u.requests.UpdateStatus(ctx, req.ID, model.UpdateRequestStatusAccepted)
	})
}

// Reject declines a pending surcharge request.
func (u *UpdateRequestUseCase) Reject(ctx context.Context, userID, requestID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := u.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.UpdateRequestStatusPending {
			return domainErrors.ErrInvalidState
		}
		order, err := u.orders.GetByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrNotFound
		}
		return u.requests.UpdateStatus(ctx, req.ID, model.UpdateRequestStatusRejected)
	})
}

// SelectStale returns pending requests created before now minus maxAge.
func (u *UpdateRequestUseCase) SelectStale(ctx context.Context, maxAge time.Duration, limit int) ([]model.UpdateRequest, error) {
	return u.requests.ListStalePending(ctx, time.Now().Add(-maxAge), limit)
}

// RejectStale settles one stale request through the same transition the
// interactive reject uses.
func (u *UpdateRequestUseCase) RejectStale(ctx context.Context, requestID int64) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := u.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != model.UpdateRequestStatusPending {
			return domainErrors.ErrInvalidState
		}
		return u.requests.UpdateStatus(ctx, req.ID, model.UpdateRequestStatusRejected)
	})
}
