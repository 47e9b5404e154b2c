package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// MembershipUseCase reconciles subscription purchases against a shop's
// current tier: downgrades and duplicate tiers are refused, upgrades over
// a cheaper active plan require explicit confirmation, and the paid
// replacement deactivates the old grant. Debit, ledger entry and the new
// membership commit as one transaction.
type MembershipUseCase struct {
	shops         repository.ShopRepository
	subscriptions repository.SubscriptionRepository
	memberships   repository.MembershipRepository
	wallets       repository.WalletRepository
	transactions  repository.TransactionRepository
	tx            repository.TxManager
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(
	shops repository.ShopRepository,
	subscriptions repository.SubscriptionRepository,
	memberships repository.MembershipRepository,
	wallets repository.WalletRepository,
	transactions repository.TransactionRepository,
	tx repository.TxManager,
) *MembershipUseCase {
	return &MembershipUseCase{
		shops:         shops,
		subscriptions: subscriptions,
		memberships:   memberships,
		wallets:       wallets,
		transactions:  transactions,
		tx:            tx,
	}
}

// Purchase buys the subscription tier for the caller's shop. With an
// active membership in place the outcome depends on the price relation:
// pricier active tier refuses outright, the same price refuses as a
// duplicate, a cheaper active tier requires force to be replaced.
func (u *MembershipUseCase) Purchase(ctx context.Context, userID, subscriptionID int64, force bool) (*model.Membership, error) {
	shop, err := u.shops.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub, err := u.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	var created *model.Membership
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.memberships.GetActiveByShop(ctx, shop.ID)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return err
		}

		now := time.Now()
		if existing != nil {
			current, err := u.subscriptions.GetByID(ctx, existing.SubscriptionID)
			if err != nil {
				return err
			}
			switch current.Amount.Cmp(sub.Amount) {
			case 1, 0:
				return domainErrors.ErrInvalidOperation
			default:
				if !force {
					return domainErrors.ErrConfirmationRequired
				}
				if err := u.memberships.Deactivate(ctx, existing.ID, now); err != nil {
					return err
				}
			}
		}

		wallet, err := u.wallets.GetByOwnerForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if wallet.Available.LessThan(sub.Amount) {
			return domainErrors.ErrInsufficientFunds
		}

		created, err = u.memberships.Create(ctx, &model.Membership{
			ShopID:         shop.ID,
			SubscriptionID: sub.ID,
			StartDate:      now,
			EndDate:        now.AddDate(0, 0, sub.Duration),
			Status:         model.MembershipStatusActive,
		})
		if err != nil {
			return err
		}

		if err := u.wallets.AdjustBalances(ctx, wallet.ID, sub.Amount.Neg(), sub.Amount); err != nil {
			return err
		}
		_, err = u.transactions.Create(ctx, &model.Transaction{
			WalletID:     wallet.ID,
			MembershipID: &created.ID,
			From:         LabelWallet,
			To:           LabelPlatform,
			FromBalance:  model.BalanceTypeAvailable,
			ToBalance:    model.BalanceTypeLocked,
			Amount:       sub.Amount,
			Type:         model.TransactionTypeTransfer,
			Status:       model.TransactionStatusCompleted,
			Note:         "membership purchase: " + sub.Name,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel deactivates the shop's active membership. No refund is issued.
func (u *MembershipUseCase) Cancel(ctx context.Context, userID int64) error {
	shop, err := u.shops.GetByOwner(ctx, userID)
	if err != nil {
		return err
	}
	existing, err := u.memberships.GetActiveByShop(ctx, shop.ID)
	if err != nil {
		return err
	}
	return u.memberships.Deactivate(ctx, existing.ID, time.Now())
}

// Subscriptions lists the purchasable tiers, cheapest first.
func (u *MembershipUseCase) Subscriptions(ctx context.Context) ([]model.Subscription, error) {
	return u.subscriptions.List(ctx)
}
