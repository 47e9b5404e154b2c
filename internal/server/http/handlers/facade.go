package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role, shopName string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	User(ctx context.Context, id int64) (*model.User, error)
}

// FulfillmentFacade encapsulates order progression operations exposed via HTTP.
type FulfillmentFacade interface {
	CompleteTask(ctx context.Context, shopUserID, milestoneID, taskID int64) error
	CreateMilestone(ctx context.Context, shopUserID int64, input usecase.CreateMilestoneInput) (*model.Milestone, error)
	UpdateMilestone(ctx context.Context, actorID, milestoneID int64, input usecase.UpdateMilestoneInput) (*model.Milestone, error)
	AcceptOrder(ctx context.Context, shopUserID, orderID int64) error
	CancelOrder(ctx context.Context, actorID, orderID int64) error
	Milestones(ctx context.Context, orderID int64) ([]model.Milestone, error)
	Tasks(ctx context.Context, milestoneID int64) ([]model.Task, error)
}

// WalletFacade provides wallet and ledger operations.
type WalletFacade interface {
	Balance(ctx context.Context, userID int64) (*model.Wallet, error)
	History(ctx context.Context, userID int64) ([]model.Transaction, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal, note string) (*model.Transaction, error)
	ConfirmDeposit(ctx context.Context, transactionID int64) error
	RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal, note, otp string) (*model.Transaction, error)
	ApproveWithdrawal(ctx context.Context, transactionID int64) error
	CancelWithdrawal(ctx context.Context, transactionID int64) error
	PayOrder(ctx context.Context, userID, orderID int64) (*model.Transaction, error)
}

// MembershipFacade provides subscription purchase operations.
type MembershipFacade interface {
	PurchaseMembership(ctx context.Context, userID, subscriptionID int64, force bool) (*model.Membership, error)
	CancelMembership(ctx context.Context, userID int64) error
	Subscriptions(ctx context.Context) ([]model.Subscription, error)
}

// UpdateRequestFacade provides order surcharge operations.
type UpdateRequestFacade interface {
	CreateUpdateRequest(ctx context.Context, shopUserID, orderID int64, amount decimal.Decimal, note string) (*model.UpdateRequest, error)
	AcceptUpdateRequest(ctx context.Context, userID, requestID int64) error
	RejectUpdateRequest(ctx context.Context, userID, requestID int64) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	FulfillmentFacade
	WalletFacade
	MembershipFacade
	UpdateRequestFacade
}
