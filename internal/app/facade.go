package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/usecase"
)

// MarketFacade aggregates the application use cases behind one surface
// consumed by HTTP handlers and the background sweeper.
type MarketFacade struct {
	auth        *usecase.AuthUseCase
	fulfillment *usecase.FulfillmentUseCase
	wallet      *usecase.WalletUseCase
	membership  *usecase.MembershipUseCase
	requests    *usecase.UpdateRequestUseCase
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	auth *usecase.AuthUseCase,
	fulfillment *usecase.FulfillmentUseCase,
	wallet *usecase.WalletUseCase,
	membership *usecase.MembershipUseCase,
	requests *usecase.UpdateRequestUseCase,
) *MarketFacade {
	return &MarketFacade{auth: auth, fulfillment: fulfillment, wallet: wallet, membership: membership, requests: requests}
}

func (f *MarketFacade) Register(ctx context.Context, login, password string, role model.Role, shopName string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role, shopName)
	return token, err
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *MarketFacade) CompleteTask(ctx context.Context, shopUserID, milestoneID, taskID int64) error {
	return f.fulfillment.CompleteTask(ctx, shopUserID, milestoneID, taskID)
}

func (f *MarketFacade) CreateMilestone(ctx context.Context, shopUserID int64, input usecase.CreateMilestoneInput) (*model.Milestone, error) {
	return f.fulfillment.CreateMilestone(ctx, shopUserID, input)
}

func (f *MarketFacade) UpdateMilestone(ctx context.Context, actorID, milestoneID int64, input usecase.UpdateMilestoneInput) (*model.Milestone, error) {
	return f.fulfillment.UpdateMilestone(ctx, actorID, milestoneID, input)
}

func (f *MarketFacade) AcceptOrder(ctx context.Context, shopUserID, orderID int64) error {
	return f.fulfillment.AcceptOrder(ctx, shopUserID, orderID)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, actorID, orderID int64) error {
	return f.fulfillment.CancelOrder(ctx, actorID, orderID)
}

func (f *MarketFacade) Milestones(ctx context.Context, orderID int64) ([]model.Milestone, error) {
	return f.fulfillment.Milestones(ctx, orderID)
}

func (f *MarketFacade) Tasks(ctx context.Context, milestoneID int64) ([]model.Task, error) {
	return f.fulfillment.Tasks(ctx, milestoneID)
}

func (f *MarketFacade) Balance(ctx context.Context, userID int64) (*model.Wallet, error) {
	return f.wallet.Balance(ctx, userID)
}

func (f *MarketFacade) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return f.wallet.History(ctx, userID)
}

func (f *MarketFacade) Deposit(ctx context.Context, userID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	return f.wallet.Deposit(ctx, userID, amount, note)
}

func (f *MarketFacade) ConfirmDeposit(ctx context.Context, transactionID int64) error {
	return f.wallet.ConfirmDeposit(ctx, transactionID)
}

func (f *MarketFacade) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal, note, otp string) (*model.Transaction, error) {
	return f.wallet.RequestWithdrawal(ctx, userID, amount, note, otp)
}

func (f *MarketFacade) ApproveWithdrawal(ctx context.Context, transactionID int64) error {
	return f.wallet.ApproveWithdrawal(ctx, transactionID)
}

func (f *MarketFacade) CancelWithdrawal(ctx context.Context, transactionID int64) error {
	return f.wallet.CancelWithdrawal(ctx, transactionID)
}

func (f *MarketFacade) PayOrder(ctx context.Context, userID, orderID int64) (*model.Transaction, error) {
	return f.wallet.PayOrder(ctx, userID, orderID)
}

func (f *MarketFacade) PurchaseMembership(ctx context.Context, userID, subscriptionID int64, force bool) (*model.Membership, error) {
	return f.membership.Purchase(ctx, userID, subscriptionID, force)
}

func (f *MarketFacade) CancelMembership(ctx context.Context, userID int64) error {
	return f.membership.Cancel(ctx, userID)
}

func (f *MarketFacade) Subscriptions(ctx context.Context) ([]model.Subscription, error) {
	return f.membership.Subscriptions(ctx)
}

func (f *MarketFacade) CreateUpdateRequest(ctx context.Context, shopUserID, orderID int64, amount decimal.Decimal, note string) (*model.UpdateRequest, error) {
	return f.requests.Create(ctx, shopUserID, orderID, amount, note)
}

func (f *MarketFacade) AcceptUpdateRequest(ctx context.Context, userID, requestID int64) error {
	return f.requests.Accept(ctx, userID, requestID)
}

func (f *MarketFacade) RejectUpdateRequest(ctx context.Context, userID, requestID int64) error {
	return f.requests.Reject(ctx, userID, requestID)
}

func (f *MarketFacade) StaleUpdateRequests(ctx context.Context, maxAge time.Duration, limit int) ([]model.UpdateRequest, error) {
	return f.requests.SelectStale(ctx, maxAge, limit)
}

func (f *MarketFacade) RejectStaleUpdateRequest(ctx context.Context, requestID int64) error {
	return f.requests.RejectStale(ctx, requestID)
}
