package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/usecase"
)

// FulfillmentFacadeStub provides controllable behaviour for progression endpoints.
type FulfillmentFacadeStub struct {
	CompleteTaskFn    func(context.Context, int64, int64, int64) error
	CreateMilestoneFn func(context.Context, int64, usecase.CreateMilestoneInput) (*model.Milestone, error)
	UpdateMilestoneFn func(context.Context, int64, int64, usecase.UpdateMilestoneInput) (*model.Milestone, error)
	AcceptOrderFn     func(context.Context, int64, int64) error
	CancelOrderFn     func(context.Context, int64, int64) error
	MilestonesFn      func(context.Context, int64) ([]model.Milestone, error)
	TasksFn           func(context.Context, int64) ([]model.Task, error)
}

// CompleteTask delegates to override or succeeds.
func (s FulfillmentFacadeStub) CompleteTask(ctx context.Context, shopUserID, milestoneID, taskID int64) error {
	if s.CompleteTaskFn != nil {
		return s.CompleteTaskFn(ctx, shopUserID, milestoneID, taskID)
	}
	return nil
}

// CreateMilestone delegates to override or returns a default milestone.
func (s FulfillmentFacadeStub) CreateMilestone(ctx context.Context, shopUserID int64, input usecase.CreateMilestoneInput) (*model.Milestone, error) {
	if s.CreateMilestoneFn != nil {
		return s.CreateMilestoneFn(ctx, shopUserID, input)
	}
	return &model.Milestone{ID: 1, OrderID: input.OrderID, Index: 1, Title: input.Title, Status: model.ProgressStatusInProgress}, nil
}

// UpdateMilestone delegates to override or echoes the change.
func (s FulfillmentFacadeStub) UpdateMilestone(ctx context.Context, actorID, milestoneID int64, input usecase.UpdateMilestoneInput) (*model.Milestone, error) {
	if s.UpdateMilestoneFn != nil {
		return s.UpdateMilestoneFn(ctx, actorID, milestoneID, input)
	}
	return &model.Milestone{ID: milestoneID, Title: input.Title, Status: model.ProgressStatusCompleted, DueDate: input.DueDate}, nil
}

// AcceptOrder delegates to override or succeeds.
func (s FulfillmentFacadeStub) AcceptOrder(ctx context.Context, shopUserID, orderID int64) error {
	if s.AcceptOrderFn != nil {
		return s.AcceptOrderFn(ctx, shopUserID, orderID)
	}
	return nil
}

// CancelOrder delegates to override or succeeds.
func (s FulfillmentFacadeStub) CancelOrder(ctx context.Context, actorID, orderID int64) error {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, actorID, orderID)
	}
	return nil
}

// Milestones returns configured milestones for the order.
func (s FulfillmentFacadeStub) Milestones(ctx context.Context, orderID int64) ([]model.Milestone, error) {
	if s.MilestonesFn != nil {
		return s.MilestonesFn(ctx, orderID)
	}
	return []model.Milestone{{ID: 1, OrderID: orderID, Index: 1, Status: model.ProgressStatusInProgress}}, nil
}

// Tasks returns configured tasks for the milestone.
func (s FulfillmentFacadeStub) Tasks(ctx context.Context, milestoneID int64) ([]model.Task, error) {
	if s.TasksFn != nil {
		return s.TasksFn(ctx, milestoneID)
	}
	return []model.Task{{ID: 1, MilestoneID: milestoneID, Index: 1, Status: model.ProgressStatusInProgress}}, nil
}

// WalletFacadeStub simulates wallet operations.
type WalletFacadeStub struct {
	BalanceFn           func(context.Context, int64) (*model.Wallet, error)
	HistoryFn           func(context.Context, int64) ([]model.Transaction, error)
	DepositFn           func(context.Context, int64, decimal.Decimal, string) (*model.Transaction, error)
	ConfirmDepositFn    func(context.Context, int64) error
	RequestWithdrawalFn func(context.Context, int64, decimal.Decimal, string, string) (*model.Transaction, error)
	ApproveWithdrawalFn func(context.Context, int64) error
	CancelWithdrawalFn  func(context.Context, int64) error
	PayOrderFn          func(context.Context, int64, int64) (*model.Transaction, error)
}

// Balance returns configured wallet or an empty one.
func (s WalletFacadeStub) Balance(ctx context.Context, userID int64) (*model.Wallet, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.Wallet{ID: 1, OwnerID: userID, Available: decimal.NewFromInt(10), Locked: decimal.Zero}, nil
}

// History returns configured ledger entries.
func (s WalletFacadeStub) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.Transaction{{ID: 1, WalletID: 1, Amount: decimal.NewFromInt(5), Type: model.TransactionTypeDeposit, Status: model.TransactionStatusCompleted, CreatedAt: time.Unix(0, 0)}}, nil
}

// Deposit delegates to override or returns a pending entry.
func (s WalletFacadeStub) Deposit(ctx context.Context, userID int64, amount decimal.Decimal, note string) (*model.Transaction, error) {
	if s.DepositFn != nil {
		return s.DepositFn(ctx, userID, amount, note)
	}
	return &model.Transaction{ID: 1, Amount: amount, Type: model.TransactionTypeDeposit, Status: model.TransactionStatusPending, Note: note}, nil
}

// ConfirmDeposit delegates to override or succeeds.
func (s WalletFacadeStub) ConfirmDeposit(ctx context.Context, transactionID int64) error {
	if s.ConfirmDepositFn != nil {
		return s.ConfirmDepositFn(ctx, transactionID)
	}
	return nil
}

// RequestWithdrawal delegates to override or returns a pending entry.
func (s WalletFacadeStub) RequestWithdrawal(ctx context.Context, userID int64, amount decimal.Decimal, note, otp string) (*model.Transaction, error) {
	if s.RequestWithdrawalFn != nil {
		return s.RequestWithdrawalFn(ctx, userID, amount, note, otp)
	}
	return &model.Transaction{ID: 1, Amount: amount, Type: model.TransactionTypeWithdraw, Status: model.TransactionStatusPending, Note: note}, nil
}

// ApproveWithdrawal delegates to override or succeeds.
func (s WalletFacadeStub) ApproveWithdrawal(ctx context.Context, transactionID int64) error {
	if s.ApproveWithdrawalFn != nil {
		return s.ApproveWithdrawalFn(ctx, transactionID)
	}
	return nil
}

// CancelWithdrawal delegates to override or succeeds.
func (s WalletFacadeStub) CancelWithdrawal(ctx context.Context, transactionID int64) error {
	if s.CancelWithdrawalFn != nil {
		return s.CancelWithdrawalFn(ctx, transactionID)
	}
	return nil
}

// PayOrder delegates to override or returns a completed payment entry.
func (s WalletFacadeStub) PayOrder(ctx context.Context, userID, orderID int64) (*model.Transaction, error) {
	if s.PayOrderFn != nil {
		return s.PayOrderFn(ctx, userID, orderID)
	}
	return &model.Transaction{ID: 1, OrderID: &orderID, Type: model.TransactionTypePayment, Status: model.TransactionStatusCompleted}, nil
}

// MembershipFacadeStub simulates subscription operations.
type MembershipFacadeStub struct {
	PurchaseFn      func(context.Context, int64, int64, bool) (*model.Membership, error)
	CancelFn        func(context.Context, int64) error
	SubscriptionsFn func(context.Context) ([]model.Subscription, error)
}

// PurchaseMembership delegates to override or returns an active grant.
func (s MembershipFacadeStub) PurchaseMembership(ctx context.Context, userID, subscriptionID int64, force bool) (*model.Membership, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, userID, subscriptionID, force)
	}
	return &model.Membership{ID: 1, ShopID: 1, SubscriptionID: subscriptionID, Status: model.MembershipStatusActive}, nil
}

// CancelMembership delegates to override or succeeds.
func (s MembershipFacadeStub) CancelMembership(ctx context.Context, userID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID)
	}
	return nil
}

// Subscriptions returns configured tiers.
func (s MembershipFacadeStub) Subscriptions(ctx context.Context) ([]model.Subscription, error) {
	if s.SubscriptionsFn != nil {
		return s.SubscriptionsFn(ctx)
	}
	return []model.Subscription{{ID: 1, Name: "basic", Amount: decimal.NewFromInt(10), Duration: 30}}, nil
}

// UpdateRequestFacadeStub simulates surcharge operations.
type UpdateRequestFacadeStub struct {
	CreateFn func(context.Context, int64, int64, decimal.Decimal, string) (*model.UpdateRequest, error)
	AcceptFn func(context.Context, int64, int64) error
	RejectFn func(context.Context, int64, int64) error
}

// CreateUpdateRequest delegates to override or returns a pending request.
func (s UpdateRequestFacadeStub) CreateUpdateRequest(ctx context.Context, shopUserID, orderID int64, amount decimal.Decimal, note string) (*model.UpdateRequest, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, shopUserID, orderID, amount, note)
	}
	return &model.UpdateRequest{ID: 1, OrderID: orderID, Amount: amount, Note: note, Status: model.UpdateRequestStatusPending}, nil
}

// AcceptUpdateRequest delegates to override or succeeds.
func (s UpdateRequestFacadeStub) AcceptUpdateRequest(ctx context.Context, userID, requestID int64) error {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, userID, requestID)
	}
	return nil
}

// RejectUpdateRequest delegates to override or succeeds.
func (s UpdateRequestFacadeStub) RejectUpdateRequest(ctx context.Context, userID, requestID int64) error {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, userID, requestID)
	}
	return nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	FulfillmentFacadeStub
	WalletFacadeStub
	MembershipFacadeStub
	UpdateRequestFacadeStub
}

// RequestFacadeStub mimics sweeper interactions with the application facade.
type RequestFacadeStub struct {
	Batches   [][]model.UpdateRequest
	StaleFn   func(context.Context, time.Duration, int) ([]model.UpdateRequest, error)
	RejectFn  func(context.Context, int64) error
	Rejected  []int64
	mu        sync.Mutex
	callCount int
}

// Lock exposes internal mutex for external synchronization.
func (s *RequestFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *RequestFacadeStub) Unlock() { s.mu.Unlock() }

// StaleUpdateRequests returns batches from the configured queue.
func (s *RequestFacadeStub) StaleUpdateRequests(ctx context.Context, maxAge time.Duration, limit int) ([]model.UpdateRequest, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, maxAge, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callCount < len(s.Batches) {
		batch := s.Batches[s.callCount]
		s.callCount++
		return batch, nil
	}
	return nil, nil
}

// RejectStaleUpdateRequest records rejected identifiers.
func (s *RequestFacadeStub) RejectStaleUpdateRequest(ctx context.Context, requestID int64) error {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, requestID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Rejected = append(s.Rejected, requestID)
	return nil
}

// VerifierStub simulates the one-time code verification service.
type VerifierStub struct {
	VerifyFn func(context.Context, int64, string) error
	Err      error
	Calls    []string
}

// Verify records the code and returns the configured result.
func (s *VerifierStub) Verify(ctx context.Context, userID int64, code string) error {
	s.Calls = append(s.Calls, code)
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, userID, code)
	}
	return s.Err
}
