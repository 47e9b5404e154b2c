package test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
)

// TxManagerStub executes the callback directly, without a real transaction.
type TxManagerStub struct {
	Err   error
	Calls int
}

// WithinTransaction invokes fn with the same context.
func (s *TxManagerStub) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	return fn(ctx)
}

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ShopRepositoryStub stores shops keyed by owner for tests.
type ShopRepositoryStub struct {
	Shops map[int64]*model.Shop
	Next  int64
	Err   error
}

// NewShopRepositoryStub constructs stub repository with initialized map.
func NewShopRepositoryStub() *ShopRepositoryStub {
	return &ShopRepositoryStub{Shops: make(map[int64]*model.Shop), Next: 1}
}

// Create registers a shop for the owner.
func (s *ShopRepositoryStub) Create(ctx context.Context, ownerID int64, name string) (*model.Shop, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Shops == nil {
		s.Shops = make(map[int64]*model.Shop)
	}
	if _, exists := s.Shops[ownerID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	shop := &model.Shop{ID: s.Next, OwnerID: ownerID, Name: name}
	s.Next++
	s.Shops[ownerID] = shop
	return shop, nil
}

// GetByOwner fetches shop owned by the user or returns not found.
func (s *ShopRepositoryStub) GetByOwner(ctx context.Context, ownerID int64) (*model.Shop, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if shop, ok := s.Shops[ownerID]; ok {
		return shop, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches shop by identifier or returns not found.
func (s *ShopRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, shop := range s.Shops {
		if shop.ID == id {
			return shop, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub stores orders in-memory with optional overrides.
type OrderRepositoryStub struct {
	Orders map[int64]*model.Order
	Next   int64

	GetForUpdateFn func(context.Context, int64) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error

	StatusCalls []OrderStatusCall
	LockedIDs   []int64
}

// OrderStatusCall records one UpdateStatus invocation.
type OrderStatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Add seeds an order and returns it.
func (s *OrderRepositoryStub) Add(order model.Order) *model.Order {
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if order.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		order.ID = s.Next
		s.Next++
	}
	stored := order
	s.Orders[order.ID] = &stored
	return &stored
}

// Create stores a new PENDING order.
func (s *OrderRepositoryStub) Create(ctx context.Context, shopID, userID int64, amount decimal.Decimal) (*model.Order, error) {
	return s.Add(model.Order{ShopID: shopID, UserID: userID, Status: model.OrderStatusPending, Amount: amount}), nil
}

// GetByID fetches stored order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetForUpdate records the lock request and returns the stored order.
func (s *OrderRepositoryStub) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetForUpdateFn != nil {
		return s.GetForUpdateFn(ctx, id)
	}
	s.LockedIDs = append(s.LockedIDs, id)
	return s.GetByID(ctx, id)
}

// GetOpenByShop returns the order when owned by the shop and still open.
func (s *OrderRepositoryStub) GetOpenByShop(ctx context.Context, shopID, orderID int64) (*model.Order, error) {
	order, ok := s.Orders[orderID]
	if !ok || order.ShopID != shopID || order.Status.Terminal() {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// UpdateStatus records the transition and applies it to stored state.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: id, Status: status})
	return nil
}

// AddAmount raises the stored order amount.
func (s *OrderRepositoryStub) AddAmount(ctx context.Context, id int64, delta decimal.Decimal) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Amount = order.Amount.Add(delta)
	return nil
}

// MilestoneRepositoryStub stores milestones in-memory.
type MilestoneRepositoryStub struct {
	Milestones map[int64]*model.Milestone
	Next       int64

	StatusCalls []MilestoneStatusCall
}

// MilestoneStatusCall records one UpdateStatus invocation.
type MilestoneStatusCall struct {
	MilestoneID int64
	Status      model.ProgressStatus
}

// NewMilestoneRepositoryStub constructs stub repository with initialized map.
func NewMilestoneRepositoryStub() *MilestoneRepositoryStub {
	return &MilestoneRepositoryStub{Milestones: make(map[int64]*model.Milestone), Next: 1}
}

// Add seeds a milestone and returns it.
func (s *MilestoneRepositoryStub) Add(m model.Milestone) *model.Milestone {
	if s.Milestones == nil {
		s.Milestones = make(map[int64]*model.Milestone)
	}
	if m.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		m.ID = s.Next
		s.Next++
	}
	stored := m
	s.Milestones[m.ID] = &stored
	return &stored
}

// Create stores the milestone assigning an identifier.
func (s *MilestoneRepositoryStub) Create(ctx context.Context, m *model.Milestone) (*model.Milestone, error) {
	return s.Add(*m), nil
}

// GetByID fetches stored milestone or returns not found.
func (s *MilestoneRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	if m, ok := s.Milestones[id]; ok {
		return m, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByOrder returns milestones of the order sorted by index.
func (s *MilestoneRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Milestone, error) {
	var result []model.Milestone
	for _, m := range s.Milestones {
		if m.OrderID == orderID {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result, nil
}

// CountByOrder returns number of stored milestones for the order.
func (s *MilestoneRepositoryStub) CountByOrder(ctx context.Context, orderID int64) (int, error) {
	count := 0
	for _, m := range s.Milestones {
		if m.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

// UpdateStatus records the transition and applies it to stored state.
func (s *MilestoneRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error {
	m, ok := s.Milestones[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	m.Status = status
	s.StatusCalls = append(s.StatusCalls, MilestoneStatusCall{MilestoneID: id, Status: status})
	return nil
}

// Update replaces stored milestone metadata.
func (s *MilestoneRepositoryStub) Update(ctx context.Context, m *model.Milestone) error {
	stored, ok := s.Milestones[m.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.Title = m.Title
	stored.DueDate = m.DueDate
	return nil
}

// TaskRepositoryStub stores tasks in-memory.
type TaskRepositoryStub struct {
	Tasks map[int64]*model.Task
	Next  int64

	StatusCalls []TaskStatusCall
}

// TaskStatusCall records one UpdateStatus invocation.
type TaskStatusCall struct {
	TaskID int64
	Status model.ProgressStatus
}

// NewTaskRepositoryStub constructs stub repository with initialized map.
func NewTaskRepositoryStub() *TaskRepositoryStub {
	return &TaskRepositoryStub{Tasks: make(map[int64]*model.Task), Next: 1}
}

// Add seeds a task and returns it.
func (s *TaskRepositoryStub) Add(t model.Task) *model.Task {
	if s.Tasks == nil {
		s.Tasks = make(map[int64]*model.Task)
	}
	if t.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		t.ID = s.Next
		s.Next++
	}
	stored := t
	s.Tasks[t.ID] = &stored
	return &stored
}

// Create stores the task assigning an identifier.
func (s *TaskRepositoryStub) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	return s.Add(*t), nil
}

// GetByID fetches stored task or returns not found.
func (s *TaskRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if t, ok := s.Tasks[id]; ok {
		return t, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByMilestone returns tasks of the milestone sorted by index.
func (s *TaskRepositoryStub) ListByMilestone(ctx context.Context, milestoneID int64) ([]model.Task, error) {
	var result []model.Task
	for _, t := range s.Tasks {
		if t.MilestoneID == milestoneID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result, nil
}

// CountByMilestone returns number of stored tasks for the milestone.
func (s *TaskRepositoryStub) CountByMilestone(ctx context.Context, milestoneID int64) (int, error) {
	count := 0
	for _, t := range s.Tasks {
		if t.MilestoneID == milestoneID {
			count++
		}
	}
	return count, nil
}

// UpdateStatus records the transition and applies it to stored state.
func (s *TaskRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error {
	t, ok := s.Tasks[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	t.Status = status
	s.StatusCalls = append(s.StatusCalls, TaskStatusCall{TaskID: id, Status: status})
	return nil
}

// WalletRepositoryStub stores wallets in-memory, enforcing non-negative
// balances the way the storage constraints do.
type WalletRepositoryStub struct {
	Wallets map[int64]*model.Wallet
	Next    int64

	AdjustErr error
	LockedIDs []int64
}

// NewWalletRepositoryStub constructs stub repository with initialized map.
func NewWalletRepositoryStub() *WalletRepositoryStub {
	return &WalletRepositoryStub{Wallets: make(map[int64]*model.Wallet), Next: 1}
}

// Add seeds a wallet and returns it.
func (s *WalletRepositoryStub) Add(w model.Wallet) *model.Wallet {
	if s.Wallets == nil {
		s.Wallets = make(map[int64]*model.Wallet)
	}
	if w.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		w.ID = s.Next
		s.Next++
	}
	stored := w
	s.Wallets[w.ID] = &stored
	return &stored
}

// Create stores an empty wallet for the owner.
func (s *WalletRepositoryStub) Create(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	return s.Add(model.Wallet{OwnerID: ownerID, Available: decimal.Zero, Locked: decimal.Zero}), nil
}

// GetByOwner fetches wallet by owner or returns not found.
func (s *WalletRepositoryStub) GetByOwner(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	for _, w := range s.Wallets {
		if w.OwnerID == ownerID {
			return w, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches wallet by identifier or returns not found.
func (s *WalletRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Wallet, error) {
	if w, ok := s.Wallets[id]; ok {
		return w, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOwnerForUpdate records the lock request and returns the wallet.
func (s *WalletRepositoryStub) GetByOwnerForUpdate(ctx context.Context, ownerID int64) (*model.Wallet, error) {
	w, err := s.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.LockedIDs = append(s.LockedIDs, w.ID)
	return w, nil
}

// GetForUpdate records the lock request and returns the wallet.
func (s *WalletRepositoryStub) GetForUpdate(ctx context.Context, id int64) (*model.Wallet, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.LockedIDs = append(s.LockedIDs, id)
	return w, nil
}

// AdjustBalances applies deltas, failing when a balance would go negative.
func (s *WalletRepositoryStub) AdjustBalances(ctx context.Context, id int64, availableDelta, lockedDelta decimal.Decimal) error {
	if s.AdjustErr != nil {
		return s.AdjustErr
	}
	w, ok := s.Wallets[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	available := w.Available.Add(availableDelta)
	locked := w.Locked.Add(lockedDelta)
	if available.IsNegative() || locked.IsNegative() {
		return domainErrors.ErrInsufficientFunds
	}
	w.Available = available
	w.Locked = locked
	return nil
}

// TransactionRepositoryStub stores ledger entries in-memory.
type TransactionRepositoryStub struct {
	Transactions map[int64]*model.Transaction
	Next         int64

	CreateErr   error
	StatusCalls []TransactionStatusCall
	LockedIDs   []int64
}

// TransactionStatusCall records one UpdateStatus invocation.
type TransactionStatusCall struct {
	TransactionID int64
	Status        model.TransactionStatus
}

// NewTransactionRepositoryStub constructs stub repository with initialized map.
func NewTransactionRepositoryStub() *TransactionRepositoryStub {
	return &TransactionRepositoryStub{Transactions: make(map[int64]*model.Transaction), Next: 1}
}

// Add seeds a ledger entry and returns it.
func (s *TransactionRepositoryStub) Add(t model.Transaction) *model.Transaction {
	if s.Transactions == nil {
		s.Transactions = make(map[int64]*model.Transaction)
	}
	if t.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		t.ID = s.Next
		s.Next++
	}
	stored := t
	s.Transactions[t.ID] = &stored
	return &stored
}

// Create appends the entry assigning an identifier.
func (s *TransactionRepositoryStub) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return s.Add(*t), nil
}

// GetByID fetches stored entry or returns not found.
func (s *TransactionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if t, ok := s.Transactions[id]; ok {
		return t, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetForUpdate records the lock request and returns the entry.
func (s *TransactionRepositoryStub) GetForUpdate(ctx context.Context, id int64) (*model.Transaction, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.LockedIDs = append(s.LockedIDs, id)
	return t, nil
}

// ListByWallet returns entries of the wallet, newest first.
func (s *TransactionRepositoryStub) ListByWallet(ctx context.Context, walletID int64) ([]model.Transaction, error) {
	var result []model.Transaction
	for _, t := range s.Transactions {
		if t.WalletID == walletID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// UpdateStatus records the transition and applies it to stored state.
func (s *TransactionRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.TransactionStatus) error {
	t, ok := s.Transactions[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	t.Status = status
	s.StatusCalls = append(s.StatusCalls, TransactionStatusCall{TransactionID: id, Status: status})
	return nil
}

// MembershipRepositoryStub stores memberships in-memory.
type MembershipRepositoryStub struct {
	Memberships map[int64]*model.Membership
	Next        int64

	Deactivated []int64
}

// NewMembershipRepositoryStub constructs stub repository with initialized map.
func NewMembershipRepositoryStub() *MembershipRepositoryStub {
	return &MembershipRepositoryStub{Memberships: make(map[int64]*model.Membership), Next: 1}
}

// Add seeds a membership and returns it.
func (s *MembershipRepositoryStub) Add(m model.Membership) *model.Membership {
	if s.Memberships == nil {
		s.Memberships = make(map[int64]*model.Membership)
	}
	if m.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		m.ID = s.Next
		s.Next++
	}
	stored := m
	s.Memberships[m.ID] = &stored
	return &stored
}

// Create stores the membership assigning an identifier.
func (s *MembershipRepositoryStub) Create(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	return s.Add(*m), nil
}

// GetActiveByShop returns the shop's ACTIVE membership or not found.
func (s *MembershipRepositoryStub) GetActiveByShop(ctx context.Context, shopID int64) (*model.Membership, error) {
	for _, m := range s.Memberships {
		if m.ShopID == shopID && m.Status == model.MembershipStatusActive {
			return m, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Deactivate marks the membership INACTIVE and records the call.
func (s *MembershipRepositoryStub) Deactivate(ctx context.Context, id int64, endDate time.Time) error {
	m, ok := s.Memberships[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	m.Status = model.MembershipStatusInactive
	m.EndDate = endDate
	s.Deactivated = append(s.Deactivated, id)
	return nil
}

// SubscriptionRepositoryStub serves priced tiers from a slice.
type SubscriptionRepositoryStub struct {
	Items []model.Subscription
}

// GetByID fetches subscription by identifier or returns not found.
func (s *SubscriptionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all configured tiers.
func (s *SubscriptionRepositoryStub) List(ctx context.Context) ([]model.Subscription, error) {
	return s.Items, nil
}

// UpdateRequestRepositoryStub stores surcharge requests in-memory.
type UpdateRequestRepositoryStub struct {
	Requests map[int64]*model.UpdateRequest
	Next     int64

	StatusCalls []UpdateRequestStatusCall
}

// UpdateRequestStatusCall records one UpdateStatus invocation.
type UpdateRequestStatusCall struct {
	RequestID int64
	Status    model.UpdateRequestStatus
}

// NewUpdateRequestRepositoryStub constructs stub repository with initialized map.
func NewUpdateRequestRepositoryStub() *UpdateRequestRepositoryStub {
	return &UpdateRequestRepositoryStub{Requests: make(map[int64]*model.UpdateRequest), Next: 1}
}

// Add seeds a request and returns it.
func (s *UpdateRequestRepositoryStub) Add(r model.UpdateRequest) *model.UpdateRequest {
	if s.Requests == nil {
		s.Requests = make(map[int64]*model.UpdateRequest)
	}
	if r.ID == 0 {
		if s.Next == 0 {
			s.Next = 1
		}
		r.ID = s.Next
		s.Next++
	}
	stored := r
	s.Requests[r.ID] = &stored
	return &stored
}

// Create stores the request assigning an identifier.
func (s *UpdateRequestRepositoryStub) Create(ctx context.Context, r *model.UpdateRequest) (*model.UpdateRequest, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return s.Add(*r), nil
}

// GetByID fetches stored request or returns not found.
func (s *UpdateRequestRepositoryStub) GetByID(ctx context.Context, id int64) (*model.UpdateRequest, error) {
	if r, ok := s.Requests[id]; ok {
		return r, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListStalePending returns PENDING requests older than the cutoff, oldest first.
func (s *UpdateRequestRepositoryStub) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.UpdateRequest, error) {
	var result []model.UpdateRequest
	for _, r := range s.Requests {
		if r.Status == model.UpdateRequestStatusPending && r.CreatedAt.Before(cutoff) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// UpdateStatus records the transition and applies it to stored state.
func (s *UpdateRequestRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.UpdateRequestStatus) error {
	r, ok := s.Requests[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	r.Status = status
	s.StatusCalls = append(s.StatusCalls, UpdateRequestStatusCall{RequestID: id, Status: status})
	return nil
}
