package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	testhelpers "github.com/veilmart/veilmart/internal/test"
	"github.com/veilmart/veilmart/internal/usecase"
)

type requestFixture struct {
	shops    *testhelpers.ShopRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	requests *testhelpers.UpdateRequestRepositoryStub
	tx       *testhelpers.TxManagerStub
	uc       *usecase.UpdateRequestUseCase

	shop  *model.Shop
	order *model.Order
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	f := &requestFixture{
		shops:    testhelpers.NewShopRepositoryStub(),
		orders:   testhelpers.NewOrderRepositoryStub(),
		requests: testhelpers.NewUpdateRequestRepositoryStub(),
		tx:       &testhelpers.TxManagerStub{},
	}
	f.uc = usecase.NewUpdateRequestUseCase(f.shops, f.orders, f.requests, f.tx)

	shop, err := f.shops.Create(context.Background(), 1, "atelier")
	if err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	f.shop = shop
	f.order = f.orders.Add(model.Order{ShopID: shop.ID, UserID: 100, Status: model.OrderStatusInProcess, Amount: decimal.NewFromInt(200)})
	return f
}

func TestCreateUpdateRequest(t *testing.T) {
	f := newRequestFixture(t)

	req, err := f.uc.Create(context.Background(), 1, f.order.ID, decimal.NewFromInt(25), "extra lace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != model.UpdateRequestStatusPending {
		t.Fatalf("expected pending request, got %s", req.Status)
	}
	if !f.orders.Orders[f.order.ID].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("creating a request must not change the order amount")
	}
}

func TestCreateUpdateRequestRejectsClosedOrder(t *testing.T) {
	f := newRequestFixture(t)
	closed := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: 100, Status: model.OrderStatusCompleted})

	if _, err := f.uc.Create(context.Background(), 1, closed.ID, decimal.NewFromInt(25), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for closed order, got %v", err)
	}
}

func TestCreateUpdateRequestRejectsNonPositiveAmount(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.uc.Create(context.Background(), 1, f.order.ID, decimal.Zero, ""); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestAcceptRaisesOrderAmount(t *testing.T) {
	f := newRequestFixture(t)
	req := f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(25), Status: model.UpdateRequestStatusPending})

	if err := f.uc.Accept(context.Background(), 100, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.orders.Orders[f.order.ID].Amount.Equal(decimal.NewFromInt(225)) {
		t.Fatalf("expected order amount 225, got %s", f.orders.Orders[f.order.ID].Amount)
	}
	if f.requests.Requests[req.ID].Status != model.UpdateRequestStatusAccepted {
		t.Fatalf("expected accepted request")
	}

	// A settled request cannot be accepted again.
	if err := f.uc.Accept(context.Background(), 100, req.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state on repeat accept, got %v", err)
	}
	if !f.orders.Orders[f.order.ID].Amount.Equal(decimal.NewFromInt(225)) {
		t.Fatalf("repeat accept must not raise the amount again")
	}
}

func TestAcceptRejectsForeignBuyer(t *testing.T) {
	f := newRequestFixture(t)
	req := f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(25), Status: model.UpdateRequestStatusPending})

	if err := f.uc.Accept(context.Background(), 999, req.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign buyer, got %v", err)
	}
}

func TestAcceptRejectsTerminalOrder(t *testing.T) {
	f := newRequestFixture(t)
	closed := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: 100, Status: model.OrderStatusCancelled})
	req := f.requests.Add(model.UpdateRequest{OrderID: closed.ID, Amount: decimal.NewFromInt(25), Status: model.UpdateRequestStatusPending})

	if err := f.uc.Accept(context.Background(), 100, req.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestRejectSettlesWithoutAmountChange(t *testing.T) {
	f := newRequestFixture(t)
	req := f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(25), Status: model.UpdateRequestStatusPending})

	if err := f.uc.Reject(context.Background(), 100, req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.requests.Requests[req.ID].Status != model.UpdateRequestStatusRejected {
		t.Fatalf("expected rejected request")
	}
	if !f.orders.Orders[f.order.ID].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("reject must not change the amount")
	}
}

func TestSelectStaleHonorsCutoff(t *testing.T) {
	f := newRequestFixture(t)
	old := f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(1), Status: model.UpdateRequestStatusPending, CreatedAt: time.Now().Add(-96 * time.Hour)})
	f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(2), Status: model.UpdateRequestStatusPending, CreatedAt: time.Now()})
	f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(3), Status: model.UpdateRequestStatusRejected, CreatedAt: time.Now().Add(-96 * time.Hour)})

	stale, err := f.uc.SelectStale(context.Background(), 72*time.Hour, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != old.ID {
		t.Fatalf("expected only the old pending request, got %v", stale)
	}
}

func TestRejectStaleUsesRejectTransition(t *testing.T) {
	f := newRequestFixture(t)
	req := f.requests.Add(model.UpdateRequest{OrderID: f.order.ID, Amount: decimal.NewFromInt(25), Status: model.UpdateRequestStatusPending})

	if err := f.uc.RejectStale(context.Background(), req.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.requests.Requests[req.ID].Status != model.UpdateRequestStatusRejected {
		t.Fatalf("expected rejected request")
	}

	if err := f.uc.RejectStale(context.Background(), req.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("settled request must not transition again, got %v", err)
	}
}
