package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	testhelpers "github.com/veilmart/veilmart/internal/test"
	"github.com/veilmart/veilmart/internal/usecase"
)

type fulfillmentFixture struct {
	users      *testhelpers.UserRepositoryStub
	shops      *testhelpers.ShopRepositoryStub
	orders     *testhelpers.OrderRepositoryStub
	milestones *testhelpers.MilestoneRepositoryStub
	tasks      *testhelpers.TaskRepositoryStub
	tx         *testhelpers.TxManagerStub
	uc         *usecase.FulfillmentUseCase

	owner *model.User
	shop  *model.Shop
	order *model.Order
}

func newFulfillmentFixture(t *testing.T) *fulfillmentFixture {
	t.Helper()

	f := &fulfillmentFixture{
		users:      testhelpers.NewUserRepositoryStub(),
		shops:      testhelpers.NewShopRepositoryStub(),
		orders:     testhelpers.NewOrderRepositoryStub(),
		milestones: testhelpers.NewMilestoneRepositoryStub(),
		tasks:      testhelpers.NewTaskRepositoryStub(),
		tx:         &testhelpers.TxManagerStub{},
	}
	f.uc = usecase.NewFulfillmentUseCase(f.users, f.shops, f.orders, f.milestones, f.tasks, f.tx)

	owner, err := f.users.Create(context.Background(), "seller", "hash", model.RoleShop)
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	f.owner = owner

	shop, err := f.shops.Create(context.Background(), owner.ID, "atelier")
	if err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	f.shop = shop

	f.order = f.orders.Add(model.Order{ShopID: shop.ID, UserID: 100, Status: model.OrderStatusInProcess})
	return f
}

func TestCompleteTaskAdvancesToNextTask(t *testing.T) {
	f := newFulfillmentFixture(t)
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	first := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 1, Status: model.ProgressStatusInProgress})
	second := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 2, Status: model.ProgressStatusPending})

	if err := f.uc.CompleteTask(context.Background(), f.owner.ID, m.ID, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.tasks.Tasks[first.ID].Status != model.ProgressStatusCompleted {
		t.Fatalf("expected first task completed, got %s", f.tasks.Tasks[first.ID].Status)
	}
	if f.tasks.Tasks[second.ID].Status != model.ProgressStatusInProgress {
		t.Fatalf("expected second task in progress, got %s", f.tasks.Tasks[second.ID].Status)
	}
	if f.milestones.Milestones[m.ID].Status != model.ProgressStatusInProgress {
		t.Fatalf("milestone should stay in progress, got %s", f.milestones.Milestones[m.ID].Status)
	}
	if f.tx.Calls != 1 {
		t.Fatalf("expected cascade to run in one transaction, got %d", f.tx.Calls)
	}
}

func TestCompleteTaskClosesMilestoneAndOpensNext(t *testing.T) {
	f := newFulfillmentFixture(t)
	current := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	next := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 2, Status: model.ProgressStatusPending})
	last := f.tasks.Add(model.Task{MilestoneID: current.ID, Index: 1, Status: model.ProgressStatusInProgress})
	nextTask := f.tasks.Add(model.Task{MilestoneID: next.ID, Index: 1, Status: model.ProgressStatusPending})

	if err := f.uc.CompleteTask(context.Background(), f.owner.ID, current.ID, last.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.milestones.Milestones[current.ID].Status != model.ProgressStatusCompleted {
		t.Fatalf("expected current milestone completed, got %s", f.milestones.Milestones[current.ID].Status)
	}
	if f.milestones.Milestones[next.ID].Status != model.ProgressStatusInProgress {
		t.Fatalf("expected next milestone in progress, got %s", f.milestones.Milestones[next.ID].Status)
	}
	if f.tasks.Tasks[nextTask.ID].Status != model.ProgressStatusInProgress {
		t.Fatalf("expected first task of next milestone in progress, got %s", f.tasks.Tasks[nextTask.ID].Status)
	}
	if f.orders.Orders[f.order.ID].Status != model.OrderStatusInProcess {
		t.Fatalf("order must not complete while milestones remain")
	}
}

func TestCompleteTaskLastMilestoneCompletesOrder(t *testing.T) {
	f := newFulfillmentFixture(t)
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	task := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 1, Status: model.ProgressStatusInProgress})

	if err := f.uc.CompleteTask(context.Background(), f.owner.ID, m.ID, task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.milestones.Milestones[m.ID].Status != model.ProgressStatusCompleted {
		t.Fatalf("expected milestone completed, got %s", f.milestones.Milestones[m.ID].Status)
	}
	if f.orders.Orders[f.order.ID].Status != model.OrderStatusCompleted {
		t.Fatalf("expected order completed, got %s", f.orders.Orders[f.order.ID].Status)
	}
	if len(f.orders.LockedIDs) == 0 || f.orders.LockedIDs[0] != f.order.ID {
		t.Fatalf("expected order row to be locked during cascade")
	}
}

func TestCompleteTaskRejectsPendingTask(t *testing.T) {
	f := newFulfillmentFixture(t)
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 1, Status: model.ProgressStatusInProgress})
	pending := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 2, Status: model.ProgressStatusPending})

	err := f.uc.CompleteTask(context.Background(), f.owner.ID, m.ID, pending.ID)
	if !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for out-of-order completion, got %v", err)
	}
	if f.tasks.Tasks[pending.ID].Status != model.ProgressStatusPending {
		t.Fatalf("pending task must not change status")
	}
}

func TestCompleteTaskRejectsCompletedTask(t *testing.T) {
	f := newFulfillmentFixture(t)
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	done := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 1, Status: model.ProgressStatusCompleted})

	if err := f.uc.CompleteTask(context.Background(), f.owner.ID, m.ID, done.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for repeat completion, got %v", err)
	}
}

func TestCompleteTaskForeignTask(t *testing.T) {
	f := newFulfillmentFixture(t)
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	other := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 2, Status: model.ProgressStatusPending})
	stranger := f.tasks.Add(model.Task{MilestoneID: other.ID, Index: 1, Status: model.ProgressStatusInProgress})

	if err := f.uc.CompleteTask(context.Background(), f.owner.ID, m.ID, stranger.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for task outside milestone, got %v", err)
	}
}

func TestCompleteTaskForeignShop(t *testing.T) {
	f := newFulfillmentFixture(t)
	outsider, err := f.users.Create(context.Background(), "other", "hash", model.RoleShop)
	if err != nil {
		t.Fatalf("seed outsider: %v", err)
	}
	if _, err := f.shops.Create(context.Background(), outsider.ID, "rival"); err != nil {
		t.Fatalf("seed rival shop: %v", err)
	}
	m := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})
	task := f.tasks.Add(model.Task{MilestoneID: m.ID, Index: 1, Status: model.ProgressStatusInProgress})

	if err := f.uc.CompleteTask(context.Background(), outsider.ID, m.ID, task.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign shop, got %v", err)
	}
}

func TestCreateMilestoneFirstStartsInProgress(t *testing.T) {
	f := newFulfillmentFixture(t)
	due := time.Now().Add(72 * time.Hour)

	created, err := f.uc.CreateMilestone(context.Background(), f.owner.ID, usecase.CreateMilestoneInput{
		OrderID: f.order.ID,
		Title:   "fitting",
		DueDate: due,
		Tasks: []usecase.TaskInput{
			{Title: "measurements", DueDate: due},
			{Title: "first fitting", DueDate: due},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Index != 1 {
		t.Fatalf("expected index 1, got %d", created.Index)
	}
	if created.Status != model.ProgressStatusInProgress {
		t.Fatalf("first milestone must start in progress, got %s", created.Status)
	}

	tasks, _ := f.tasks.ListByMilestone(context.Background(), created.ID)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 seeded tasks, got %d", len(tasks))
	}
	if tasks[0].Status != model.ProgressStatusInProgress {
		t.Fatalf("first task must start in progress, got %s", tasks[0].Status)
	}
	if tasks[1].Status != model.ProgressStatusPending {
		t.Fatalf("second task must start pending, got %s", tasks[1].Status)
	}
	if tasks[0].Index != 1 || tasks[1].Index != 2 {
		t.Fatalf("tasks must be indexed sequentially, got %d %d", tasks[0].Index, tasks[1].Index)
	}
}

func TestCreateMilestoneLaterStartsPending(t *testing.T) {
	f := newFulfillmentFixture(t)
	f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})

	created, err := f.uc.CreateMilestone(context.Background(), f.owner.ID, usecase.CreateMilestoneInput{
		OrderID: f.order.ID,
		Title:   "sewing",
		Tasks:   []usecase.TaskInput{{Title: "cut fabric"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Index != 2 {
		t.Fatalf("expected index 2, got %d", created.Index)
	}
	if created.Status != model.ProgressStatusPending {
		t.Fatalf("later milestone must start pending, got %s", created.Status)
	}
	tasks, _ := f.tasks.ListByMilestone(context.Background(), created.ID)
	if tasks[0].Status != model.ProgressStatusPending {
		t.Fatalf("tasks of pending milestone must start pending, got %s", tasks[0].Status)
	}
}

func TestCreateMilestoneRejectsTerminalOrder(t *testing.T) {
	f := newFulfillmentFixture(t)
	closed := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: 100, Status: model.OrderStatusCompleted})

	_, err := f.uc.CreateMilestone(context.Background(), f.owner.ID, usecase.CreateMilestoneInput{OrderID: closed.ID, Title: "late"})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for terminal order, got %v", err)
	}
}

func TestUpdateMilestoneRequiresClosedStatus(t *testing.T) {
	f := newFulfillmentFixture(t)
	open := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusInProgress})

	_, err := f.uc.UpdateMilestone(context.Background(), f.owner.ID, open.ID, usecase.UpdateMilestoneInput{Title: "renamed"})
	if !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for open milestone, got %v", err)
	}
}

func TestUpdateMilestoneEditsClosedMilestone(t *testing.T) {
	f := newFulfillmentFixture(t)
	due := time.Now().Add(24 * time.Hour)
	closed := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusCompleted, Title: "old"})

	updated, err := f.uc.UpdateMilestone(context.Background(), f.owner.ID, closed.ID, usecase.UpdateMilestoneInput{Title: "new", DueDate: due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "new" {
		t.Fatalf("expected title to change, got %s", updated.Title)
	}
	if f.milestones.Milestones[closed.ID].Title != "new" {
		t.Fatalf("expected stored milestone to change")
	}
}

func TestUpdateMilestoneStaffBypassesOwnership(t *testing.T) {
	f := newFulfillmentFixture(t)
	staff, err := f.users.Create(context.Background(), "staff", "hash", model.RoleStaff)
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	closed := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusCancelled, Title: "old"})

	if _, err := f.uc.UpdateMilestone(context.Background(), staff.ID, closed.ID, usecase.UpdateMilestoneInput{Title: "fixed"}); err != nil {
		t.Fatalf("staff should edit any closed milestone, got %v", err)
	}
}

func TestAcceptOrderTransitionsPending(t *testing.T) {
	f := newFulfillmentFixture(t)
	pending := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: 100, Status: model.OrderStatusPending})

	if err := f.uc.AcceptOrder(context.Background(), f.owner.ID, pending.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.orders.Orders[pending.ID].Status != model.OrderStatusInProcess {
		t.Fatalf("expected order in process, got %s", f.orders.Orders[pending.ID].Status)
	}
}

func TestAcceptOrderRejectsNonPending(t *testing.T) {
	f := newFulfillmentFixture(t)

	if err := f.uc.AcceptOrder(context.Background(), f.owner.ID, f.order.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestCancelOrderCascadesToOpenWork(t *testing.T) {
	f := newFulfillmentFixture(t)
	done := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 1, Status: model.ProgressStatusCompleted})
	open := f.milestones.Add(model.Milestone{OrderID: f.order.ID, Index: 2, Status: model.ProgressStatusInProgress})
	doneTask := f.tasks.Add(model.Task{MilestoneID: open.ID, Index: 1, Status: model.ProgressStatusCompleted})
	openTask := f.tasks.Add(model.Task{MilestoneID: open.ID, Index: 2, Status: model.ProgressStatusInProgress})

	if err := f.uc.CancelOrder(context.Background(), f.owner.ID, f.order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.orders.Orders[f.order.ID].Status != model.OrderStatusCancelled {
		t.Fatalf("expected order cancelled, got %s", f.orders.Orders[f.order.ID].Status)
	}
	if f.milestones.Milestones[done.ID].Status != model.ProgressStatusCompleted {
		t.Fatalf("completed milestone must keep its status")
	}
	if f.milestones.Milestones[open.ID].Status != model.ProgressStatusCancelled {
		t.Fatalf("open milestone must be cancelled, got %s", f.milestones.Milestones[open.ID].Status)
	}
	if f.tasks.Tasks[doneTask.ID].Status != model.ProgressStatusCompleted {
		t.Fatalf("completed task must keep its status")
	}
	if f.tasks.Tasks[openTask.ID].Status != model.ProgressStatusCancelled {
		t.Fatalf("open task must be cancelled, got %s", f.tasks.Tasks[openTask.ID].Status)
	}
}

func TestCancelOrderByCustomer(t *testing.T) {
	f := newFulfillmentFixture(t)
	customer, err := f.users.Create(context.Background(), "bride", "hash", model.RoleCustomer)
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	order := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: customer.ID, Status: model.OrderStatusPending})

	if err := f.uc.CancelOrder(context.Background(), customer.ID, order.ID); err != nil {
		t.Fatalf("customer should cancel own order, got %v", err)
	}
}

func TestCancelOrderRejectsStranger(t *testing.T) {
	f := newFulfillmentFixture(t)
	stranger, err := f.users.Create(context.Background(), "stranger", "hash", model.RoleCustomer)
	if err != nil {
		t.Fatalf("seed stranger: %v", err)
	}

	if err := f.uc.CancelOrder(context.Background(), stranger.ID, f.order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}
}

func TestCancelOrderRejectsTerminal(t *testing.T) {
	f := newFulfillmentFixture(t)
	closed := f.orders.Add(model.Order{ShopID: f.shop.ID, UserID: 100, Status: model.OrderStatusCancelled})

	if err := f.uc.CancelOrder(context.Background(), f.owner.ID, closed.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected invalid state for terminal order, got %v", err)
	}
}
