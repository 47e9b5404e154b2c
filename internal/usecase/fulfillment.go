package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/domain/repository"
)

// FulfillmentUseCase drives order progression: tasks advance within a
// milestone, milestones advance within an order, and exhausting the last
// milestone completes the order. Every cascade runs in one storage
// transaction with the order row locked, so concurrent completion calls
// serialize per order.
type FulfillmentUseCase struct {
	users      repository.UserRepository
	shops      repository.ShopRepository
	orders     repository.OrderRepository
	milestones repository.MilestoneRepository
	tasks      repository.TaskRepository
	tx         repository.TxManager
}

// NewFulfillmentUseCase constructs FulfillmentUseCase.
func NewFulfillmentUseCase(
	users repository.UserRepository,
	shops repository.ShopRepository,
	orders repository.OrderRepository,
	milestones repository.MilestoneRepository,
	tasks repository.TaskRepository,
	tx repository.TxManager,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{users: users, shops: shops, orders: orders, milestones: milestones, tasks: tasks, tx: tx}
}

// TaskInput seeds a task during milestone creation.
type TaskInput struct {
	Title   string
	DueDate time.Time
}

// CreateMilestoneInput describes a milestone to append to an order.
type CreateMilestoneInput struct {
	OrderID int64
	Title   string
	DueDate time.Time
	Tasks   []TaskInput
}

// UpdateMilestoneInput carries editable milestone metadata.
type UpdateMilestoneInput struct {
	Title   string
	DueDate time.Time
}

// CompleteTask marks the task done and advances the progression: the next
// task by index becomes IN_PROGRESS, or the milestone completes and the
// next milestone opens with its first task, or the order completes when no
// milestone remains.
func (u *FulfillmentUseCase) CompleteTask(ctx context.Context, shopUserID, milestoneID, taskID int64) error {
	shop, err := u.shops.GetByOwner(ctx, shopUserID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		milestone, err := u.milestones.GetByID(ctx, milestoneID)
		if err != nil {
			return err
		}

		order, err := u.orders.GetForUpdate(ctx, milestone.OrderID)
		if err != nil {
			return err
		}
		if order.ShopID != shop.ID {
			return domainErrors.ErrNotFound
		}

		task, err := u.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.MilestoneID != milestone.ID {
			return domainErrors.ErrNotFound
		}
		if task.Status != model.ProgressStatusInProgress {
			return domainErrors.ErrInvalidState
		}

		if err := u.tasks.UpdateStatus(ctx, task.ID, model.ProgressStatusCompleted); err != nil {
			return err
		}

		siblings, err := u.tasks.ListByMilestone(ctx, milestone.ID)
		if err != nil {
			return err
		}
		if next := nextTaskByIndex(siblings, task.Index); next != nil {
			return u.tasks.UpdateStatus(ctx, next.ID, model.ProgressStatusInProgress)
		}

		// Last task of the milestone: close it and hand off.
		if err := u.milestones.UpdateStatus(ctx, milestone.ID, model.ProgressStatusCompleted); err != nil {
			return err
		}

		all, err := u.milestones.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		next := nextMilestoneByIndex(all, milestone.Index)
		if next == nil {
			return u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted)
		}

		if err := u.milestones.UpdateStatus(ctx, next.ID, model.ProgressStatusInProgress); err != nil {
			return err
		}
		nextTasks, err := u.tasks.ListByMilestone(ctx, next.ID)
		if err != nil {
			return err
		}
		if len(nextTasks) > 0 {
			return u.tasks.UpdateStatus(ctx, nextTasks[0].ID, model.ProgressStatusInProgress)
		}
		return nil
	})
}

// CreateMilestone appends a milestone to an order owned by the caller's
// shop. The first milestone of an order starts IN_PROGRESS together with
// its first task; later ones start PENDING.
func (u *FulfillmentUseCase) CreateMilestone(ctx context.Context, shopUserID int64, input CreateMilestoneInput) (*model.Milestone, error) {
	shop, err := u.shops.GetByOwner(ctx, shopUserID)
	if err != nil {
		return nil, err
	}

	var created *model.Milestone
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.ShopID != shop.ID || order.Status.Terminal() {
			return domainErrors.ErrNotFound
		}

		count, err := u.milestones.CountByOrder(ctx, order.ID)
		if err != nil {
			return err
		}

		status := model.ProgressStatusPending
		if count == 0 {
			status = model.ProgressStatusInProgress
		}

		created, err = u.milestones.Create(ctx, &model.Milestone{
			OrderID: order.ID,
			Index:   count + 1,
			Title:   input.Title,
			Status:  status,
			DueDate: input.DueDate,
		})
		if err != nil {
			return err
		}

		for i, t := range input.Tasks {
			taskStatus := model.ProgressStatusPending
			if i == 0 && status == model.ProgressStatusInProgress {
				taskStatus = model.ProgressStatusInProgress
			}
			if _, err := u.tasks.Create(ctx, &model.Task{
				MilestoneID: created.ID,
				Index:       i + 1,
				Title:       t.Title,
				Status:      taskStatus,
				DueDate:     t.DueDate,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMilestone edits metadata of a closed milestone. Open milestones
// are immutable through this path.
func (u *FulfillmentUseCase) UpdateMilestone(ctx context.Context, actorID, milestoneID int64, input UpdateMilestoneInput) (*model.Milestone, error) {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	milestone, err := u.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	if actor.Role != model.RoleStaff {
		order, err := u.orders.GetByID(ctx, milestone.OrderID)
		if err != nil {
			return nil, err
		}
		shop, err := u.shops.GetByOwner(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if order.ShopID != shop.ID {
			return nil, domainErrors.ErrNotFound
		}
	}

	if !milestone.Status.Closed() {
		return nil, domainErrors.ErrInvalidState
	}

	milestone.Title = input.Title
	milestone.DueDate = input.DueDate
	if err := u.milestones.Update(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

// AcceptOrder moves a pending order into fulfillment.
func (u *FulfillmentUseCase) AcceptOrder(ctx context.Context, shopUserID, orderID int64) error {
	shop, err := u.shops.GetByOwner(ctx, shopUserID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.ShopID != shop.ID {
			return domainErrors.ErrNotFound
		}
		if order.Status != model.OrderStatusPending {
			return domainErrors.ErrInvalidState
		}
		return u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusInProcess)
	})
}

// CancelOrder cancels a non-terminal order together with every milestone
// and task that has not already closed.
func (u *FulfillmentUseCase) CancelOrder(ctx context.Context, actorID, orderID int64) error {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if actor.Role != model.RoleStaff && order.UserID != actorID {
			shop, err := u.shops.GetByOwner(ctx, actorID)
			if err != nil {
				if errors.Is(err, domainErrors.ErrNotFound) {
					return domainErrors.ErrNotFound
				}
				return err
			}
			if order.ShopID != shop.ID {
				return domainErrors.ErrNotFound
			}
		}
		if order.Status.Terminal() {
			return domainErrors.ErrInvalidState
		}

		milestones, err := u.milestones.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, m := range milestones {
			if m.Status.Closed() {
				continue
			}
			if err := u.milestones.UpdateStatus(ctx, m.ID, model.ProgressStatusCancelled); err != nil {
				return err
			}
			tasks, err := u.tasks.ListByMilestone(ctx, m.ID)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				if t.Status.Closed() {
					continue
				}
				if err := u.tasks.UpdateStatus(ctx, t.ID, model.ProgressStatusCancelled); err != nil {
					return err
				}
			}
		}

		return u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled)
	})
}

// Milestones returns the order's milestones sorted by index.
func (u *FulfillmentUseCase) Milestones(ctx context.Context, orderID int64) ([]model.Milestone, error) {
	return u.milestones.ListByOrder(ctx, orderID)
}

// Tasks returns the milestone's tasks sorted by index.
func (u *FulfillmentUseCase) Tasks(ctx context.Context, milestoneID int64) ([]model.Task, error) {
	return u.tasks.ListByMilestone(ctx, milestoneID)
}

// nextTaskByIndex returns the task with the smallest index strictly
// greater than after, or nil.
func nextTaskByIndex(tasks []model.Task, after int) *model.Task {
	for i := range tasks {
		if tasks[i].Index > after {
			return &tasks[i]
		}
	}
	return nil
}

// nextMilestoneByIndex returns the milestone with the smallest index
// strictly greater than after, or nil.
func nextMilestoneByIndex(milestones []model.Milestone, after int) *model.Milestone {
	for i := range milestones {
		if milestones[i].Index > after {
			return &milestones[i]
		}
	}
	return nil
}
