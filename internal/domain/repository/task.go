package repository

import (
	"context"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// TaskRepository describes persistence operations with milestone tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	// ListByMilestone returns tasks sorted by index ascending.
	ListByMilestone(ctx context.Context, milestoneID int64) ([]model.Task, error)
	CountByMilestone(ctx context.Context, milestoneID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error
}
