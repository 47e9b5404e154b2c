package repository

import (
	"context"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// MilestoneRepository describes persistence operations with milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, m *model.Milestone) (*model.Milestone, error)
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	// ListByOrder returns milestones sorted by index ascending.
	ListByOrder(ctx context.Context, orderID int64) ([]model.Milestone, error)
	CountByOrder(ctx context.Context, orderID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status model.ProgressStatus) error
	Update(ctx context.Context, m *model.Milestone) error
}
