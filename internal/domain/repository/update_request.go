package repository

import (
	"context"
	"time"

	"github.com/veilmart/veilmart/internal/domain/model"
)

// UpdateRequestRepository manages order surcharge requests.
type UpdateRequestRepository interface {
	Create(ctx context.Context, r *model.UpdateRequest) (*model.UpdateRequest, error)
	GetByID(ctx context.Context, id int64) (*model.UpdateRequest, error)
	// ListStalePending returns PENDING requests created before the cutoff,
	// oldest first, at most limit entries.
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.UpdateRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.UpdateRequestStatus) error
}
