package model

import "time"

// ProgressStatus describes lifecycle of milestones and tasks.
type ProgressStatus string

const (
	ProgressStatusPending    ProgressStatus = "PENDING"
	ProgressStatusInProgress ProgressStatus = "IN_PROGRESS"
	ProgressStatusCompleted  ProgressStatus = "COMPLETED"
	ProgressStatusCancelled  ProgressStatus = "CANCELLED"
)

// Closed reports whether the status permits metadata edits.
func (s ProgressStatus) Closed() bool {
	return s == ProgressStatusCompleted || s == ProgressStatusCancelled
}

// Milestone is a phase of order fulfillment, ordered by index within its order.
// Indexes are 1-based and assigned at creation time; at most one milestone
// per order is IN_PROGRESS at any moment.
type Milestone struct {
	ID      int64
	OrderID int64
	Index   int
	Title   string
	Status  ProgressStatus
	DueDate time.Time
}
