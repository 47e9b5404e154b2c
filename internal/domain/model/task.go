package model

import "time"

// Task is a unit of work within a milestone, ordered by index within it.
// At most one task per milestone is IN_PROGRESS; tasks complete in
// increasing index order.
type Task struct {
	ID          int64
	MilestoneID int64
	Index       int
	Title       string
	Status      ProgressStatus
	DueDate     time.Time
}
