package dto

import "time"

// TaskPayload seeds one task when creating a milestone.
type TaskPayload struct {
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// CreateMilestoneRequest describes a milestone appended to an order.
type CreateMilestoneRequest struct {
	OrderID int64         `json:"order_id"`
	Title   string        `json:"title"`
	DueDate time.Time     `json:"due_date"`
	Tasks   []TaskPayload `json:"tasks"`
}

// UpdateMilestoneRequest carries editable milestone metadata.
type UpdateMilestoneRequest struct {
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// MilestoneResponse describes a fulfillment milestone.
type MilestoneResponse struct {
	ID      int64     `json:"id"`
	OrderID int64     `json:"order_id"`
	Index   int       `json:"index"`
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

// TaskResponse describes a milestone task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	MilestoneID int64     `json:"milestone_id"`
	Index       int       `json:"index"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
}
