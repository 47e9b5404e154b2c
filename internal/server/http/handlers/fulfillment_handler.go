package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/server/http/dto"
	"github.com/veilmart/veilmart/internal/usecase"
)

// FulfillmentHandler serves order progression endpoints.
type FulfillmentHandler struct {
	facade FulfillmentFacade
}

// NewFulfillmentHandler creates FulfillmentHandler instance.
func NewFulfillmentHandler(facade FulfillmentFacade) *FulfillmentHandler {
	return &FulfillmentHandler{facade: facade}
}

// CreateMilestone handles POST /api/shop/milestones.
func (h *FulfillmentHandler) CreateMilestone(c *gin.Context) {
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 || req.Title == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.CreateMilestoneInput{
		OrderID: req.OrderID,
		Title:   req.Title,
		DueDate: req.DueDate,
	}
	for _, t := range req.Tasks {
		input.Tasks = append(input.Tasks, usecase.TaskInput{Title: t.Title, DueDate: t.DueDate})
	}

	milestone, err := h.facade.CreateMilestone(c.Request.Context(), CurrentUserID(c), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMilestoneResponse(milestone))
}

// UpdateMilestone handles PATCH /api/shop/milestones/:milestoneID.
func (h *FulfillmentHandler) UpdateMilestone(c *gin.Context) {
	milestoneID, ok := PathID(c, "milestoneID")
	if !ok {
		return
	}

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	milestone, err := h.facade.UpdateMilestone(c.Request.Context(), CurrentUserID(c), milestoneID, usecase.UpdateMilestoneInput{
		Title:   req.Title,
		DueDate: req.DueDate,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

// CompleteTask handles POST /api/shop/milestones/:milestoneID/tasks/:taskID/complete.
func (h *FulfillmentHandler) CompleteTask(c *gin.Context) {
	milestoneID, ok := PathID(c, "milestoneID")
	if !ok {
		return
	}
	taskID, ok := PathID(c, "taskID")
	if !ok {
		return
	}

	if err := h.facade.CompleteTask(c.Request.Context(), CurrentUserID(c), milestoneID, taskID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// AcceptOrder handles POST /api/shop/orders/:orderID/accept.
func (h *FulfillmentHandler) AcceptOrder(c *gin.Context) {
	orderID, ok := PathID(c, "orderID")
	if !ok {
		return
	}

	if err := h.facade.AcceptOrder(c.Request.Context(), CurrentUserID(c), orderID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// CancelOrder handles POST /api/orders/:orderID/cancel.
func (h *FulfillmentHandler) CancelOrder(c *gin.Context) {
	orderID, ok := PathID(c, "orderID")
	if !ok {
		return
	}

	if err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), orderID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Milestones handles GET /api/orders/:orderID/milestones.
func (h *FulfillmentHandler) Milestones(c *gin.Context) {
	orderID, ok := PathID(c, "orderID")
	if !ok {
		return
	}

	milestones, err := h.facade.Milestones(c.Request.Context(), orderID)
	if err != nil {
		RespondError(c, err)
		return
	}

	resp := make([]dto.MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		resp = append(resp, toMilestoneResponse(&milestones[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Tasks handles GET /api/milestones/:milestoneID/tasks.
func (h *FulfillmentHandler) Tasks(c *gin.Context) {
	milestoneID, ok := PathID(c, "milestoneID")
	if !ok {
		return
	}

	tasks, err := h.facade.Tasks(c.Request.Context(), milestoneID)
	if err != nil {
		RespondError(c, err)
		return
	}

	resp := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, dto.TaskResponse{
			ID:          t.ID,
			MilestoneID: t.MilestoneID,
			Index:       t.Index,
			Title:       t.Title,
			Status:      string(t.Status),
			DueDate:     t.DueDate,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func toMilestoneResponse(m *model.Milestone) dto.MilestoneResponse {
	return dto.MilestoneResponse{
		ID:      m.ID,
		OrderID: m.OrderID,
		Index:   m.Index,
		Title:   m.Title,
		Status:  string(m.Status),
		DueDate: m.DueDate,
	}
}
