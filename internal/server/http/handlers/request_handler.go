package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veilmart/veilmart/internal/server/http/dto"
)

// UpdateRequestHandler serves order surcharge endpoints.
type UpdateRequestHandler struct {
	facade UpdateRequestFacade
}

// NewUpdateRequestHandler creates UpdateRequestHandler instance.
func NewUpdateRequestHandler(facade UpdateRequestFacade) *UpdateRequestHandler {
	return &UpdateRequestHandler{facade: facade}
}

// Create handles POST /api/shop/update-requests.
func (h *UpdateRequestHandler) Create(c *gin.Context) {
	var req dto.CreateUpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.CreateUpdateRequest(c.Request.Context(), CurrentUserID(c), req.OrderID, req.Amount, req.Note)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UpdateRequestResponse{
		ID:        request.ID,
		OrderID:   request.OrderID,
		Amount:    request.Amount,
		Note:      request.Note,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	})
}

// Accept handles POST /api/update-requests/:requestID/accept.
func (h *UpdateRequestHandler) Accept(c *gin.Context) {
	requestID, ok := PathID(c, "requestID")
	if !ok {
		return
	}

	if err := h.facade.AcceptUpdateRequest(c.Request.Context(), CurrentUserID(c), requestID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Reject handles POST /api/update-requests/:requestID/reject.
func (h *UpdateRequestHandler) Reject(c *gin.Context) {
	requestID, ok := PathID(c, "requestID")
	if !ok {
		return
	}

	if err := h.facade.RejectUpdateRequest(c.Request.Context(), CurrentUserID(c), requestID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
