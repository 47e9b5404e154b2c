package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veilmart/veilmart/internal/server/http/dto"
)

// MembershipHandler serves shop subscription endpoints.
type MembershipHandler struct {
	facade MembershipFacade
}

// NewMembershipHandler creates MembershipHandler instance.
func NewMembershipHandler(facade MembershipFacade) *MembershipHandler {
	return &MembershipHandler{facade: facade}
}

// Subscriptions handles GET /api/subscriptions.
func (h *MembershipHandler) Subscriptions(c *gin.Context) {
	subscriptions, err := h.facade.Subscriptions(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	resp := make([]dto.SubscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		resp = append(resp, dto.SubscriptionResponse{
			ID:       s.ID,
			Name:     s.Name,
			Amount:   s.Amount,
			Duration: s.Duration,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Purchase handles POST /api/shop/memberships.
func (h *MembershipHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SubscriptionID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	membership, err := h.facade.PurchaseMembership(c.Request.Context(), CurrentUserID(c), req.SubscriptionID, req.Force)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MembershipResponse{
		ID:             membership.ID,
		SubscriptionID: membership.SubscriptionID,
		StartDate:      membership.StartDate,
		EndDate:        membership.EndDate,
		Status:         string(membership.Status),
	})
}

// Cancel handles POST /api/shop/memberships/cancel.
func (h *MembershipHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelMembership(c.Request.Context(), CurrentUserID(c)); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
