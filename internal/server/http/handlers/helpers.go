package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/server/http/dto"
	"github.com/veilmart/veilmart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// PathID parses a path parameter as an int64 identifier.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// RespondError maps domain errors onto HTTP statuses. ConfirmationRequired
// carries a body so the client can resubmit with the force flag set.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidState):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidOperation):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrInsufficientFunds):
		c.Status(http.StatusPaymentRequired)
	case errors.Is(err, domainErrors.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, dto.ConfirmationRequiredResponse{
			ConfirmationRequired: true,
			Message:              "a cheaper plan is active; resubmit with force to replace it",
		})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
