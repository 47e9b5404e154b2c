package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veilmart/veilmart/internal/adapter/otp"
	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/server/http/dto"
)

// WalletHandler serves wallet balance and ledger endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler creates WalletHandler instance.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Balance handles GET /api/user/wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	wallet, err := h.facade.Balance(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Available: wallet.Available,
		Locked:    wallet.Locked,
	})
}

// History handles GET /api/user/wallet/transactions.
func (h *WalletHandler) History(c *gin.Context) {
	transactions, err := h.facade.History(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	if len(transactions) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		resp = append(resp, toTransactionResponse(&transactions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Deposit handles POST /api/user/wallet/deposits.
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	txn, err := h.facade.Deposit(c.Request.Context(), CurrentUserID(c), req.Amount, req.Note)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toTransactionResponse(txn))
}

// ConfirmDeposit handles POST /api/gateway/deposits/:transactionID/confirm.
// The payment gateway calls it once funds clear; repeated confirmations of
// the same transaction are rejected.
func (h *WalletHandler) ConfirmDeposit(c *gin.Context) {
	transactionID, ok := PathID(c, "transactionID")
	if !ok {
		return
	}

	if err := h.facade.ConfirmDeposit(c.Request.Context(), transactionID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Withdraw handles POST /api/user/wallet/withdrawals.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OTP == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	txn, err := h.facade.RequestWithdrawal(c.Request.Context(), CurrentUserID(c), req.Amount, req.Note, req.OTP)
	if err != nil {
		var tooMany otp.TooManyRequestsError
		switch {
		case errors.Is(err, otp.ErrVerificationFailed):
			c.Status(http.StatusUnauthorized)
		case errors.As(err, &tooMany):
			c.Header("Retry-After", fmt.Sprintf("%.0f", tooMany.RetryAfter.Seconds()))
			c.Status(http.StatusTooManyRequests)
		default:
			RespondError(c, err)
		}
		return
	}

	c.JSON(http.StatusAccepted, toTransactionResponse(txn))
}

// ApproveWithdrawal handles POST /api/staff/withdrawals/:transactionID/approve.
func (h *WalletHandler) ApproveWithdrawal(c *gin.Context) {
	transactionID, ok := PathID(c, "transactionID")
	if !ok {
		return
	}

	if err := h.facade.ApproveWithdrawal(c.Request.Context(), transactionID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// CancelWithdrawal handles POST /api/staff/withdrawals/:transactionID/cancel.
func (h *WalletHandler) CancelWithdrawal(c *gin.Context) {
	transactionID, ok := PathID(c, "transactionID")
	if !ok {
		return
	}

	if err := h.facade.CancelWithdrawal(c.Request.Context(), transactionID); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// PayOrder handles POST /api/orders/:orderID/pay.
func (h *WalletHandler) PayOrder(c *gin.Context) {
	orderID, ok := PathID(c, "orderID")
	if !ok {
		return
	}

	txn, err := h.facade.PayOrder(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTransactionResponse(txn))
}

func toTransactionResponse(t *model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           t.ID,
		OrderID:      t.OrderID,
		MembershipID: t.MembershipID,
		From:         t.From,
		To:           t.To,
		FromBalance:  string(t.FromBalance),
		ToBalance:    string(t.ToBalance),
		Amount:       t.Amount,
		Type:         string(t.Type),
		Status:       string(t.Status),
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
	}
}
