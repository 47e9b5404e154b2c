package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseMembershipRequest describes a subscription purchase payload.
// Force confirms replacing a cheaper active plan.
type PurchaseMembershipRequest struct {
	SubscriptionID int64 `json:"subscription_id"`
	Force          bool  `json:"force"`
}

// MembershipResponse describes a shop's subscription grant.
type MembershipResponse struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
}

// SubscriptionResponse describes a purchasable tier.
type SubscriptionResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Duration int             `json:"duration"`
}

// ConfirmationRequiredResponse tells the client to resubmit with force.
type ConfirmationRequiredResponse struct {
	ConfirmationRequired bool   `json:"confirmation_required"`
	Message              string `json:"message"`
}
