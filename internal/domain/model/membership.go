package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipStatus describes whether a subscription grant is in effect.
type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "ACTIVE"
	MembershipStatusInactive MembershipStatus = "INACTIVE"
)

// Subscription is an immutable priced tier a shop can purchase.
// Duration is expressed in days.
type Subscription struct {
	ID       int64
	Name     string
	Amount   decimal.Decimal
	Duration int
}

// Membership grants a shop a subscription tier between StartDate and
// EndDate. A shop holds at most one ACTIVE membership at a time.
type Membership struct {
	ID             int64
	ShopID         int64
	SubscriptionID int64
	StartDate      time.Time
	EndDate        time.Time
	Status         MembershipStatus
}
