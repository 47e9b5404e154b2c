package model

import "time"

// Role gates access to staff-only and shop-only operations.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleShop     Role = "SHOP"
	RoleStaff    Role = "STAFF"
)

// User represents a registered account on the platform.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
