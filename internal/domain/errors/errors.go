package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidState         = errors.New("invalid state for operation")
	ErrInvalidOperation     = errors.New("operation not allowed")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrForbidden            = errors.New("forbidden")
)
