package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
)

// ValidateAmount rejects non-positive monetary amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}
