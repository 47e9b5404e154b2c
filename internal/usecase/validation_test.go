package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/veilmart/veilmart/internal/domain/errors"
	"github.com/veilmart/veilmart/internal/usecase"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount decimal.Decimal
		ok     bool
	}{
		{"positive", decimal.NewFromInt(1), true},
		{"fractional", decimal.RequireFromString("0.01"), true},
		{"zero", decimal.Zero, false},
		{"negative", decimal.NewFromInt(-3), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := usecase.ValidateAmount(tc.amount)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, domainErrors.ErrInvalidAmount) {
				t.Fatalf("expected invalid amount, got %v", err)
			}
		})
	}
}
