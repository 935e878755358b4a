package domain

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CalculateInterest returns simple (non-compounding) interest:
// principal * rate/100 * months/12, rounded to the ledger's minor unit.
func CalculateInterest(principal, ratePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: principal must not be negative", apperrors.ErrInvalidAmount)
	}
	if err := ValidateRate(ratePercent); err != nil {
		return decimal.Zero, err
	}
	if months < 1 {
		return decimal.Zero, fmt.Errorf("%w: months must be at least 1, got %d", apperrors.ErrValidation, months)
	}

	// Multiply first so the only division happens once, on the full product.
	product := principal.Mul(ratePercent).Mul(decimal.NewFromInt(int64(months)))
	return product.Div(hundred.Mul(twelve)).Round(MinorUnitPlaces), nil
}
