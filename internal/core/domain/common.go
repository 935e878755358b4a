package domain

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of fraction digits the ledger stores (paise/cents).
const MinorUnitPlaces int32 = 2

// RatePlaces is the number of fraction digits kept for percentage rates.
const RatePlaces int32 = 4

// MaxIdentifierLength bounds maker, checker and actor ids.
const MaxIdentifierLength = 64

var (
	// MaxAmount is the largest amount or balance the ledger can hold (NUMERIC(18,2)).
	MaxAmount = decimal.RequireFromString("9999999999999999.99")
	// MaxRate is the largest percentage rate (NUMERIC(7,4)).
	MaxRate = decimal.RequireFromString("999.9999")
)

// ValidateAmount checks that a money amount is strictly positive, fits the
// ledger's precision and has no more fraction digits than the minor unit.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(MinorUnitPlaces)) {
		return fmt.Errorf("%w: amount %s has more than %d fraction digits", apperrors.ErrInvalidAmount, amount.String(), MinorUnitPlaces)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", apperrors.ErrInvalidAmount, amount.String(), MaxAmount.String())
	}
	return nil
}

// ValidateRate checks that a percentage rate is non-negative and fits NUMERIC(7,4).
func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("%w: rate must not be negative, got %s", apperrors.ErrValidation, rate.String())
	}
	if !rate.Equal(rate.Round(RatePlaces)) {
		return fmt.Errorf("%w: rate %s has more than %d fraction digits", apperrors.ErrValidation, rate.String(), RatePlaces)
	}
	if rate.GreaterThan(MaxRate) {
		return fmt.Errorf("%w: rate %s exceeds %s", apperrors.ErrValidation, rate.String(), MaxRate.String())
	}
	return nil
}

// ValidateIdentifier checks that an id fits the columns recording who acted.
func ValidateIdentifier(field, id string) error {
	if len(id) > MaxIdentifierLength {
		return fmt.Errorf("%w: %s longer than %d characters", apperrors.ErrValidation, field, MaxIdentifierLength)
	}
	return nil
}
