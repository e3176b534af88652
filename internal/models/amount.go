package models

import (
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
)

// AmountScale is the number of fractional digits every money column stores.
const AmountScale = 4

// maxAmount is the exclusive magnitude bound of a DECIMAL(20,4) column.
var maxAmount = decimal.New(1, 20-AmountScale)

// ValidateAmount rejects money values the store cannot hold exactly:
// negatives, more than AmountScale fractional digits, or 10^16 and above.
// Trailing zeros past the scale are fine.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ErrNegativeAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 4 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be less than 10000000000000000")
	}
	return nil
}
