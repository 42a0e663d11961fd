package entity

import (
	"fmt"
	"math"
	"strings"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseAmount parses a decimal string such as "10.5" or "-3.25" into signed cents.
// More than two fractional digits is rejected rather than rounded.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if value.Exponent() < -MaxDecimalPlaces && !value.Equal(value.Truncate(MaxDecimalPlaces)) {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	cents := value.Shift(MaxDecimalPlaces)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, errs.ErrAmountOverflow
	}

	return cents.IntPart(), nil
}

// ValidateAndConvertAmount parses a non-negative amount string into cents
func ValidateAndConvertAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents < 0 {
		return 0, errs.ErrNegativeAmount
	}
	return cents, nil
}

// ValidatePositiveAmount parses an amount string that must be strictly greater than zero
func ValidatePositiveAmount(amount string) (int64, error) {
	cents, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, fmt.Errorf("%w: zero amount", errs.ErrNegativeAmount)
	}
	return cents, nil
}

// AmountInCentsToString converts integer amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - -1200 becomes "-12.00"
func AmountInCentsToString(amountInCents int64) string {
	return decimal.New(amountInCents, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}
