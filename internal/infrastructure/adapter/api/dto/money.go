package dto

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/shopspring/decimal"
)

// maxAmountCents is the largest amount accepted from clients
const maxAmountCents = 1_000_000_000_00

// ParseAmount converts a positive decimal string such as "12.50" to cents.
// More than two fractional digits are rejected rather than rounded.
func ParseAmount(amount string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidAmount, amount)
	}
	if !d.IsPositive() {
		return 0, errs.ErrNegativeAmount
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: at most two decimal places", errs.ErrInvalidAmount)
	}
	if cents.GreaterThan(decimal.NewFromInt(maxAmountCents)) {
		return 0, errs.ErrAmountOverflow
	}
	return cents.IntPart(), nil
}

// FormatAmount renders cents with exactly two decimal places
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
