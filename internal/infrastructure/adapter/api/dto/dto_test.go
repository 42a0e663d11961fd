package dto

import (
	"testing"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
		err      error
	}{
		{"12.50", 1250, nil},
		{" 4 ", 400, nil},
		{"0.01", 1, nil},
		{"1e2", 10000, nil},
		{"0", 0, errs.ErrNegativeAmount},
		{"-3.00", 0, errs.ErrNegativeAmount},
		{"1.005", 0, errs.ErrInvalidAmount},
		{"abc", 0, errs.ErrInvalidAmount},
		{"100000000000.00", 0, errs.ErrAmountOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			cents, err := ParseAmount(tc.input)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cents)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "8.00", FormatAmount(800))
	assert.Equal(t, "-12.00", FormatAmount(-1200))
	assert.Equal(t, "0.05", FormatAmount(5))
}
