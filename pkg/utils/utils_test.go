package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{
			name:     "zero",
			amount:   decimal.Zero,
			expected: "$0.00",
		},
		{
			name:     "sub-thousand",
			amount:   decimal.NewFromFloat(623.13),
			expected: "$623.13",
		},
		{
			name:     "thousands grouping",
			amount:   decimal.NewFromFloat(1234.5),
			expected: "$1,234.50",
		},
		{
			name:     "six figures",
			amount:   decimal.NewFromFloat(229123.13),
			expected: "$229,123.13",
		},
		{
			name:     "millions",
			amount:   decimal.NewFromInt(1000000),
			expected: "$1,000,000.00",
		},
		{
			name:     "negative disbursement",
			amount:   decimal.NewFromFloat(-500),
			expected: "-$500.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUSD(tt.amount))
		})
	}
}

func TestFormatShortDate(t *testing.T) {
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 1, 2024", FormatShortDate(d))

	assert.Equal(t, "N/A", FormatShortDate(time.Time{}))
}
