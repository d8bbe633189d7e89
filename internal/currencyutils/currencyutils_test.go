package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		hasError  bool
	}{
		{"Simple decimal", "123.45", "123.45", false},
		{"Negative decimal", "-123.45", "-123.45", false},
		{"Integer", "100", "100", false},
		{"With comma decimal separator", "123,45", "123.45", false},
		{"With thousand separator (comma)", "1,234.56", "1234.56", false},
		{"Negative with thousand separator", "-1,234.56", "-1234.56", false},
		{"Comma thousands only", "1,234", "1234", false},
		{"With thousand separator (apostrophe)", "1'234.56", "1234.56", false},
		{"European format", "1.234,56", "1234.56", false},
		{"With currency symbol (USD)", "$123.45", "123.45", false},
		{"Negative with currency symbol", "-$1,200.00", "-1200", false},
		{"With currency code", "CHF 123.45", "123.45", false},
		{"With spaces", "  123.45  ", "123.45", false},
		{"Empty string", "", "0", true},
		{"Only symbol", "$", "0", true},
		{"Malformed decimal", "123.45.67", "0", true},
		{"Non-numeric", "abc", "0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			expected := decimal.RequireFromString(tc.expected)
			assert.True(t, expected.Equal(result), "Expected %s but got %s", expected, result)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123.45", "123.45"},
		{"1,234,567.89", "1234567.89"},
		{"1.234.567,89", "1234567.89"},
		{"€1.234,56", "1234.56"},
		{"USD 12", "12"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}
