// Package currencyutils normalizes the amount strings found in ledger exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencySymbols  = regexp.MustCompile(`[€$£¥₣₤₹₽₩฿₪\s]|CHF|USD|EUR|GBP`)
	commaThousands   = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)
	periodThousands  = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+,\d+$`)
	apostropheGroups = strings.NewReplacer("'", "", "’", "")
)

// ParseAmount parses a signed amount as exported by budgeting tools and banks.
// It accepts currency symbols and codes, thousands separators ("1,234.56",
// "1'234.56", "1.234,56") and a comma decimal separator ("12,50"). An empty
// string is an error.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount rewrites an amount string into the form accepted by
// decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	s := currencySymbols.ReplaceAllString(amountStr, "")
	s = apostropheGroups.Replace(s)

	switch {
	case periodThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case commaThousands.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") == 1:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}
