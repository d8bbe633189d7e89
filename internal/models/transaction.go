// Package models provides the data structures shared by the pipeline.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of transaction dates in the ledger export.
const DateLayout = "2006-01-02"

// Transaction is one ledger entry. Amount is signed and expressed in currency
// units: outflows are negative, inflows positive.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Payee    string
	Category string
	Account  string
}

// Month returns the calendar month the transaction was booked in.
func (t Transaction) Month() Month {
	return MonthOf(t.Date)
}

// Validate reports the first problem that makes t unusable for balance
// reconstruction.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("missing date")
	}
	if strings.TrimSpace(t.Account) == "" {
		return fmt.Errorf("missing account")
	}
	return nil
}

// ParseDecimal parses a plain signed decimal such as "-200.50", trimming
// surrounding spaces. It accepts no currency symbols or thousands separators;
// ledger amounts go through currencyutils.ParseAmount.
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal '%s': %w", s, err)
	}
	return d, nil
}

// MustParseDecimal is like ParseDecimal but panics on error. Intended for tests
// and literals.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}
