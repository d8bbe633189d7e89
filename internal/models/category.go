package models

import "fmt"

// AccountCategory classifies an account, not a transaction.
type AccountCategory int

const (
	CategorySaving AccountCategory = iota
	CategoryCreditCard
	CategoryInvestment
	CategoryRetirement
)

// AllCategories lists the categories in the column order used by summaries.
var AllCategories = []AccountCategory{
	CategoryCreditCard,
	CategorySaving,
	CategoryInvestment,
	CategoryRetirement,
}

var categoryLabels = map[AccountCategory]string{
	CategoryCreditCard: "Credit Card",
	CategorySaving:     "Saving",
	CategoryInvestment: "Investment",
	CategoryRetirement: "Retirement",
}

// String returns the label written in the category row of a balance table.
func (c AccountCategory) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("AccountCategory(%d)", int(c))
}

// ParseAccountCategory is the inverse of String.
func ParseAccountCategory(label string) (AccountCategory, error) {
	for c, l := range categoryLabels {
		if l == label {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown account category %q", label)
}
