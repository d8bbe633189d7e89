package metrics

import (
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
)

// AnnualIncome sums income-tagged amounts per calendar year. Transactions in
// or after asOf are ignored; a zero asOf keeps everything.
func AnnualIncome(txs []categorizer.TaggedTransaction, asOf models.Month) map[int]decimal.Decimal {
	income := make(map[int]decimal.Decimal)
	for _, tx := range txs {
		if !tx.Roles.Has(categorizer.RoleIncome) {
			continue
		}
		m := tx.Month()
		if !asOf.IsZero() && !m.Before(asOf) {
			continue
		}
		income[m.Year] = income[m.Year].Add(tx.Amount)
	}
	return income
}
