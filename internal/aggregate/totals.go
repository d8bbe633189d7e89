// Package aggregate sums balance grid cells into per-category monthly totals.
package aggregate

import (
	"fjacquet/budget-metrics/internal/balance"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
)

type key struct {
	category models.AccountCategory
	month    models.Month
}

// Totals maps (category, month) to the summed balance of all accounts in that
// category. Every category has an entry for every month of the source grid.
type Totals struct {
	months []models.Month
	values map[key]decimal.Decimal
}

// Months returns the months covered, ascending.
func (t *Totals) Months() []models.Month {
	return append([]models.Month(nil), t.months...)
}

// Get returns the total of category in month, zero when absent.
func (t *Totals) Get(category models.AccountCategory, month models.Month) decimal.Decimal {
	return t.values[key{category, month}]
}

// Snapshot is the four category totals at one point in time.
type Snapshot struct {
	Month      models.Month
	CreditCard decimal.Decimal
	Saving     decimal.Decimal
	Investment decimal.Decimal
	Retirement decimal.Decimal
}

// At returns all category totals of month.
func (t *Totals) At(month models.Month) Snapshot {
	return Snapshot{
		Month:      month,
		CreditCard: t.Get(models.CategoryCreditCard, month),
		Saving:     t.Get(models.CategorySaving, month),
		Investment: t.Get(models.CategoryInvestment, month),
		Retirement: t.Get(models.CategoryRetirement, month),
	}
}

// Snapshots returns one Snapshot per month, ascending.
func (t *Totals) Snapshots() []Snapshot {
	out := make([]Snapshot, len(t.months))
	for i, m := range t.months {
		out[i] = t.At(m)
	}
	return out
}

// December returns the year-end snapshots, ascending by year. Years without
// a December month in the grid are left out.
func (t *Totals) December() []Snapshot {
	var out []Snapshot
	for _, m := range t.months {
		if m.Month == 12 {
			out = append(out, t.At(m))
		}
	}
	return out
}

// Aggregator combines a grid with an account classifier.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate resolves each account's category once and adds every cell into
// its category total.
func (a *Aggregator) Aggregate(grid *balance.Grid, classifier categorizer.Classifier) *Totals {
	months := grid.Months()
	totals := &Totals{
		months: months,
		values: make(map[key]decimal.Decimal, len(months)*len(models.AllCategories)),
	}
	for _, m := range months {
		for _, c := range models.AllCategories {
			totals.values[key{c, m}] = decimal.Zero
		}
	}

	perCategory := make(map[models.AccountCategory]int)
	for _, account := range grid.Accounts() {
		category := classifier.Classify(account)
		perCategory[category]++
		for i, b := range grid.Series(account) {
			k := key{category, months[i]}
			totals.values[k] = totals.values[k].Add(b)
		}
	}

	for _, c := range models.AllCategories {
		a.logger.Debug("Aggregated accounts into category",
			logging.Field{Key: logging.FieldCategory, Value: c.String()},
			logging.Field{Key: logging.FieldAccounts, Value: perCategory[c]})
	}
	return totals
}
