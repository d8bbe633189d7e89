// Package cashflow derives monthly income, expense, net cash flow and dining
// series from tagged transactions, with the credit card debt trend joined on.
package cashflow

import (
	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
)

// Month is the cash flow of one calendar month. Expenses and dining are
// signed sums, so outflows are negative.
type Month struct {
	Month           models.Month
	Income          decimal.Decimal
	Expenses        decimal.Decimal
	NetCashFlow     decimal.Decimal
	Dining          decimal.Decimal
	CreditCardTotal decimal.Decimal
	DebtChange      decimal.Decimal
}

// DebtPoint is the credit card total at the end of a month and its change
// against the previous month.
type DebtPoint struct {
	Month  models.Month
	Total  decimal.Decimal
	Change decimal.Decimal
}

// DebtTrend reads the credit card totals month by month. The first month has
// a change of zero.
func DebtTrend(totals *aggregate.Totals) []DebtPoint {
	months := totals.Months()
	points := make([]DebtPoint, len(months))
	for i, m := range months {
		total := totals.Get(models.CategoryCreditCard, m)
		change := decimal.Zero
		if i > 0 {
			change = total.Sub(points[i-1].Total)
		}
		points[i] = DebtPoint{Month: m, Total: total, Change: change}
	}
	return points
}

// Engine computes monthly cash flow.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a cash flow engine.
func NewEngine(logger logging.Logger) *Engine {
	return &Engine{logger: logger}
}

// Compute returns one row per month in the contiguous range spanned by the
// transactions, ascending. Transactions in or after asOf are ignored; a zero
// asOf keeps everything. Months without activity in a series read zero.
func (e *Engine) Compute(txs []categorizer.TaggedTransaction, asOf models.Month) []Month {
	type sums struct {
		income, expenses, dining decimal.Decimal
	}
	byMonth := make(map[models.Month]*sums)
	var first, last models.Month

	for _, tx := range txs {
		m := tx.Month()
		if !asOf.IsZero() && !m.Before(asOf) {
			continue
		}
		s, ok := byMonth[m]
		if !ok {
			s = &sums{income: decimal.Zero, expenses: decimal.Zero, dining: decimal.Zero}
			byMonth[m] = s
		}
		if tx.Roles.Has(categorizer.RoleIncome) {
			s.income = s.income.Add(tx.Amount)
		}
		if tx.IsExpense() {
			s.expenses = s.expenses.Add(tx.Amount)
		}
		if tx.Roles.Has(categorizer.RoleDining) {
			s.dining = s.dining.Add(tx.Amount)
		}
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
	}

	if len(byMonth) == 0 {
		e.logger.Info("No transactions for monthly cash flow")
		return nil
	}

	months := models.MonthRange(first, last)
	rows := make([]Month, len(months))
	for i, m := range months {
		row := Month{
			Month:           m,
			Income:          decimal.Zero,
			Expenses:        decimal.Zero,
			Dining:          decimal.Zero,
			CreditCardTotal: decimal.Zero,
			DebtChange:      decimal.Zero,
		}
		if s, ok := byMonth[m]; ok {
			row.Income = s.income
			row.Expenses = s.expenses
			row.Dining = s.dining
		}
		row.NetCashFlow = row.Income.Add(row.Expenses)
		rows[i] = row
	}

	e.logger.Info("Computed monthly cash flow", logging.Field{Key: logging.FieldMonths, Value: len(rows)})
	return rows
}

// JoinDebtTrend fills the debt columns of rows by month. Months missing from
// the trend keep zero.
func JoinDebtTrend(rows []Month, trend []DebtPoint) []Month {
	byMonth := make(map[models.Month]DebtPoint, len(trend))
	for _, p := range trend {
		byMonth[p.Month] = p
	}
	out := make([]Month, len(rows))
	for i, row := range rows {
		if p, ok := byMonth[row.Month]; ok {
			row.CreditCardTotal = p.Total
			row.DebtChange = p.Change
		}
		out[i] = row
	}
	return out
}
