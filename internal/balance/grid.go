// Package balance reconstructs dense per-account monthly running balances
// from a transaction ledger.
package balance

import (
	"fmt"
	"sort"

	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
)

// Grid holds a running balance for every (account, month) pair in a
// contiguous month range. It is immutable once built.
type Grid struct {
	accounts []string
	months   []models.Month
	index    map[models.Month]int
	balances map[string][]decimal.Decimal
}

// NewGrid wraps precomputed running balances. Every account must carry one
// balance per month, in month order.
func NewGrid(months []models.Month, balances map[string][]decimal.Decimal) (*Grid, error) {
	for i := 1; i < len(months); i++ {
		if months[i] != months[i-1].Next() {
			return nil, fmt.Errorf("months are not contiguous at %s", months[i])
		}
	}

	g := &Grid{
		months:   append([]models.Month(nil), months...),
		index:    make(map[models.Month]int, len(months)),
		balances: make(map[string][]decimal.Decimal, len(balances)),
	}
	for i, m := range g.months {
		g.index[m] = i
	}
	for account, series := range balances {
		if len(series) != len(months) {
			return nil, fmt.Errorf("account %s has %d balances for %d months", account, len(series), len(months))
		}
		g.accounts = append(g.accounts, account)
		g.balances[account] = append([]decimal.Decimal(nil), series...)
	}
	sort.Strings(g.accounts)
	return g, nil
}

// Accounts returns the account names in ascending order.
func (g *Grid) Accounts() []string {
	return append([]string(nil), g.accounts...)
}

// Months returns the month range of the grid in ascending order.
func (g *Grid) Months() []models.Month {
	return append([]models.Month(nil), g.months...)
}

// Balance returns the running balance of account at the end of month.
func (g *Grid) Balance(account string, month models.Month) (decimal.Decimal, bool) {
	series, ok := g.balances[account]
	if !ok {
		return decimal.Zero, false
	}
	i, ok := g.index[month]
	if !ok {
		return decimal.Zero, false
	}
	return series[i], true
}

// Series returns the running balances of account in month order.
func (g *Grid) Series(account string) []decimal.Decimal {
	return append([]decimal.Decimal(nil), g.balances[account]...)
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.accounts) * len(g.months)
}

// IsEmpty reports whether the grid has no cells.
func (g *Grid) IsEmpty() bool {
	return g.Len() == 0
}

// Each calls fn for every cell, accounts in order and months ascending.
func (g *Grid) Each(fn func(account string, month models.Month, balance decimal.Decimal)) {
	for _, account := range g.accounts {
		for i, m := range g.months {
			fn(account, m, g.balances[account][i])
		}
	}
}

// Builder turns transactions into a Grid.
type Builder struct {
	logger logging.Logger
}

// NewBuilder creates a grid builder.
func NewBuilder(logger logging.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build excludes every transaction dated in or after asOf, sums the rest per
// (account, month), fills every account over the global month range and
// accumulates. A zero asOf disables the cutoff. The whole batch is rejected
// on the first invalid transaction.
func (b *Builder) Build(txs []models.Transaction, asOf models.Month) (*Grid, error) {
	sums := make(map[string]map[models.Month]decimal.Decimal)
	var first, last models.Month
	excluded := 0

	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, &ledgererror.MalformedRecordError{
				Line:  i + 1,
				Field: "transaction",
				Value: tx.Payee,
				Err:   err,
			}
		}

		month := tx.Month()
		if !asOf.IsZero() && !month.Before(asOf) {
			excluded++
			continue
		}

		cells, ok := sums[tx.Account]
		if !ok {
			cells = make(map[models.Month]decimal.Decimal)
			sums[tx.Account] = cells
		}
		cells[month] = cells[month].Add(tx.Amount)

		if first.IsZero() || month.Before(first) {
			first = month
		}
		if last.IsZero() || month.After(last) {
			last = month
		}
	}

	if excluded > 0 {
		b.logger.Debug("Excluded transactions from open months",
			logging.Field{Key: logging.FieldExcluded, Value: excluded},
			logging.Field{Key: logging.FieldAsOf, Value: asOf.String()})
	}

	if len(sums) == 0 {
		b.logger.Info("No transactions to build balances from")
		return NewGrid(nil, nil)
	}

	months := models.MonthRange(first, last)
	balances := make(map[string][]decimal.Decimal, len(sums))
	for account, cells := range sums {
		series := make([]decimal.Decimal, len(months))
		running := decimal.Zero
		for i, m := range months {
			running = running.Add(cells[m])
			series[i] = running
		}
		balances[account] = series
	}

	grid, err := NewGrid(months, balances)
	if err != nil {
		return nil, fmt.Errorf("building balance grid: %w", err)
	}

	b.logger.Info("Built balance grid",
		logging.Field{Key: logging.FieldAccounts, Value: len(balances)},
		logging.Field{Key: logging.FieldMonths, Value: len(months)})
	return grid, nil
}
