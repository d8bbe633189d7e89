// Package report shapes pipeline results into ordered tables with named
// columns for persistence and presentation.
package report

import (
	"fmt"

	"fjacquet/budget-metrics/internal/balance"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// MonthColumn is the header of the first column of the balance table.
	MonthColumn = "month"
	// CategoryRowLabel marks the metadata row carrying account categories.
	CategoryRowLabel = "Category"
)

// BalanceTable is the account x month grid in tabular form: one column per
// account, a category metadata row, then one row per month.
type BalanceTable struct {
	Accounts   []string
	Categories []models.AccountCategory
	Months     []models.Month
	// Balances[i][j] is the balance of Accounts[j] at Months[i].
	Balances [][]decimal.Decimal
}

// NewBalanceTable lays out grid with categories resolved by classifier.
func NewBalanceTable(grid *balance.Grid, classifier categorizer.Classifier) *BalanceTable {
	accounts := grid.Accounts()
	months := grid.Months()

	t := &BalanceTable{
		Accounts:   accounts,
		Categories: make([]models.AccountCategory, len(accounts)),
		Months:     months,
		Balances:   make([][]decimal.Decimal, len(months)),
	}
	for j, account := range accounts {
		t.Categories[j] = classifier.Classify(account)
	}
	for i, m := range months {
		row := make([]decimal.Decimal, len(accounts))
		for j, account := range accounts {
			row[j], _ = grid.Balance(account, m)
		}
		t.Balances[i] = row
	}
	return t
}

// IsCategoryRow reports whether a raw record is the category metadata row
// rather than balance data.
func IsCategoryRow(record []string) bool {
	return len(record) > 0 && record[0] == CategoryRowLabel
}

// Records renders the table: header, category row, then month rows with
// balances fixed to two decimals.
func (t *BalanceTable) Records() [][]string {
	records := make([][]string, 0, len(t.Months)+2)

	header := append([]string{MonthColumn}, t.Accounts...)
	records = append(records, header)

	categories := make([]string, 0, len(t.Categories)+1)
	categories = append(categories, CategoryRowLabel)
	for _, c := range t.Categories {
		categories = append(categories, c.String())
	}
	records = append(records, categories)

	for i, m := range t.Months {
		row := make([]string, 0, len(t.Accounts)+1)
		row = append(row, m.String())
		for _, b := range t.Balances[i] {
			row = append(row, b.StringFixed(2))
		}
		records = append(records, row)
	}
	return records
}

// ParseBalanceTable reads records produced by Records. Errors are
// *ledgererror.MalformedTableError with an empty Path.
func ParseBalanceTable(records [][]string) (*BalanceTable, error) {
	malformed := func(row int, format string, args ...interface{}) error {
		return &ledgererror.MalformedTableError{Row: row, Reason: fmt.Sprintf(format, args...)}
	}

	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != MonthColumn {
		return nil, malformed(1, "missing '%s' header", MonthColumn)
	}
	accounts := append([]string(nil), records[0][1:]...)

	if len(records) < 2 || !IsCategoryRow(records[1]) {
		return nil, malformed(2, "missing '%s' row", CategoryRowLabel)
	}
	if len(records[1]) != len(accounts)+1 {
		return nil, malformed(2, "expected %d columns, got %d", len(accounts)+1, len(records[1]))
	}
	categories := make([]models.AccountCategory, len(accounts))
	for j, label := range records[1][1:] {
		c, err := models.ParseAccountCategory(label)
		if err != nil {
			return nil, malformed(2, "account %s: %v", accounts[j], err)
		}
		categories[j] = c
	}

	t := &BalanceTable{Accounts: accounts, Categories: categories}
	for i, record := range records[2:] {
		row := i + 3
		if len(record) != len(accounts)+1 {
			return nil, malformed(row, "expected %d columns, got %d", len(accounts)+1, len(record))
		}
		m, err := models.ParseMonth(record[0])
		if err != nil {
			return nil, malformed(row, "%v", err)
		}
		balances := make([]decimal.Decimal, len(accounts))
		for j, cell := range record[1:] {
			b, err := models.ParseDecimal(cell)
			if err != nil {
				return nil, malformed(row, "account %s: %v", accounts[j], err)
			}
			balances[j] = b
		}
		t.Months = append(t.Months, m)
		t.Balances = append(t.Balances, balances)
	}
	return t, nil
}

// Grid rebuilds the balance grid from the table.
func (t *BalanceTable) Grid() (*balance.Grid, error) {
	series := make(map[string][]decimal.Decimal, len(t.Accounts))
	for j, account := range t.Accounts {
		s := make([]decimal.Decimal, len(t.Months))
		for i := range t.Months {
			s[i] = t.Balances[i][j]
		}
		series[account] = s
	}
	return balance.NewGrid(t.Months, series)
}

// Classifier returns a classifier answering from the category row.
func (t *BalanceTable) Classifier() categorizer.StaticClassifier {
	categories := make(map[string]models.AccountCategory, len(t.Accounts))
	for j, account := range t.Accounts {
		categories[account] = t.Categories[j]
	}
	return categorizer.StaticClassifier{Categories: categories, Fallback: models.CategorySaving}
}
