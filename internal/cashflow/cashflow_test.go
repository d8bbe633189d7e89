package cashflow

import (
	"testing"
	"time"

	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/balance"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return models.MustParseDecimal(s) }

func tagged(t *testing.T, txs ...models.Transaction) []categorizer.TaggedTransaction {
	t.Helper()
	tagger, err := categorizer.NewTagger(categorizer.DefaultTagRules())
	require.NoError(t, err)
	return tagger.TagAll(txs)
}

func tx(t *testing.T, date, amount, payee string) models.Transaction {
	t.Helper()
	d, err := time.Parse(models.DateLayout, date)
	require.NoError(t, err)
	return models.Transaction{Date: d, Amount: dec(amount), Payee: payee, Account: "AcctA"}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestCompute_Scenario(t *testing.T) {
	engine := NewEngine(logging.NewMockLogger())
	rows := engine.Compute(tagged(t,
		tx(t, "2023-01-10", "3000", "Payroll"),
		tx(t, "2023-01-15", "-200", "Pizza Place"),
		tx(t, "2023-12-01", "-100", "Transfer to savings"),
	), models.MustParseMonth("2024-02"))

	require.Len(t, rows, 12)

	jan := rows[0]
	assert.Equal(t, models.MustParseMonth("2023-01"), jan.Month)
	assertDecimal(t, "3000", jan.Income)
	assertDecimal(t, "-200", jan.Expenses)
	assertDecimal(t, "2800", jan.NetCashFlow)
	assertDecimal(t, "-200", jan.Dining)

	dec23 := rows[11]
	assert.Equal(t, models.MustParseMonth("2023-12"), dec23.Month)
	assert.True(t, dec23.Income.IsZero())
	assert.True(t, dec23.Expenses.IsZero())
	assert.True(t, dec23.NetCashFlow.IsZero())
	assert.True(t, dec23.Dining.IsZero())

	for _, row := range rows[1:11] {
		assert.True(t, row.NetCashFlow.IsZero(), row.Month.String())
	}
}

func TestCompute_ExcludesOpenMonth(t *testing.T) {
	engine := NewEngine(logging.NewMockLogger())
	rows := engine.Compute(tagged(t,
		tx(t, "2023-05-01", "-10", "Grocery"),
		tx(t, "2023-06-01", "-999", "Grocery"),
	), models.MustParseMonth("2023-06"))

	require.Len(t, rows, 1)
	assertDecimal(t, "-10", rows[0].Expenses)
}

func TestCompute_Empty(t *testing.T) {
	engine := NewEngine(logging.NewMockLogger())
	assert.Empty(t, engine.Compute(nil, models.Month{}))
}

func TestDebtTrendJoin(t *testing.T) {
	months := models.MonthRange(models.MustParseMonth("2023-01"), models.MustParseMonth("2023-03"))
	grid, err := balance.NewGrid(months, map[string][]decimal.Decimal{
		"Chase CC": {dec("-100"), dec("-150"), dec("-50")},
		"Checking": {dec("10"), dec("10"), dec("10")},
	})
	require.NoError(t, err)
	totals := aggregate.NewAggregator(logging.NewMockLogger()).
		Aggregate(grid, categorizer.NewAccountClassifier(categorizer.DefaultAccountKeywords()))

	trend := DebtTrend(totals)
	require.Len(t, trend, 3)
	assertDecimal(t, "0", trend[0].Change)
	assertDecimal(t, "-50", trend[1].Change)
	assertDecimal(t, "100", trend[2].Change)

	rows := []Month{
		{Month: models.MustParseMonth("2023-02")},
		{Month: models.MustParseMonth("2023-04"), CreditCardTotal: decimal.Zero, DebtChange: decimal.Zero},
	}
	joined := JoinDebtTrend(rows, trend)

	assertDecimal(t, "-150", joined[0].CreditCardTotal)
	assertDecimal(t, "-50", joined[0].DebtChange)
	assert.True(t, joined[1].CreditCardTotal.IsZero())
	assert.True(t, joined[1].DebtChange.IsZero())
}
