package report

import (
	"testing"

	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/cashflow"
	"fjacquet/budget-metrics/internal/metrics"
	"fjacquet/budget-metrics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualSummaryRows(t *testing.T) {
	rows := AnnualSummaryRows([]metrics.Annual{{
		Year:                   2023,
		TotalDebt:              dec("50"),
		TotalLiquid:            dec("100"),
		TotalInvestment:        decimal.Zero,
		TotalRetirement:        decimal.Zero,
		Income:                 decimal.Zero,
		DebtRatio:              metrics.NewRatio(dec("0.5")),
		LiquidityRatio:         metrics.Infinity,
		NetWorth:               dec("50"),
		RetirementSavingsRatio: metrics.NewRatio(dec("0.16666667")),
		AnnualSavingsRatio:     metrics.NewRatio(decimal.Zero),
		NetWorthChange:         decimal.Zero,
		RetirementChange:       decimal.Zero,
	}})

	require.Len(t, rows, 1)
	assert.Equal(t, "2023", rows[0].Year)
	assert.Equal(t, "-50.00", rows[0].TotalDebt)
	assert.Equal(t, "inf", rows[0].LiquidityRatio)
	assert.Equal(t, "0.5", rows[0].DebtRatio)
	assert.Equal(t, "0", rows[0].AnnualSavingsRatio)
	assert.Equal(t, "0.16666667", rows[0].RetirementSavingsRatio)
}

func TestCategorySummaryRows(t *testing.T) {
	rows := CategorySummaryRows([]aggregate.Snapshot{{
		Month:      models.MustParseMonth("2022-12"),
		CreditCard: dec("-10"),
		Saving:     dec("20"),
		Investment: dec("30"),
		Retirement: dec("40"),
	}})

	assert.Equal(t, []CategorySummaryRow{{
		Year:            "2022",
		CreditCardTotal: "-10.00",
		FreeCashFlow:    "20.00",
		InvestmentTotal: "30.00",
		RetirementTotal: "40.00",
	}}, rows)
}

func TestMonthlySummaryRows(t *testing.T) {
	rows := MonthlySummaryRows([]cashflow.Month{{
		Month:           models.MustParseMonth("2023-01"),
		Income:          dec("3000"),
		Expenses:        dec("-200"),
		NetCashFlow:     dec("2800"),
		Dining:          dec("-200"),
		CreditCardTotal: decimal.Zero,
		DebtChange:      decimal.Zero,
	}})

	assert.Equal(t, []MonthlySummaryRow{{
		Month:           "2023-01",
		Income:          "3000.00",
		Expenses:        "-200.00",
		NetCashFlow:     "2800.00",
		CreditCardTotal: "0.00",
		DebtChange:      "0.00",
		Dining:          "-200.00",
	}}, rows)
}
