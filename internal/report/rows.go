package report

import (
	"strconv"

	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/cashflow"
	"fjacquet/budget-metrics/internal/metrics"
)

// CategorySummaryRow is one year-end line of category totals.
type CategorySummaryRow struct {
	Year            string `csv:"Year"`
	CreditCardTotal string `csv:"Credit Card Total"`
	FreeCashFlow    string `csv:"Free Cash Flow"`
	InvestmentTotal string `csv:"Investment Total"`
	RetirementTotal string `csv:"Retirement Total"`
}

// AnnualSummaryRow is one line of the annual metrics table. Ratios are plain
// fractions; an unbounded liquidity ratio reads "inf".
type AnnualSummaryRow struct {
	Year                   string `csv:"Year"`
	DebtRatio              string `csv:"Debt Ratio"`
	LiquidityRatio         string `csv:"Liquidity Ratio"`
	NetWorth               string `csv:"Net Worth"`
	RetirementSavingsRatio string `csv:"Retirement Savings %"`
	AnnualSavingsRatio     string `csv:"Annual Savings % vs Income"`
	TotalDebt              string `csv:"Total Debt"`
	TotalLiquid            string `csv:"Total Liquid Asset"`
	TotalInvestment        string `csv:"Total Investment"`
	TotalRetirement        string `csv:"Total Retirement"`
	Income                 string `csv:"Income"`
	NetWorthChange         string `csv:"Net Worth Change"`
	RetirementChange       string `csv:"Retirement Change"`
}

// MonthlySummaryRow is one line of the monthly financial summary.
type MonthlySummaryRow struct {
	Month           string `csv:"month"`
	Income          string `csv:"Income"`
	Expenses        string `csv:"Expenses"`
	NetCashFlow     string `csv:"Net Cash Flow"`
	CreditCardTotal string `csv:"Credit Card Total"`
	DebtChange      string `csv:"Debt Change"`
	Dining          string `csv:"Restaurant & Dining"`
}

// CategorySummaryRows renders December snapshots, ascending by year.
func CategorySummaryRows(december []aggregate.Snapshot) []CategorySummaryRow {
	rows := make([]CategorySummaryRow, len(december))
	for i, s := range december {
		rows[i] = CategorySummaryRow{
			Year:            strconv.Itoa(s.Month.Year),
			CreditCardTotal: s.CreditCard.StringFixed(2),
			FreeCashFlow:    s.Saving.StringFixed(2),
			InvestmentTotal: s.Investment.StringFixed(2),
			RetirementTotal: s.Retirement.StringFixed(2),
		}
	}
	return rows
}

// AnnualSummaryRows renders annual records. Total Debt is written negated,
// the way credit card balances are stored.
func AnnualSummaryRows(records []metrics.Annual) []AnnualSummaryRow {
	rows := make([]AnnualSummaryRow, len(records))
	for i, r := range records {
		rows[i] = AnnualSummaryRow{
			Year:                   strconv.Itoa(r.Year),
			DebtRatio:              r.DebtRatio.String(),
			LiquidityRatio:         r.LiquidityRatio.String(),
			NetWorth:               r.NetWorth.StringFixed(2),
			RetirementSavingsRatio: r.RetirementSavingsRatio.String(),
			AnnualSavingsRatio:     r.AnnualSavingsRatio.String(),
			TotalDebt:              r.TotalDebt.Neg().StringFixed(2),
			TotalLiquid:            r.TotalLiquid.StringFixed(2),
			TotalInvestment:        r.TotalInvestment.StringFixed(2),
			TotalRetirement:        r.TotalRetirement.StringFixed(2),
			Income:                 r.Income.StringFixed(2),
			NetWorthChange:         r.NetWorthChange.StringFixed(2),
			RetirementChange:       r.RetirementChange.StringFixed(2),
		}
	}
	return rows
}

// MonthlySummaryRows renders monthly cash flow, ascending by month.
func MonthlySummaryRows(months []cashflow.Month) []MonthlySummaryRow {
	rows := make([]MonthlySummaryRow, len(months))
	for i, m := range months {
		rows[i] = MonthlySummaryRow{
			Month:           m.Month.String(),
			Income:          m.Income.StringFixed(2),
			Expenses:        m.Expenses.StringFixed(2),
			NetCashFlow:     m.NetCashFlow.StringFixed(2),
			CreditCardTotal: m.CreditCardTotal.StringFixed(2),
			DebtChange:      m.DebtChange.StringFixed(2),
			Dining:          m.Dining.StringFixed(2),
		}
	}
	return rows
}
