// Package pipeline chains balance reconstruction, category aggregation,
// annual metrics and monthly cash flow into one batch computation.
package pipeline

import (
	"fmt"

	"fjacquet/budget-metrics/internal/aggregate"
	"fjacquet/budget-metrics/internal/balance"
	"fjacquet/budget-metrics/internal/cashflow"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/metrics"
	"fjacquet/budget-metrics/internal/models"
	"fjacquet/budget-metrics/internal/report"

	"github.com/shopspring/decimal"
)

// Annual is the output of the annual analysis.
type Annual struct {
	Totals  *aggregate.Totals
	Income  map[int]decimal.Decimal
	Metrics *metrics.Series
}

// CategorySummary returns the year-end category totals as table rows.
func (a *Annual) CategorySummary() []report.CategorySummaryRow {
	return report.CategorySummaryRows(a.Totals.December())
}

// AnnualSummary returns the annual metrics as table rows.
func (a *Annual) AnnualSummary() []report.AnnualSummaryRow {
	return report.AnnualSummaryRows(a.Metrics.Records())
}

// Result holds every artifact derived in one run. It is either complete or
// not returned at all.
type Result struct {
	AsOf     models.Month
	Grid     *balance.Grid
	Balances *report.BalanceTable
	Annual   *Annual
	Monthly  []cashflow.Month
}

// MonthlySummary returns the monthly cash flow as table rows.
func (r *Result) MonthlySummary() []report.MonthlySummaryRow {
	return report.MonthlySummaryRows(r.Monthly)
}

// Pipeline holds the stage components. It keeps no state between runs.
type Pipeline struct {
	classifier categorizer.Classifier
	tagger     *categorizer.Tagger
	builder    *balance.Builder
	aggregator *aggregate.Aggregator
	annual     *metrics.Engine
	cashflow   *cashflow.Engine
	logger     logging.Logger
}

// New creates a pipeline with the given classification rules.
func New(classifier categorizer.Classifier, tagger *categorizer.Tagger, logger logging.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		tagger:     tagger,
		builder:    balance.NewBuilder(logger),
		aggregator: aggregate.NewAggregator(logger),
		annual:     metrics.NewEngine(logger),
		cashflow:   cashflow.NewEngine(logger),
		logger:     logger,
	}
}

func requireTransactions(txs []models.Transaction) error {
	if txs == nil {
		return &ledgererror.MissingInputError{Artifact: "transactions"}
	}
	return nil
}

// Balances builds the balance grid and its table with the category row.
func (p *Pipeline) Balances(txs []models.Transaction, asOf models.Month) (*balance.Grid, *report.BalanceTable, error) {
	if err := requireTransactions(txs); err != nil {
		return nil, nil, err
	}
	grid, err := p.builder.Build(txs, asOf)
	if err != nil {
		return nil, nil, err
	}
	return grid, report.NewBalanceTable(grid, p.classifier), nil
}

// AnalyzeAnnual computes annual metrics from a persisted balance table. The
// table's category row decides account categories; the transactions only
// provide income.
func (p *Pipeline) AnalyzeAnnual(table *report.BalanceTable, txs []models.Transaction, asOf models.Month) (*Annual, error) {
	if table == nil {
		return nil, &ledgererror.MissingInputError{Artifact: "balance table"}
	}
	if err := requireTransactions(txs); err != nil {
		return nil, err
	}
	grid, err := table.Grid()
	if err != nil {
		return nil, fmt.Errorf("rebuilding grid from balance table: %w", err)
	}
	return p.analyze(grid, table.Classifier(), p.tagger.TagAll(txs), asOf), nil
}

// Monthly computes the monthly cash flow with the credit card debt trend.
func (p *Pipeline) Monthly(txs []models.Transaction, asOf models.Month) ([]cashflow.Month, error) {
	if err := requireTransactions(txs); err != nil {
		return nil, err
	}
	grid, err := p.builder.Build(txs, asOf)
	if err != nil {
		return nil, err
	}
	totals := p.aggregator.Aggregate(grid, p.classifier)
	return p.monthly(p.tagger.TagAll(txs), totals, asOf), nil
}

// Run derives every artifact from one transaction set.
func (p *Pipeline) Run(txs []models.Transaction, asOf models.Month) (*Result, error) {
	grid, table, err := p.Balances(txs, asOf)
	if err != nil {
		return nil, err
	}
	tagged := p.tagger.TagAll(txs)
	annual := p.analyze(grid, p.classifier, tagged, asOf)

	result := &Result{
		AsOf:     asOf,
		Grid:     grid,
		Balances: table,
		Annual:   annual,
		Monthly:  p.monthly(tagged, annual.Totals, asOf),
	}
	p.logger.Info("Pipeline run complete",
		logging.Field{Key: logging.FieldAsOf, Value: asOf.String()},
		logging.Field{Key: logging.FieldAccounts, Value: len(grid.Accounts())},
		logging.Field{Key: "years", Value: annual.Metrics.Len()},
		logging.Field{Key: logging.FieldMonths, Value: len(result.Monthly)})
	return result, nil
}

func (p *Pipeline) analyze(grid *balance.Grid, classifier categorizer.Classifier, tagged []categorizer.TaggedTransaction, asOf models.Month) *Annual {
	totals := p.aggregator.Aggregate(grid, classifier)
	income := metrics.AnnualIncome(tagged, asOf)
	return &Annual{
		Totals:  totals,
		Income:  income,
		Metrics: p.annual.Compute(totals.December(), income),
	}
}

func (p *Pipeline) monthly(tagged []categorizer.TaggedTransaction, totals *aggregate.Totals, asOf models.Month) []cashflow.Month {
	rows := p.cashflow.Compute(tagged, asOf)
	return cashflow.JoinDebtTrend(rows, cashflow.DebtTrend(totals))
}
