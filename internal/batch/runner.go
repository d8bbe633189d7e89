// Package batch runs the pipeline against the persisted artifacts: it loads
// the inputs from a store, computes, and writes the derived tables back.
package batch

import (
	"fmt"

	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"
	"fjacquet/budget-metrics/internal/pipeline"
	"fjacquet/budget-metrics/internal/store"
)

// Runner executes one batch job per call. Every job computes all of its
// outputs before writing, and a job's outputs are replaced together or not
// at all.
type Runner struct {
	store    store.Store
	pipeline *pipeline.Pipeline
	logger   logging.Logger
}

// NewRunner creates a runner.
func NewRunner(s store.Store, p *pipeline.Pipeline, logger logging.Logger) *Runner {
	return &Runner{store: s, pipeline: p, logger: logger}
}

// Balances rebuilds the balance table from the ledger.
func (r *Runner) Balances(asOf models.Month) error {
	log := r.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "balances"},
		logging.Field{Key: logging.FieldAsOf, Value: asOf.String()})

	txs, err := r.store.ReadTransactions()
	if err != nil {
		return err
	}
	_, table, err := r.pipeline.Balances(txs, asOf)
	if err != nil {
		return fmt.Errorf("building balances: %w", err)
	}
	if err := r.store.WriteBalanceTable(table); err != nil {
		return err
	}
	log.Info("Balance table written",
		logging.Field{Key: logging.FieldAccounts, Value: len(table.Accounts)},
		logging.Field{Key: logging.FieldMonths, Value: len(table.Months)})
	return nil
}

// Annual derives the year-end category summary and annual metrics from the
// persisted balance table and the ledger's income.
func (r *Runner) Annual(asOf models.Month) error {
	log := r.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "annual"},
		logging.Field{Key: logging.FieldAsOf, Value: asOf.String()})

	table, err := r.store.ReadBalanceTable()
	if err != nil {
		return err
	}
	txs, err := r.store.ReadTransactions()
	if err != nil {
		return err
	}
	annual, err := r.pipeline.AnalyzeAnnual(table, txs, asOf)
	if err != nil {
		return fmt.Errorf("analyzing annual metrics: %w", err)
	}

	categories := annual.CategorySummary()
	metrics := annual.AnnualSummary()
	if err := r.store.WriteOutputs(store.Outputs{
		CategorySummary: categories,
		AnnualSummary:   metrics,
	}); err != nil {
		return err
	}
	log.Info("Annual summaries written", logging.Field{Key: logging.FieldCount, Value: len(metrics)})
	return nil
}

// Monthly derives the monthly cash flow table from the ledger.
func (r *Runner) Monthly(asOf models.Month) error {
	log := r.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "monthly"},
		logging.Field{Key: logging.FieldAsOf, Value: asOf.String()})

	txs, err := r.store.ReadTransactions()
	if err != nil {
		return err
	}
	months, err := r.pipeline.Monthly(txs, asOf)
	if err != nil {
		return fmt.Errorf("computing monthly cash flow: %w", err)
	}
	rows := (&pipeline.Result{Monthly: months}).MonthlySummary()
	if err := r.store.WriteMonthlySummary(rows); err != nil {
		return err
	}
	log.Info("Monthly summary written", logging.Field{Key: logging.FieldMonths, Value: len(rows)})
	return nil
}

// All runs every stage from the ledger in one pass and writes all four
// tables. The annual stage uses the freshly built grid, not a persisted one.
func (r *Runner) All(asOf models.Month) (*pipeline.Result, error) {
	log := r.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "run"},
		logging.Field{Key: logging.FieldAsOf, Value: asOf.String()})

	txs, err := r.store.ReadTransactions()
	if err != nil {
		return nil, err
	}
	result, err := r.pipeline.Run(txs, asOf)
	if err != nil {
		return nil, fmt.Errorf("running pipeline: %w", err)
	}

	if err := r.store.WriteOutputs(store.Outputs{
		Balances:        result.Balances,
		CategorySummary: result.Annual.CategorySummary(),
		AnnualSummary:   result.Annual.AnnualSummary(),
		MonthlySummary:  result.MonthlySummary(),
	}); err != nil {
		return nil, err
	}
	log.Info("All artifacts written")
	return result, nil
}
