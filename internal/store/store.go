// Package store reads the transaction ledger and persists every derived
// table as delimited files.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fjacquet/budget-metrics/internal/common"
	"fjacquet/budget-metrics/internal/currencyutils"
	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"
	"fjacquet/budget-metrics/internal/report"
)

// Artifact names used in errors and logs.
const (
	ArtifactTransactions    = "transactions"
	ArtifactBalances        = "balance table"
	ArtifactCategorySummary = "category summary"
	ArtifactAnnualSummary   = "annual summary"
	ArtifactMonthlySummary  = "monthly summary"
)

// Store is the persistence boundary of a batch run.
type Store interface {
	ReadTransactions() ([]models.Transaction, error)
	WriteTransactions(txs []models.Transaction) error
	ReadBalanceTable() (*report.BalanceTable, error)
	WriteBalanceTable(table *report.BalanceTable) error
	WriteCategorySummary(rows []report.CategorySummaryRow) error
	WriteAnnualSummary(rows []report.AnnualSummaryRow) error
	WriteMonthlySummary(rows []report.MonthlySummaryRow) error
	WriteOutputs(out Outputs) error
}

// Outputs is a set of derived tables written together. Nil fields are left
// untouched on disk.
type Outputs struct {
	Balances        *report.BalanceTable
	CategorySummary []report.CategorySummaryRow
	AnnualSummary   []report.AnnualSummaryRow
	MonthlySummary  []report.MonthlySummaryRow
}

// Paths locates each artifact on disk.
type Paths struct {
	Transactions    string
	Balances        string
	CategorySummary string
	AnnualSummary   string
	MonthlySummary  string
}

// FileStore implements Store over CSV files.
type FileStore struct {
	paths  Paths
	format common.CSVFormat
	logger logging.Logger
}

// NewFileStore creates a store. A zero delimiter means comma.
func NewFileStore(paths Paths, delimiter rune, logger logging.Logger) *FileStore {
	return &FileStore{
		paths:  paths,
		format: common.NewCSVFormat(delimiter, logger),
		logger: logger,
	}
}

// Paths returns the configured artifact locations.
func (s *FileStore) Paths() Paths {
	return s.paths
}

type transactionRow struct {
	Date     string `csv:"date"`
	Amount   string `csv:"amount"`
	Payee    string `csv:"payee"`
	Category string `csv:"category"`
	Account  string `csv:"account"`
}

func missing(artifact, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &ledgererror.MissingInputError{Artifact: artifact, Path: path, Err: err}
	}
	return fmt.Errorf("reading %s from %s: %w", artifact, path, err)
}

// ReadTransactions loads the ledger. Amounts may carry currency symbols and
// thousands separators. The whole batch is rejected on the
// first row with an unparsable date or amount or without an account.
func (s *FileStore) ReadTransactions() ([]models.Transaction, error) {
	path := s.paths.Transactions
	rows, err := common.ReadCSVFile[transactionRow](s.format, path)
	if err != nil {
		return nil, missing(ArtifactTransactions, path, err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.toTransaction(i + 2)
		if err != nil {
			s.logger.WithError(err).Error("Rejecting transaction batch",
				logging.Field{Key: logging.FieldFile, Value: path})
			return nil, err
		}
		txs = append(txs, tx)
	}

	s.logger.Info("Loaded transactions",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return txs, nil
}

// toTransaction converts a raw row; line is the 1-based file line.
func (r transactionRow) toTransaction(line int) (models.Transaction, error) {
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return models.Transaction{}, &ledgererror.MalformedRecordError{Line: line, Field: "date", Value: r.Date, Err: err}
	}
	amount, err := currencyutils.ParseAmount(r.Amount)
	if err != nil {
		return models.Transaction{}, &ledgererror.MalformedRecordError{Line: line, Field: "amount", Value: r.Amount, Err: err}
	}
	tx := models.Transaction{
		Date:     date,
		Amount:   amount,
		Payee:    r.Payee,
		Category: r.Category,
		Account:  strings.TrimSpace(r.Account),
	}
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, &ledgererror.MalformedRecordError{Line: line, Field: "account", Value: r.Account, Err: err}
	}
	return tx, nil
}

// WriteTransactions writes a ledger snapshot readable by ReadTransactions.
func (s *FileStore) WriteTransactions(txs []models.Transaction) error {
	rows := make([]transactionRow, len(txs))
	for i, tx := range txs {
		rows[i] = transactionRow{
			Date:     tx.Date.Format(models.DateLayout),
			Amount:   tx.Amount.String(),
			Payee:    tx.Payee,
			Category: tx.Category,
			Account:  tx.Account,
		}
	}
	return s.write(ArtifactTransactions, s.paths.Transactions, func() error {
		return common.WriteCSVFile(s.format, s.paths.Transactions, rows)
	})
}

// ReadBalanceTable loads a table written by WriteBalanceTable.
func (s *FileStore) ReadBalanceTable() (*report.BalanceTable, error) {
	path := s.paths.Balances
	records, err := common.ReadRecords(s.format, path)
	if err != nil {
		return nil, missing(ArtifactBalances, path, err)
	}

	table, err := report.ParseBalanceTable(records)
	if err != nil {
		var malformed *ledgererror.MalformedTableError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	s.logger.Info("Loaded balance table",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldAccounts, Value: len(table.Accounts)},
		logging.Field{Key: logging.FieldMonths, Value: len(table.Months)})
	return table, nil
}

// WriteBalanceTable writes the wide account x month table with its category row.
func (s *FileStore) WriteBalanceTable(table *report.BalanceTable) error {
	return s.write(ArtifactBalances, s.paths.Balances, func() error {
		return common.WriteRecords(s.format, s.paths.Balances, table.Records())
	})
}

// WriteCategorySummary writes year-end category totals.
func (s *FileStore) WriteCategorySummary(rows []report.CategorySummaryRow) error {
	return s.write(ArtifactCategorySummary, s.paths.CategorySummary, func() error {
		return common.WriteCSVFile(s.format, s.paths.CategorySummary, rows)
	})
}

// WriteAnnualSummary writes annual metrics.
func (s *FileStore) WriteAnnualSummary(rows []report.AnnualSummaryRow) error {
	return s.write(ArtifactAnnualSummary, s.paths.AnnualSummary, func() error {
		return common.WriteCSVFile(s.format, s.paths.AnnualSummary, rows)
	})
}

// WriteMonthlySummary writes monthly cash flow.
func (s *FileStore) WriteMonthlySummary(rows []report.MonthlySummaryRow) error {
	return s.write(ArtifactMonthlySummary, s.paths.MonthlySummary, func() error {
		return common.WriteCSVFile(s.format, s.paths.MonthlySummary, rows)
	})
}

// WriteOutputs writes every table of out to a temporary file first and
// moves them into place only once all of them are written. A failed write
// leaves every existing table unchanged.
func (s *FileStore) WriteOutputs(out Outputs) error {
	var stages []func() (common.Staged, error)
	var names []string
	add := func(artifact, path string, stage func() (common.Staged, error)) {
		names = append(names, artifact)
		stages = append(stages, func() (common.Staged, error) {
			if path == "" {
				return common.Staged{}, fmt.Errorf("no path configured for %s", artifact)
			}
			staged, err := stage()
			if err != nil {
				return common.Staged{}, fmt.Errorf("writing %s to %s: %w", artifact, path, err)
			}
			return staged, nil
		})
	}

	if out.Balances != nil {
		add(ArtifactBalances, s.paths.Balances, func() (common.Staged, error) {
			return common.StageRecords(s.format, s.paths.Balances, out.Balances.Records())
		})
	}
	if out.CategorySummary != nil {
		add(ArtifactCategorySummary, s.paths.CategorySummary, func() (common.Staged, error) {
			return common.StageCSVFile(s.format, s.paths.CategorySummary, out.CategorySummary)
		})
	}
	if out.AnnualSummary != nil {
		add(ArtifactAnnualSummary, s.paths.AnnualSummary, func() (common.Staged, error) {
			return common.StageCSVFile(s.format, s.paths.AnnualSummary, out.AnnualSummary)
		})
	}
	if out.MonthlySummary != nil {
		add(ArtifactMonthlySummary, s.paths.MonthlySummary, func() (common.Staged, error) {
			return common.StageCSVFile(s.format, s.paths.MonthlySummary, out.MonthlySummary)
		})
	}

	staged := make([]common.Staged, 0, len(stages))
	for _, stage := range stages {
		st, err := stage()
		if err != nil {
			common.DiscardAll(staged)
			s.logger.WithError(err).Error("Discarded staged outputs",
				logging.Field{Key: logging.FieldCount, Value: len(staged)})
			return err
		}
		staged = append(staged, st)
	}
	if err := common.CommitAll(staged); err != nil {
		return err
	}

	s.logger.Info("Wrote outputs",
		logging.Field{Key: "artifacts", Value: strings.Join(names, ", ")})
	return nil
}

func (s *FileStore) write(artifact, path string, fn func() error) error {
	if path == "" {
		return fmt.Errorf("no path configured for %s", artifact)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("writing %s to %s: %w", artifact, path, err)
	}
	return nil
}
