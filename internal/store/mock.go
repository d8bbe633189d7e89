package store

import (
	"sync"

	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/models"
	"fjacquet/budget-metrics/internal/report"
)

// MockStore is an in-memory Store for testing.
type MockStore struct {
	mu sync.Mutex

	Transactions    []models.Transaction
	BalanceTable    *report.BalanceTable
	CategorySummary []report.CategorySummaryRow
	AnnualSummary   []report.AnnualSummaryRow
	MonthlySummary  []report.MonthlySummaryRow

	// Error flags for testing error conditions
	ReadTransactionsError error
	WriteError            error
}

// ReadTransactions returns the mock ledger, or a MissingInputError when unset.
func (m *MockStore) ReadTransactions() ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadTransactionsError != nil {
		return nil, m.ReadTransactionsError
	}
	if m.Transactions == nil {
		return nil, &ledgererror.MissingInputError{Artifact: ArtifactTransactions}
	}
	return append([]models.Transaction(nil), m.Transactions...), nil
}

// WriteTransactions stores a copy of txs.
func (m *MockStore) WriteTransactions(txs []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Transactions = append([]models.Transaction(nil), txs...)
	return nil
}

// ReadBalanceTable returns the stored table, or a MissingInputError when unset.
func (m *MockStore) ReadBalanceTable() (*report.BalanceTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BalanceTable == nil {
		return nil, &ledgererror.MissingInputError{Artifact: ArtifactBalances}
	}
	return m.BalanceTable, nil
}

// WriteBalanceTable stores the table.
func (m *MockStore) WriteBalanceTable(table *report.BalanceTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.BalanceTable = table
	return nil
}

// WriteCategorySummary stores the rows.
func (m *MockStore) WriteCategorySummary(rows []report.CategorySummaryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.CategorySummary = rows
	return nil
}

// WriteAnnualSummary stores the rows.
func (m *MockStore) WriteAnnualSummary(rows []report.AnnualSummaryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.AnnualSummary = rows
	return nil
}

// WriteMonthlySummary stores the rows.
func (m *MockStore) WriteMonthlySummary(rows []report.MonthlySummaryRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.MonthlySummary = rows
	return nil
}

// WriteOutputs stores every non-nil table, or nothing when WriteError is set.
func (m *MockStore) WriteOutputs(out Outputs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	if out.Balances != nil {
		m.BalanceTable = out.Balances
	}
	if out.CategorySummary != nil {
		m.CategorySummary = out.CategorySummary
	}
	if out.AnnualSummary != nil {
		m.AnnualSummary = out.AnnualSummary
	}
	if out.MonthlySummary != nil {
		m.MonthlySummary = out.MonthlySummary
	}
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MockStore)(nil)
)
