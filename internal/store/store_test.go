package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/budget-metrics/internal/balance"
	"fjacquet/budget-metrics/internal/categorizer"
	"fjacquet/budget-metrics/internal/ledgererror"
	"fjacquet/budget-metrics/internal/logging"
	"fjacquet/budget-metrics/internal/models"
	"fjacquet/budget-metrics/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// newTestStore returns a FileStore whose artifacts live in dir
func newTestStore(dir string, delimiter rune) *FileStore {
	return NewFileStore(Paths{
		Transactions:    filepath.Join(dir, "transactions.csv"),
		Balances:        filepath.Join(dir, "monthly_summary.csv"),
		CategorySummary: filepath.Join(dir, "monthly_category_summary.csv"),
		AnnualSummary:   filepath.Join(dir, "annual_summary.csv"),
		MonthlySummary:  filepath.Join(dir, "monthly_financial_summary.csv"),
	}, delimiter, logging.NewMockLogger())
}

func TestReadTransactions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "transactions.csv"),
		"date,amount,payee,category,account\n"+
			"2023-01-10,3000.00,Payroll,Income,Checking\n"+
			"2023-01-15,-12.5,Pizza Place,Dining,Chase CC\n"+
			"2023-02-01,\"-$1,234.50\",Rent,Housing,Checking\n")

	txs, err := newTestStore(dir, ',').ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "Payroll", txs[0].Payee)
	assert.Equal(t, models.MustParseMonth("2023-01"), txs[0].Month())
	assert.True(t, decimal.RequireFromString("3000").Equal(txs[0].Amount))
	assert.True(t, decimal.RequireFromString("-12.5").Equal(txs[1].Amount))
	assert.Equal(t, "Chase CC", txs[1].Account)
	assert.Equal(t, "Dining", txs[1].Category)
	assert.True(t, decimal.RequireFromString("-1234.50").Equal(txs[2].Amount))
}

func TestReadTransactions_Missing(t *testing.T) {
	_, err := newTestStore(t.TempDir(), ',').ReadTransactions()

	var missing *ledgererror.MissingInputError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, ArtifactTransactions, missing.Artifact)
}

func TestReadTransactions_RejectsBatch(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		field string
	}{
		{"bad date", "01/10/2023,1,P,C,A", "date"},
		{"bad amount", "2023-01-10,abc,P,C,A", "amount"},
		{"no account", "2023-01-10,1,P,C,", "account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "transactions.csv"),
				"date,amount,payee,category,account\n2023-01-01,1,ok,C,A\n"+tt.row+"\n")

			txs, err := newTestStore(dir, ',').ReadTransactions()

			assert.Nil(t, txs)
			var malformed *ledgererror.MalformedRecordError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, 3, malformed.Line)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestTransactions_RoundTripWithDelimiter(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ';')
	txs := []models.Transaction{{
		Date:    mustDate(t, "2023-02-03"),
		Amount:  decimal.RequireFromString("-4.20"),
		Payee:   "Cafe; Corner",
		Account: "Checking",
	}}

	require.NoError(t, s.WriteTransactions(txs))
	back, err := s.ReadTransactions()
	require.NoError(t, err)

	require.Len(t, back, 1)
	assert.Equal(t, "Cafe; Corner", back[0].Payee)
	assert.True(t, txs[0].Amount.Equal(back[0].Amount))
	assert.True(t, txs[0].Date.Equal(back[0].Date))
}

func TestBalanceTable_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ',')

	months := models.MonthRange(models.MustParseMonth("2023-11"), models.MustParseMonth("2023-12"))
	grid, err := balance.NewGrid(months, map[string][]decimal.Decimal{
		"Checking":        {decimal.NewFromInt(10), decimal.NewFromInt(20)},
		"Fidelity 401(k)": {decimal.NewFromInt(100), decimal.NewFromInt(110)},
	})
	require.NoError(t, err)
	table := report.NewBalanceTable(grid, categorizer.NewAccountClassifier(categorizer.DefaultAccountKeywords()))

	require.NoError(t, s.WriteBalanceTable(table))

	data, err := os.ReadFile(s.Paths().Balances)
	require.NoError(t, err)
	assert.Equal(t,
		"month,Checking,Fidelity 401(k)\nCategory,Saving,Retirement\n2023-11,10.00,100.00\n2023-12,20.00,110.00\n",
		string(data))

	back, err := s.ReadBalanceTable()
	require.NoError(t, err)
	assert.Equal(t, table.Records(), back.Records())
}

func TestReadBalanceTable_Errors(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ',')

	_, err := s.ReadBalanceTable()
	var missing *ledgererror.MissingInputError
	require.True(t, errors.As(err, &missing))

	writeFile(t, s.Paths().Balances, "month,A\n2023-01,1.00\n")
	_, err = s.ReadBalanceTable()
	var malformed *ledgererror.MalformedTableError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, s.Paths().Balances, malformed.Path)
}

func TestWriteSummaries(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ',')

	require.NoError(t, s.WriteMonthlySummary([]report.MonthlySummaryRow{{
		Month: "2023-01", Income: "3000.00", Expenses: "-200.00", NetCashFlow: "2800.00",
		CreditCardTotal: "0.00", DebtChange: "0.00", Dining: "-200.00",
	}}))
	data, err := os.ReadFile(s.Paths().MonthlySummary)
	require.NoError(t, err)
	assert.Equal(t,
		"month,Income,Expenses,Net Cash Flow,Credit Card Total,Debt Change,Restaurant & Dining\n"+
			"2023-01,3000.00,-200.00,2800.00,0.00,0.00,-200.00\n",
		string(data))

	require.NoError(t, s.WriteAnnualSummary([]report.AnnualSummaryRow{{Year: "2023", LiquidityRatio: "inf"}}))
	require.NoError(t, s.WriteCategorySummary([]report.CategorySummaryRow{{Year: "2023"}}))
	assert.FileExists(t, s.Paths().AnnualSummary)
	assert.FileExists(t, s.Paths().CategorySummary)
}

func testOutputs(t *testing.T) Outputs {
	t.Helper()
	months := models.MonthRange(models.MustParseMonth("2023-12"), models.MustParseMonth("2023-12"))
	grid, err := balance.NewGrid(months, map[string][]decimal.Decimal{"Checking": {decimal.NewFromInt(5)}})
	require.NoError(t, err)
	return Outputs{
		Balances:        report.NewBalanceTable(grid, categorizer.NewAccountClassifier(categorizer.DefaultAccountKeywords())),
		CategorySummary: []report.CategorySummaryRow{{Year: "2023"}},
		AnnualSummary:   []report.AnnualSummaryRow{{Year: "2023"}},
		MonthlySummary:  []report.MonthlySummaryRow{{Month: "2023-12"}},
	}
}

func outputPaths(s *FileStore) []string {
	p := s.Paths()
	return []string{p.Balances, p.CategorySummary, p.AnnualSummary, p.MonthlySummary}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ',')

	require.NoError(t, s.WriteOutputs(testOutputs(t)))

	for _, path := range outputPaths(s) {
		assert.FileExists(t, path)
	}
	data, err := os.ReadFile(s.Paths().Balances)
	require.NoError(t, err)
	assert.Equal(t, "month,Checking\nCategory,Saving\n2023-12,5.00\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "no temporary files left behind")
}

func TestWriteOutputs_SkipsNilTables(t *testing.T) {
	dir := t.TempDir()
	s := newTestStore(dir, ',')

	require.NoError(t, s.WriteOutputs(Outputs{MonthlySummary: []report.MonthlySummaryRow{}}))

	data, err := os.ReadFile(s.Paths().MonthlySummary)
	require.NoError(t, err)
	assert.Equal(t, "month,Income,Expenses,Net Cash Flow,Credit Card Total,Debt Change,Restaurant & Dining\n", string(data))
	assert.NoFileExists(t, s.Paths().Balances)
	assert.NoFileExists(t, s.Paths().AnnualSummary)
}

func TestWriteOutputs_FailureLeavesTablesUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		block func(t *testing.T, s *FileStore) *FileStore
		want  string
	}{
		{
			name: "annual summary path is a directory",
			block: func(t *testing.T, s *FileStore) *FileStore {
				require.NoError(t, os.Remove(s.Paths().AnnualSummary))
				require.NoError(t, os.Mkdir(s.Paths().AnnualSummary, 0750))
				return s
			},
			want: "is a directory",
		},
		{
			name: "annual summary path not configured",
			block: func(t *testing.T, s *FileStore) *FileStore {
				paths := s.Paths()
				paths.AnnualSummary = ""
				return NewFileStore(paths, ',', logging.NewMockLogger())
			},
			want: "no path configured for annual summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			s := newTestStore(dir, ',')
			for _, path := range outputPaths(s) {
				writeFile(t, path, "previous run\n")
			}
			s = tt.block(t, s)

			err := s.WriteOutputs(testOutputs(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			p := s.Paths()
			for _, path := range []string{p.Balances, p.CategorySummary, p.MonthlySummary} {
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, "previous run\n", string(data), path)
			}

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".tmp")
			}
		})
	}
}

func TestWrite_NoPath(t *testing.T) {
	s := NewFileStore(Paths{}, ',', logging.NewMockLogger())
	assert.Error(t, s.WriteMonthlySummary(nil))
}

func TestMockStore(t *testing.T) {
	m := &MockStore{}

	_, err := m.ReadTransactions()
	var missing *ledgererror.MissingInputError
	require.True(t, errors.As(err, &missing))

	require.NoError(t, m.WriteTransactions([]models.Transaction{{Account: "A"}}))
	txs, err := m.ReadTransactions()
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	require.NoError(t, m.WriteOutputs(Outputs{AnnualSummary: []report.AnnualSummaryRow{{Year: "2023"}}}))
	assert.Len(t, m.AnnualSummary, 1)
	assert.Nil(t, m.MonthlySummary)

	m.WriteError = errors.New("disk full")
	assert.Error(t, m.WriteAnnualSummary(nil))
	assert.Error(t, m.WriteOutputs(Outputs{MonthlySummary: []report.MonthlySummaryRow{}}))
	assert.Nil(t, m.MonthlySummary)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return d
}
