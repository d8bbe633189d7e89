package run

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-metrics/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	root.Init()
	root.Cmd.AddCommand(Cmd)
	os.Exit(m.Run())
}

func TestRunCommand_WritesEverything(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(
		"date,amount,payee,category,account\n"+
			"2023-01-10,3000,Payroll,Income,AcctA\n"+
			"2023-12-15,-500,Grocer,Food,Visa Signature\n"), 0600))

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	defer root.Cmd.SetOut(nil)
	root.Cmd.SetArgs([]string{"run", "--data-dir", dir, "--as-of", "2024-01"})
	require.NoError(t, root.Cmd.Execute())

	for _, name := range []string{
		"monthly_summary.csv",
		"monthly_category_summary.csv",
		"annual_summary.csv",
		"monthly_financial_summary.csv",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Contains(t, out.String(), "2023  net worth 2500.00  debt ratio 0.1667  liquidity 6")

	annual, err := os.ReadFile(filepath.Join(dir, "annual_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(annual), "2023,0.16666667,6,2500.00,")
}

func TestRunCommand_MalformedLedgerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(
		"date,amount,payee,category,account\n"+
			"2023-01-10,3000,Payroll,Income,AcctA\n"+
			"2023-13-01,1,Payroll,Income,AcctA\n"), 0600))

	root.Cmd.SetArgs([]string{"run", "--data-dir", dir, "--as-of", "2024-01"})
	err := root.Cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.NoFileExists(t, filepath.Join(dir, "monthly_summary.csv"))
}
