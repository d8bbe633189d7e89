package showconfig

import (
	"bytes"
	"os"
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

func TestConfigCommand_PrintsYAML(t *testing.T) {
	chdir(t, t.TempDir())

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	defer root.Cmd.SetOut(nil)
	root.Cmd.SetArgs([]string{"config", "--csv-delimiter", ";"})
	require.NoError(t, root.Cmd.Execute())

	assert.Contains(t, out.String(), "delimiter: ;")
	assert.Contains(t, out.String(), "transactions: transactions.csv")
	assert.Contains(t, out.String(), "credit_card_keywords:")
}
