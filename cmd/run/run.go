// Package run implements the run command
package run

import (
	"fmt"

	"fjacquet/budget-metrics/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline and write every table",
	Long: `Run balance reconstruction, annual metrics and monthly cash flow in one batch
from the transaction ledger. Nothing is written unless every table was computed.`,
	RunE: runFunc,
}

func runFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	asOf, err := root.AsOfMonth()
	if err != nil {
		return err
	}
	result, err := c.GetRunner().All(asOf)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, rec := range result.Annual.Metrics.Records() {
		if _, err := fmt.Fprintf(out, "%d  net worth %s  debt ratio %s  liquidity %s\n",
			rec.Year, rec.NetWorth.StringFixed(2), rec.DebtRatio.Rounded(4), rec.LiquidityRatio.Rounded(4)); err != nil {
			return err
		}
	}
	return nil
}
