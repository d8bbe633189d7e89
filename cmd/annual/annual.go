// Package annual implements the annual command
package annual

import (
	"fjacquet/budget-metrics/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the annual command
var Cmd = &cobra.Command{
	Use:   "annual",
	Short: "Derive year-end category totals and annual financial ratios",
	Long: `Derive the year-end category summary and annual metrics (debt ratio, liquidity
ratio, net worth, retirement and annual savings ratios) from a previously written
balance table and the income found in the transaction ledger.

Run "budget-metrics balances" first.`,
	RunE: annualFunc,
}

func annualFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	asOf, err := root.AsOfMonth()
	if err != nil {
		return err
	}
	return c.GetRunner().Annual(asOf)
}
