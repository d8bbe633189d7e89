// Package monthly implements the monthly command
package monthly

import (
	"fjacquet/budget-metrics/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the monthly command
var Cmd = &cobra.Command{
	Use:   "monthly",
	Short: "Derive monthly income, expenses, net cash flow and dining spend",
	Long: `Derive the monthly financial summary from the transaction ledger: income,
expenses (transfers excluded), net cash flow, restaurant and dining spend and the
credit card debt trend.`,
	RunE: monthlyFunc,
}

func monthlyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	asOf, err := root.AsOfMonth()
	if err != nil {
		return err
	}
	return c.GetRunner().Monthly(asOf)
}
