// Package balances implements the balances command
package balances

import (
	"fjacquet/budget-metrics/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the balances command
var Cmd = &cobra.Command{
	Use:   "balances",
	Short: "Rebuild the monthly balance table from the transaction ledger",
	Long: `Rebuild the account x month running balance table from the transaction ledger.
Every account gets a row for every month between the first and last month of the
ledger; the current month is left out. The first data row carries each account's category.

Example:
  budget-metrics balances --data-dir ./data`,
	RunE: balancesFunc,
}

func balancesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	asOf, err := root.AsOfMonth()
	if err != nil {
		return err
	}
	return c.GetRunner().Balances(asOf)
}
