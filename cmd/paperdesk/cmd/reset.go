package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperdesk/paper"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the paper account to a fresh starting balance",
	Long: `Wipe the paper account back to a fresh start.

Every open position and every paper trade-log row is deleted, and the
cash balance is set to the starting balance. This is irreversible.

Examples:
  paperdesk reset
  paperdesk reset --balance 25000`,
	RunE: runReset,
}

var resetBalance float64

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().Float64Var(&resetBalance, "balance", paper.DefaultStartingBalance, "new starting balance")
}

func runReset(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.engine.Reset(resetBalance); err != nil {
		return err
	}

	fmt.Printf("✓ Account reset with starting balance $%.2f\n", resetBalance)
	return nil
}
