package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent paper trades",
	Long: `List committed paper trades, most recent first.

Example:
  paperdesk history --limit 20`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of trades to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	trades, err := d.engine.History(historyLimit)
	if err != nil {
		return err
	}

	if len(trades) == 0 {
		fmt.Println("No trades yet.")
		return nil
	}

	fmt.Printf("%-20s %-5s %-8s %10s %10s %12s\n",
		"TIME", "SIDE", "SYMBOL", "QTY", "PRICE", "BALANCE")
	for _, t := range trades {
		fmt.Printf("%-20s %-5s %-8s %10.2f %10.2f %12.2f\n",
			t.Timestamp.Format("2006-01-02 15:04:05"),
			t.Action, t.Symbol, t.Quantity, t.Price, t.BalanceAfter)
	}
	return nil
}
