package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperdesk/paper"
)

var tradeCmd = &cobra.Command{
	Use:   "trade ACTION SYMBOL QUANTITY",
	Short: "Execute a paper BUY or SELL order",
	Long: `Execute a simulated order at the latest stored closing price.

Orders fill a positive whole number of shares, all-or-nothing. A BUY
debits the cash balance and re-weights the position's average cost; a
SELL credits proceeds and realizes P&L against the average cost.

Examples:
  paperdesk trade buy AAPL 10
  paperdesk trade sell AAPL 5`,
	Args: cobra.ExactArgs(3),
	RunE: runTrade,
}

func init() {
	rootCmd.AddCommand(tradeCmd)
}

func runTrade(cmd *cobra.Command, args []string) error {
	action := strings.ToUpper(args[0])
	symbol := strings.ToUpper(args[1])
	quantity, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("parse quantity %q: %w", args[2], err)
	}

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.engine.PlaceOrder(cmd.Context(), symbol, quantity, action)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s %v %s @ $%.2f\n", result.Action, result.Quantity, result.Symbol, result.Price)
	if result.Action == paper.Buy {
		fmt.Printf("  Cost:     $%.2f\n", result.Cost)
	} else {
		fmt.Printf("  Proceeds: $%.2f\n", result.Proceeds)
		fmt.Printf("  Realized: $%.2f (%.2f%%)\n", result.RealizedPL, result.RealizedPLPct)
	}
	fmt.Printf("  Balance:  $%.2f\n", result.BalanceAfter)
	fmt.Printf("  Trade ID: %s\n", result.TradeID)
	return nil
}
