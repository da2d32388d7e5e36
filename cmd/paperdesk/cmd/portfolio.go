package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show the portfolio valued at the latest prices",
	Long: `Display every open position marked to the latest stored close,
with unrealized P&L per position and for the portfolio as a whole.

Example:
  paperdesk portfolio`,
	RunE: runPortfolio,
}

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show account performance against the starting balance",
	Long: `Display the cash balance, total position value and overall return
relative to the account's starting balance.

Example:
  paperdesk performance`,
	RunE: runPerformance,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(performanceCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	v, err := d.portfolio.ValuePortfolio()
	if err != nil {
		return err
	}

	if v.NumPositions == 0 {
		fmt.Println("No open positions.")
		return nil
	}

	fmt.Printf("%-8s %10s %12s %12s %14s %12s\n",
		"SYMBOL", "QTY", "AVG COST", "PRICE", "MARKET VALUE", "P&L")
	for _, p := range v.Positions {
		fmt.Printf("%-8s %10.2f %12.2f %12.2f %14.2f %+11.2f%%\n",
			p.Symbol, p.Quantity, p.AverageCost, p.CurrentPrice,
			p.MarketValue, p.UnrealizedPLPct)
	}
	fmt.Println()
	fmt.Printf("Positions:    %d\n", v.NumPositions)
	fmt.Printf("Market value: $%.2f\n", v.TotalMarketValue)
	fmt.Printf("Cost basis:   $%.2f\n", v.TotalCostBasis)
	fmt.Printf("Total P&L:    $%.2f (%.2f%%)\n", v.TotalPL, v.TotalPLPct)
	return nil
}

func runPerformance(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.engine.Performance()
	if err != nil {
		return err
	}

	fmt.Printf("Starting balance: $%.2f\n", p.StartingBalance)
	fmt.Printf("Cash balance:     $%.2f\n", p.CashBalance)
	fmt.Printf("Positions value:  $%.2f (%d positions)\n", p.PositionsValue, p.NumPositions)
	fmt.Printf("Total value:      $%.2f\n", p.TotalValue)
	fmt.Printf("Total return:     $%.2f (%.2f%%)\n", p.TotalReturn, p.ReturnPct)
	return nil
}
