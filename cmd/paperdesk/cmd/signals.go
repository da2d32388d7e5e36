package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var signalsCmd = &cobra.Command{
	Use:   "signals SYMBOL",
	Short: "Scan stored bars for trading signals",
	Long: `Run the RSI, MACD crossover, SMA 20/50 cross and Bollinger band
rules over the stored daily bars for a symbol.

Examples:
  paperdesk signals AAPL
  paperdesk signals AAPL --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSignals,
}

var signalsSave bool

func init() {
	rootCmd.AddCommand(signalsCmd)
	signalsCmd.Flags().BoolVar(&signalsSave, "save", false, "record detected signals in the signal log")
}

func runSignals(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	found, err := d.detector.FindSignals(symbol)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Printf("No signals for %s.\n", symbol)
		return nil
	}

	fmt.Printf("%-6s %-22s %10s %12s\n", "TYPE", "INDICATOR", "STRENGTH", "VALUE")
	for _, sg := range found {
		fmt.Printf("%-6s %-22s %9.1f%% %12.4f\n", sg.Type, sg.Indicator, sg.Strength, sg.Value)
	}

	if signalsSave {
		if err := d.detector.SaveSignals(symbol, found); err != nil {
			return err
		}
		fmt.Printf("\n✓ Saved %d signal(s) for %s\n", len(found), symbol)
	}
	return nil
}
