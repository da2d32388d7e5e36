package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperdesk/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import daily OHLCV bars from a CSV file",
	Long: `Load daily bars into the market-data store from a CSV file.

Expected columns, header row optional:
  symbol,date,open,high,low,close,adjusted_close,volume[,source]

Re-importing a (symbol, date) pair overwrites the stored bar, so
imports are safe to repeat.

Example:
  paperdesk import bars.csv --source yahoo`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importSource string

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importSource, "source", "csv", "data source label stored with each bar")
}

func runImport(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	res, err := ingest.CSV(d.store, f, importSource, d.logger)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d bar(s), skipped %d line(s)\n", res.Imported, res.Skipped)
	return nil
}
