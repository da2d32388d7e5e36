package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Show the watchlist",
	Long: `List watched symbols with any notes.

Example:
  paperdesk watchlist`,
	RunE: runWatchlist,
}

var watchCmd = &cobra.Command{
	Use:   "watch SYMBOL",
	Short: "Add a symbol to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var unwatchCmd = &cobra.Command{
	Use:   "unwatch SYMBOL",
	Short: "Remove a symbol from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnwatch,
}

var watchNotes string

func init() {
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(unwatchCmd)
	watchCmd.Flags().StringVar(&watchNotes, "notes", "", "notes to store with the symbol")
}

func runWatchlist(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.portfolio.Watchlist()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("Watchlist is empty.")
		return nil
	}
	for _, e := range entries {
		if e.Notes != "" {
			fmt.Printf("%-8s %s\n", e.Symbol, e.Notes)
		} else {
			fmt.Println(e.Symbol)
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.portfolio.Watch(symbol, watchNotes); err != nil {
		return err
	}
	fmt.Printf("✓ Watching %s\n", symbol)
	return nil
}

func runUnwatch(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.portfolio.Unwatch(symbol); err != nil {
		return err
	}
	fmt.Printf("✓ Removed %s\n", symbol)
	return nil
}
