package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperdesk/config"
	"github.com/rustyeddy/paperdesk/paper"
	"github.com/rustyeddy/paperdesk/portfolio"
	"github.com/rustyeddy/paperdesk/signals"
	"github.com/rustyeddy/paperdesk/store"
)

var rootCmd = &cobra.Command{
	Use:   "paperdesk",
	Short: "A local paper-trading desk with portfolio tracking and signal detection",
	Long: `Paperdesk is a single-user paper-trading desk written in Go.

It provides tools for:
  - Executing simulated BUY/SELL orders against a cash account
  - Tracking positions with average-cost accounting
  - Valuing the portfolio and reporting realized/unrealized P&L
  - Scanning stored daily bars for RSI, MACD, SMA-cross and Bollinger signals
  - Importing OHLCV history from CSV files
  - Serving the whole desk over a local JSON API with live quote streaming

Complete documentation is available at https://github.com/rustyeddy/paperdesk`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile string
	dbPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// desk bundles the opened store with the services every command needs.
type desk struct {
	cfg       *config.Config
	store     *store.Store
	engine    *paper.Engine
	portfolio *portfolio.Service
	detector  *signals.Detector
	logger    *slog.Logger
}

func openDesk() (*desk, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.EnsureAccount(cfg.Account.ID, cfg.Account.StartingBalance); err != nil {
		st.Close()
		return nil, fmt.Errorf("ensure account: %w", err)
	}

	logger := newLogger()
	return &desk{
		cfg:       cfg,
		store:     st,
		engine:    paper.NewEngine(st, cfg.Account.ID, logger),
		portfolio: portfolio.NewService(st, logger),
		detector:  signals.NewDetector(st, cfg.Signals, logger),
		logger:    logger,
	}, nil
}

func (d *desk) Close() error {
	return d.store.Close()
}
