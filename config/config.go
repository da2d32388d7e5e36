// Package config loads the desk configuration from a YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/paperdesk/signals"
)

// Config is the complete desk configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Account  AccountConfig  `json:"account" yaml:"account"`
	Signals  signals.Config `json:"signals" yaml:"signals"`
	Quotes   QuotesConfig   `json:"quotes" yaml:"quotes"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// AccountConfig seeds the paper account on first run. StartingBalance only
// applies when the account row does not exist yet (or on an explicit reset).
type AccountConfig struct {
	ID              int64   `json:"id" yaml:"id"`
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
}

type QuotesConfig struct {
	Symbols  []string `json:"symbols" yaml:"symbols"`
	Interval string   `json:"interval" yaml:"interval"` // e.g. "2s", "500ms"
}

// ParseInterval converts the quote broadcast interval to a duration.
func (q QuotesConfig) ParseInterval() (time.Duration, error) {
	if q.Interval == "" {
		return 2 * time.Second, nil
	}
	return time.ParseDuration(q.Interval)
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8000"},
		Database: DatabaseConfig{Path: "./data/trading.db"},
		Account: AccountConfig{
			ID:              1,
			StartingBalance: 10000,
		},
		Signals: signals.DefaultConfig(),
		Quotes: QuotesConfig{
			Symbols: []string{
				"AAPL", "GOOGL", "MSFT", "NVDA", "TSLA",
				"SPY", "QQQ", "META", "AMZN", "AMD",
			},
			Interval: "2s",
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Account.ID <= 0 {
		return fmt.Errorf("account.id must be positive")
	}
	if c.Account.StartingBalance <= 0 {
		return fmt.Errorf("account.starting_balance must be positive")
	}
	if c.Signals.Lookback < 2 {
		return fmt.Errorf("signals.lookback must be at least 2")
	}
	if c.Signals.RSIPeriod <= 0 || c.Signals.MACDFast <= 0 || c.Signals.MACDSlow <= 0 ||
		c.Signals.MACDSignal <= 0 || c.Signals.SMAFast <= 0 || c.Signals.SMASlow <= 0 ||
		c.Signals.BBPeriod < 2 {
		return fmt.Errorf("signal indicator periods must be positive")
	}
	if c.Signals.RSIOversold <= 0 || c.Signals.RSIOverbought >= 100 ||
		c.Signals.RSIOversold >= c.Signals.RSIOverbought {
		return fmt.Errorf("rsi thresholds must satisfy 0 < oversold < overbought < 100")
	}
	if c.Signals.MACDFast >= c.Signals.MACDSlow {
		return fmt.Errorf("signals.macd_fast must be less than signals.macd_slow")
	}
	if c.Signals.SMAFast >= c.Signals.SMASlow {
		return fmt.Errorf("signals.sma_fast must be less than signals.sma_slow")
	}
	if c.Signals.BBWidth <= 0 {
		return fmt.Errorf("signals.bb_width must be positive")
	}
	if c.Signals.BBProximity < 0 {
		return fmt.Errorf("signals.bb_proximity must not be negative")
	}
	if _, err := c.Quotes.ParseInterval(); err != nil {
		return fmt.Errorf("quotes.interval: %w", err)
	}
	return nil
}
