// Package signals detects directional trading signals from stored OHLCV
// history: RSI and Bollinger threshold rules on the latest bar, MACD and
// SMA crossover rules between the last two bars.
package signals

import "time"

type Type string

const (
	Buy  Type = "BUY"
	Sell Type = "SELL"
)

// Indicator labels recorded with each signal.
const (
	RSIOversold      = "RSI_OVERSOLD"
	RSIOverbought    = "RSI_OVERBOUGHT"
	MACDCrossBullish = "MACD_CROSS_BULLISH"
	MACDCrossBearish = "MACD_CROSS_BEARISH"
	MAGoldenCross    = "MA_GOLDEN_CROSS"
	MADeathCross     = "MA_DEATH_CROSS"
	BBOversold       = "BB_OVERSOLD"
	BBOverbought     = "BB_OVERBOUGHT"
)

// Signal is one detected buy/sell opportunity. Signals are recomputed on
// every scan; the persisted rows are a log, never an input.
type Signal struct {
	Symbol    string    `json:"symbol"`
	Type      Type      `json:"type"`
	Indicator string    `json:"indicator"`
	Strength  float64   `json:"strength"`
	Value     float64   `json:"value"`
	Date      time.Time `json:"date"`
}
