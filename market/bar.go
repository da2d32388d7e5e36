// Package market defines the shared market-data records: daily OHLCV bars
// and the quote snapshots broadcast to dashboard clients.
package market

import "time"

// Bar is one daily OHLCV bar for a symbol. Bars are keyed by (Symbol, Date);
// re-importing an existing key overwrites the stored row, so the latest
// known value always wins.
type Bar struct {
	Symbol   string    `json:"symbol"`
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
	Source   string    `json:"source"`
}
