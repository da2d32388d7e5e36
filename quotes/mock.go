package quotes

import (
	"math"
	"math/rand"
	"time"

	"github.com/rustyeddy/paperdesk/market"
)

// MockQuote fabricates a plausible quote for a symbol with no stored bars.
// The base price derives from the symbol's bytes, so repeated calls for
// the same symbol wobble around the same level.
func MockQuote(symbol string, now time.Time) market.Quote {
	base := BasePrice(symbol)
	variation := (rand.Float64() - 0.5) * 4 // +/- $2
	price := base + variation
	change := price - base

	return market.Quote{
		Symbol:        symbol,
		Price:         round2(price),
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		Volume:        rand.Int63n(90_000_000) + 10_000_000,
		Bid:           round2(price - 0.01),
		Ask:           round2(price + 0.01),
		High:          round2(price + 1 + rand.Float64()*4),
		Low:           round2(price - 1 - rand.Float64()*4),
		Timestamp:     now,
	}
}

// BasePrice is the deterministic anchor price for a symbol, in [100, 500).
func BasePrice(symbol string) float64 {
	seed := 0
	for _, r := range symbol {
		seed += int(r)
	}
	return 100 + math.Mod(float64(seed)*2.5, 400)
}

func quoteFromClose(symbol string, close float64, now time.Time) market.Quote {
	return market.Quote{
		Symbol:    symbol,
		Price:     close,
		Bid:       round2(close - 0.01),
		Ask:       round2(close + 0.01),
		High:      close,
		Low:       close,
		Timestamp: now,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
