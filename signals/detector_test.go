package signals

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/paperdesk/market"
	"github.com/rustyeddy/paperdesk/store"
)

func newTestDetector(t *testing.T, cfg Config) (*Detector, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDetector(st, cfg, logger), st
}

func seedCloses(t *testing.T, st *store.Store, symbol string, closes []float64) {
	t.Helper()

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		assert.NoError(t, st.UpsertBar(market.Bar{
			Symbol: symbol,
			Date:   base.AddDate(0, 0, i),
			Open:   c, High: c, Low: c, Close: c, AdjClose: c,
			Volume: 1000, Source: "test",
		}))
	}
}

func byIndicator(sigs []Signal) map[string]Signal {
	m := make(map[string]Signal, len(sigs))
	for _, s := range sigs {
		m[s.Indicator] = s
	}
	return m
}

func TestNoBarsNoSignals(t *testing.T) {
	t.Parallel()

	d, _ := newTestDetector(t, DefaultConfig())

	found, err := d.FindSignals("NOPE")
	assert.NoError(t, err)
	assert.Empty(t, found)
}

func TestRSIOversoldFires(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// 14 changes: +29.9, -70.1, rest flat, so RSI is 29.9 exactly.
	closes := []float64{100, 129.9, 59.8}
	for len(closes) < 15 {
		closes = append(closes, 59.8)
	}
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	sig, ok := m[RSIOversold]
	assert.True(t, ok)
	assert.Equal(t, Buy, sig.Type)
	assert.InDelta(t, 29.9, sig.Value, 1e-9)
	assert.InDelta(t, (30-29.9)/30*100, sig.Strength, 1e-6)
}

func TestRSIAtOversoldThresholdDoesNotFire(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// 14 changes: +30, -70, rest flat, so RSI lands exactly on the
	// oversold threshold. The rule is strict: 30.0 is not below 30.
	closes := []float64{100, 130, 60}
	for len(closes) < 15 {
		closes = append(closes, 60)
	}
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	_, oversold := m[RSIOversold]
	_, overbought := m[RSIOverbought]
	assert.False(t, oversold)
	assert.False(t, overbought)
}

func TestRSIAtMidpointDoesNotFire(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// One gain and one equal loss: RSI is exactly 50, inside the band.
	closes := []float64{100, 132, 100}
	for len(closes) < 15 {
		closes = append(closes, 100)
	}
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	_, oversold := m[RSIOversold]
	_, overbought := m[RSIOverbought]
	assert.False(t, oversold)
	assert.False(t, overbought)
}

func TestRSIOverboughtFires(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// Strictly rising closes push RSI to 100.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	sig, ok := m[RSIOverbought]
	assert.True(t, ok)
	assert.Equal(t, Sell, sig.Type)
	assert.InDelta(t, 100.0, sig.Value, 1e-9)
	assert.InDelta(t, 100.0, sig.Strength, 1e-9)
}

func TestGoldenCrossFiresOnce(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// 51 flat closes then one jump: the fast SMA crosses above the slow.
	closes := make([]float64, 52)
	for i := range closes {
		closes[i] = 100
	}
	closes[51] = 120
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	crosses := 0
	for _, s := range found {
		switch s.Indicator {
		case MAGoldenCross:
			crosses++
			assert.Equal(t, Buy, s.Type)
		case MADeathCross:
			t.Fatalf("unexpected death cross")
		}
	}
	assert.Equal(t, 1, crosses)

	// A rescan of the same data reports the same cross; detection is
	// stateless and does not consume the event.
	again, err := d.FindSignals("AAPL")
	assert.NoError(t, err)
	assert.Equal(t, byIndicator(found)[MAGoldenCross], byIndicator(again)[MAGoldenCross])
}

func TestMACDBullishCrossFires(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}
	closes[39] = 110 // flat then a pop: macd goes 0 -> positive
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	sig, ok := m[MACDCrossBullish]
	assert.True(t, ok)
	assert.Equal(t, Buy, sig.Type)
	assert.Equal(t, DefaultConfig().MACDStrength, sig.Strength)
	_, bearish := m[MACDCrossBearish]
	assert.False(t, bearish)
}

func TestFlatSeriesYieldsNoCrossovers(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	seedCloses(t, st, "AAPL", closes)

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)

	m := byIndicator(found)
	for _, ind := range []string{RSIOversold, RSIOverbought, MACDCrossBullish, MACDCrossBearish, MAGoldenCross, MADeathCross} {
		_, ok := m[ind]
		assert.False(t, ok, "unexpected %s on a flat series", ind)
	}

	// With zero deviation the close sits on both bands; the band rule
	// resolves the tie as a buy.
	sig, ok := m[BBOversold]
	assert.True(t, ok)
	assert.Equal(t, Buy, sig.Type)
	assert.InDelta(t, 0, sig.Strength, 1e-9)
}

func TestShortHistorySkipsWideIndicators(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	// Two bars: every indicator window is wider than the history.
	seedCloses(t, st, "AAPL", []float64{100, 101})

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)
	assert.Empty(t, found)
}

func TestZeroClosesAreDropped(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	seedCloses(t, st, "AAPL", []float64{0, 0, 100})

	found, err := d.FindSignals("AAPL")
	assert.NoError(t, err)
	assert.Empty(t, found) // one usable close, nothing to compute
}

func TestSaveSignalsAppends(t *testing.T) {
	t.Parallel()

	d, st := newTestDetector(t, DefaultConfig())

	sigs := []Signal{{
		Symbol: "AAPL", Type: Buy, Indicator: RSIOversold,
		Strength: 12.5, Value: 26.25,
		Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
	}}

	assert.NoError(t, d.SaveSignals("AAPL", sigs))
	assert.NoError(t, d.SaveSignals("AAPL", sigs)) // no dedup by design

	recs, err := st.SignalHistory("AAPL", 10)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "BUY", recs[0].Type)
	assert.Equal(t, RSIOversold, recs[0].Indicator)

	assert.NoError(t, d.SaveSignals("AAPL", nil)) // empty scan is a no-op
}
