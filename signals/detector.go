package signals

import (
	"log/slog"
	"time"

	"github.com/rustyeddy/paperdesk/indicators"
	"github.com/rustyeddy/paperdesk/store"
)

// Detector scans stored daily bars for one symbol and emits buy/sell
// signals. Scans are stateless; every call recomputes from the store.
type Detector struct {
	store  *store.Store
	cfg    Config
	logger *slog.Logger
}

func NewDetector(st *store.Store, cfg Config, logger *slog.Logger) *Detector {
	return &Detector{store: st, cfg: cfg, logger: logger}
}

// FindSignals loads the most recent Lookback bars in ascending date order
// and evaluates every indicator rule. An indicator whose lookback window
// exceeds the available history is skipped, not errored; a symbol with no
// usable bars yields no signals.
//
// Signals are appended in a fixed evaluation order (RSI, MACD, SMA cross,
// Bollinger); callers that want ranking sort by Strength themselves.
func (d *Detector) FindSignals(symbol string) ([]Signal, error) {
	bars, err := d.store.Bars(symbol, d.cfg.Lookback)
	if err != nil {
		return nil, err
	}

	// Bars with a missing close cannot feed any indicator; drop them and
	// keep going rather than failing the whole scan.
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		if b.Close > 0 {
			closes = append(closes, b.Close)
		}
	}
	if len(closes) == 0 {
		d.logger.Warn("no usable market data", "symbol", symbol)
		return nil, nil
	}

	date := bars[len(bars)-1].Date
	latest := closes[len(closes)-1]

	var found []Signal
	add := func(t Type, indicator string, strength, value float64) {
		found = append(found, Signal{
			Symbol:    symbol,
			Type:      t,
			Indicator: indicator,
			Strength:  strength,
			Value:     value,
			Date:      date,
		})
	}

	// RSI: absolute thresholds on the latest bar, strict inequalities.
	if rsi, err := indicators.RSI(closes, d.cfg.RSIPeriod); err == nil {
		switch {
		case rsi < d.cfg.RSIOversold:
			add(Buy, RSIOversold, (d.cfg.RSIOversold-rsi)/d.cfg.RSIOversold*100, rsi)
		case rsi > d.cfg.RSIOverbought:
			add(Sell, RSIOverbought, (rsi-d.cfg.RSIOverbought)/(100-d.cfg.RSIOverbought)*100, rsi)
		}
	}

	// MACD: signal-line crossover between the previous and latest bar.
	if n := len(closes); n >= 2 && n >= d.cfg.MACDSlow {
		macd, sig := indicators.MACDSeries(closes, d.cfg.MACDFast, d.cfg.MACDSlow, d.cfg.MACDSignal)
		cur := macd[n-1] - sig[n-1]
		prev := macd[n-2] - sig[n-2]
		switch {
		case cur > 0 && prev <= 0:
			add(Buy, MACDCrossBullish, d.cfg.MACDStrength, cur)
		case cur < 0 && prev >= 0:
			add(Sell, MACDCrossBearish, d.cfg.MACDStrength, -cur)
		}
	}

	// SMA 20/50: golden/death cross between the previous and latest bar.
	// One extra bar beyond the slow window is needed for the previous pair.
	if len(closes) > d.cfg.SMASlow {
		fastCur, _ := indicators.SMA(closes, d.cfg.SMAFast)
		slowCur, _ := indicators.SMA(closes, d.cfg.SMASlow)
		fastPrev, _ := indicators.SMA(closes[:len(closes)-1], d.cfg.SMAFast)
		slowPrev, _ := indicators.SMA(closes[:len(closes)-1], d.cfg.SMASlow)
		switch {
		case fastCur > slowCur && fastPrev <= slowPrev:
			add(Buy, MAGoldenCross, d.cfg.SMAStrength, fastCur-slowCur)
		case fastCur < slowCur && fastPrev >= slowPrev:
			add(Sell, MADeathCross, d.cfg.SMAStrength, slowCur-fastCur)
		}
	}

	// Bollinger: latest close within BBProximity of either band. Strength
	// is the close's distance past the band as a percentage of the band.
	if upper, _, lower, err := indicators.Bollinger(closes, d.cfg.BBPeriod, d.cfg.BBWidth); err == nil && lower > 0 {
		switch {
		case latest <= lower*(1+d.cfg.BBProximity):
			add(Buy, BBOversold, (lower-latest)/lower*100, (lower-latest)/lower*100)
		case latest >= upper*(1-d.cfg.BBProximity):
			add(Sell, BBOverbought, (latest-upper)/upper*100, (latest-upper)/upper*100)
		}
	}

	d.logger.Info("signal scan complete",
		"symbol", symbol,
		"bars", len(bars),
		"signals", len(found),
	)
	return found, nil
}

// SaveSignals appends the detected signals to the signal log, dated with
// the scan day. No dedup: rescanning the same day writes duplicate rows.
func (d *Detector) SaveSignals(symbol string, sigs []Signal) error {
	if len(sigs) == 0 {
		return nil
	}

	today := time.Now().UTC()
	recs := make([]store.SignalRecord, 0, len(sigs))
	for _, sg := range sigs {
		recs = append(recs, store.SignalRecord{
			Symbol:    symbol,
			Type:      string(sg.Type),
			Indicator: sg.Indicator,
			Strength:  sg.Strength,
			Date:      today,
		})
	}

	if err := d.store.SaveSignals(recs); err != nil {
		return err
	}

	d.logger.Info("signals saved", "symbol", symbol, "count", len(recs))
	return nil
}
