// Package indicators provides the batch technical-analysis math used by
// the signal detector: moving averages, RSI, MACD and Bollinger bands over
// a series of daily closes.
package indicators

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData marks an indicator whose lookback window exceeds the
// available history. Callers skip the indicator rather than treating the
// value as a signal.
var ErrInsufficientData = errors.New("insufficient data")

// ErrNoMovement marks an RSI computed over a completely flat window, where
// the ratio of average gain to average loss is undefined.
var ErrNoMovement = errors.New("no price movement")

// SMA returns the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period {
		return 0, fmt.Errorf("%w: need %d values, got %d", ErrInsufficientData, period, len(values))
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), nil
}

// EMASeries returns the exponential moving average at every index, seeded
// with the first value: ema[0] = x[0], ema[i] = alpha*x[i] + (1-alpha)*ema[i-1]
// with alpha = 2/(period+1).
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*alpha + out[i-1]
	}
	return out
}

// RSI returns the relative strength index over the last period changes:
// 100 - 100/(1+RS) where RS is the mean gain divided by the mean loss.
// A window with gains and no losses reads 100.
func RSI(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period+1 {
		return 0, fmt.Errorf("%w: need %d values, got %d", ErrInsufficientData, period+1, len(values))
	}

	var gains, losses float64
	for i := len(values) - period; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains += d
		} else {
			losses -= d
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	switch {
	case avgGain == 0 && avgLoss == 0:
		return 0, ErrNoMovement
	case avgLoss == 0:
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}

// MACDSeries returns the MACD line (fast EMA minus slow EMA) and its signal
// line (an EMA of the MACD line) at every index.
func MACDSeries(values []float64, fast, slow, signal int) (macd, sig []float64) {
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)

	macd = make([]float64, len(values))
	for i := range values {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	return macd, EMASeries(macd, signal)
}

// Bollinger returns the upper, middle and lower bands over the last period
// values: the SMA plus/minus width sample standard deviations.
func Bollinger(values []float64, period int, width float64) (upper, middle, lower float64, err error) {
	if period < 2 {
		return 0, 0, 0, fmt.Errorf("period must be at least 2, got %d", period)
	}

	middle, err = SMA(values, period)
	if err != nil {
		return 0, 0, 0, err
	}

	var ss float64
	for _, v := range values[len(values)-period:] {
		d := v - middle
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(period-1))

	return middle + width*sd, middle, middle - width*sd, nil
}
