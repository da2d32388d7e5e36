package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMA(t *testing.T) {
	t.Parallel()

	v, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = SMA([]float64{10, 20}, 2)
	assert.NoError(t, err)
	assert.Equal(t, 15.0, v)
}

func TestSMAInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := SMA([]float64{1, 2}, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = SMA([]float64{1, 2, 3}, 0)
	assert.Error(t, err)
}

func TestEMASeriesSeededWithFirstValue(t *testing.T) {
	t.Parallel()

	ema := EMASeries([]float64{10, 20, 30}, 3)
	assert.Len(t, ema, 3)
	assert.Equal(t, 10.0, ema[0])
	// alpha = 0.5: 10 -> 15 -> 22.5
	assert.InDelta(t, 15.0, ema[1], 1e-9)
	assert.InDelta(t, 22.5, ema[2], 1e-9)

	assert.Empty(t, EMASeries(nil, 3))
}

func TestRSIKnownValue(t *testing.T) {
	t.Parallel()

	// 14 changes: one +29.9, one -70.1, the rest flat.
	// avgGain/avgLoss = 29.9/70.1 so RSI = 100*29.9/100 = 29.9 exactly.
	closes := []float64{100, 129.9, 59.8}
	for len(closes) < 15 {
		closes = append(closes, 59.8)
	}

	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 29.9, rsi, 1e-9)
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi, err := RSI(closes, 14)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestRSIFlatWindow(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100
	}

	_, err := RSI(closes, 14)
	assert.ErrorIs(t, err, ErrNoMovement)
}

func TestRSIInsufficientData(t *testing.T) {
	t.Parallel()

	_, err := RSI(make([]float64, 14), 14) // needs period+1
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMACDSeriesConstantSeries(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}

	macd, sig := MACDSeries(closes, 12, 26, 9)
	assert.Len(t, macd, 30)
	assert.Len(t, sig, 30)
	for i := range macd {
		assert.InDelta(t, 0, macd[i], 1e-9)
		assert.InDelta(t, 0, sig[i], 1e-9)
	}
}

func TestMACDSeriesRisingSeries(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	macd, _ := MACDSeries(closes, 12, 26, 9)
	// Fast EMA tracks a rising series more closely than the slow EMA.
	assert.Greater(t, macd[len(macd)-1], 0.0)
}

func TestBollingerSampleStd(t *testing.T) {
	t.Parallel()

	// Values 2,4,4,4,5,5,7,9: mean 5, sample std 2.138...
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	upper, middle, lower, err := Bollinger(values, 8, 2)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, middle)
	assert.InDelta(t, 5.0+2*2.13808993529939517, upper, 1e-9)
	assert.InDelta(t, 5.0-2*2.13808993529939517, lower, 1e-9)
}

func TestBollingerErrors(t *testing.T) {
	t.Parallel()

	_, _, _, err := Bollinger([]float64{1, 2, 3}, 1, 2)
	assert.Error(t, err)

	_, _, _, err = Bollinger([]float64{1, 2}, 5, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
