package signals

// Config holds the detector's lookback windows, thresholds and fixed
// crossover strengths. The defaults are conventional heuristics, not tuned
// parameters; treat them as configuration, not business rules.
type Config struct {
	Lookback int `json:"lookback" yaml:"lookback"`

	RSIPeriod     int     `json:"rsi_period" yaml:"rsi_period"`
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold"`
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought"`

	MACDFast     int     `json:"macd_fast" yaml:"macd_fast"`
	MACDSlow     int     `json:"macd_slow" yaml:"macd_slow"`
	MACDSignal   int     `json:"macd_signal" yaml:"macd_signal"`
	MACDStrength float64 `json:"macd_strength" yaml:"macd_strength"`

	SMAFast     int     `json:"sma_fast" yaml:"sma_fast"`
	SMASlow     int     `json:"sma_slow" yaml:"sma_slow"`
	SMAStrength float64 `json:"sma_strength" yaml:"sma_strength"`

	BBPeriod    int     `json:"bb_period" yaml:"bb_period"`
	BBWidth     float64 `json:"bb_width" yaml:"bb_width"`
	BBProximity float64 `json:"bb_proximity" yaml:"bb_proximity"`
}

func DefaultConfig() Config {
	return Config{
		Lookback: 100,

		RSIPeriod:     14,
		RSIOversold:   30,
		RSIOverbought: 70,

		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		MACDStrength: 75,

		SMAFast:     20,
		SMASlow:     50,
		SMAStrength: 80,

		BBPeriod:    20,
		BBWidth:     2,
		BBProximity: 0.01,
	}
}
