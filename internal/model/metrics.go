package model

// DailyMetrics holds the derived per-day trading metrics, all in percent.
type DailyMetrics struct {
	Amplitude      float64
	IndexAmplitude float64
	AmplitudeDiff  float64
	PriceChange    float64
	IndexChange    float64
	ChangeDiff     float64
	Turnover       float64
	HasPrevClose   bool // false for the first record; the price-change criterion needs a previous close
}
