package calculator

import (
	"fmt"

	"DispositionSentinel/internal/model"
)

// ComputeDailyMetrics derives the per-day metrics for an ordered record
// sequence. The first record carries no price change (no previous close);
// its HasPrevClose is false and the change fields stay zero.
func ComputeDailyMetrics(records []model.DailyRecord) ([]model.DailyMetrics, error) {
	metrics := make([]model.DailyMetrics, len(records))
	for i, rec := range records {
		m := model.DailyMetrics{}

		amp, err := CalculateAmplitude(rec.High, rec.Low)
		if err != nil {
			return nil, fmt.Errorf("record %s: amplitude: %w", rec.Date.Format("2006-01-02"), err)
		}
		idxAmp, err := CalculateAmplitude(rec.IndexHigh, rec.IndexLow)
		if err != nil {
			return nil, fmt.Errorf("record %s: index amplitude: %w", rec.Date.Format("2006-01-02"), err)
		}
		m.Amplitude = amp
		m.IndexAmplitude = idxAmp
		m.AmplitudeDiff = amp - idxAmp

		if i > 0 {
			prev := records[i-1]
			chg, err := CalculateChange(rec.Close, prev.Close)
			if err != nil {
				return nil, fmt.Errorf("record %s: price change: %w", rec.Date.Format("2006-01-02"), err)
			}
			idxChg, err := CalculateChange(rec.IndexClose, prev.IndexClose)
			if err != nil {
				return nil, fmt.Errorf("record %s: index change: %w", rec.Date.Format("2006-01-02"), err)
			}
			m.PriceChange = chg
			m.IndexChange = idxChg
			m.ChangeDiff = chg - idxChg
			m.HasPrevClose = true
		}

		turnover, err := CalculateTurnover(rec.Volume, rec.OutstandingShares)
		if err != nil {
			return nil, fmt.Errorf("record %s: turnover: %w", rec.Date.Format("2006-01-02"), err)
		}
		m.Turnover = turnover

		metrics[i] = m
	}
	return metrics, nil
}
