package rules

import "DispositionSentinel/internal/model"

// checkAmplitude reports whether the amplitude criterion holds: intraday
// amplitude over threshold and exceeding the index amplitude by the margin.
func checkAmplitude(m model.DailyMetrics, t Thresholds) bool {
	return m.Amplitude > t.AmplitudePct && m.AmplitudeDiff > t.AmplitudeDiffPct
}

// checkPriceChange reports whether the price-change criterion holds. Never
// fires on the first record of a series, which has no previous close.
func checkPriceChange(m model.DailyMetrics, t Thresholds) bool {
	return m.HasPrevClose && m.PriceChange > t.ChangePct && m.ChangeDiff > t.ChangeDiffPct
}

// checkTurnover reports whether the turnover criterion holds.
func checkTurnover(m model.DailyMetrics, t Thresholds) bool {
	return m.Turnover > t.TurnoverPct
}

// EvaluateAttention returns the attention criteria met on a single day, in a
// fixed order. All criteria require the day's volume to reach the minimum.
func EvaluateAttention(m model.DailyMetrics, volume float64, t Thresholds) []model.AttentionCriterion {
	if volume < t.MinVolume {
		return nil
	}
	var met []model.AttentionCriterion
	if checkAmplitude(m, t) {
		met = append(met, model.CriterionAmplitude)
	}
	if checkPriceChange(m, t) {
		met = append(met, model.CriterionPriceChange)
	}
	if checkTurnover(m, t) {
		met = append(met, model.CriterionTurnover)
	}
	return met
}
