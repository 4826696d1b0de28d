package rules

import (
	"fmt"
	"time"

	"DispositionSentinel/internal/calculator"
	"DispositionSentinel/internal/model"
)

// ValidationError reports an input sequence that cannot be evaluated.
type ValidationError struct {
	Reason string
	Index  int
	Date   time.Time
}

func (e *ValidationError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("invalid input sequence: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input sequence: %s (record %d, %s)",
		e.Reason, e.Index, e.Date.Format("2006-01-02"))
}

// Evaluate runs the full disposition check over the record sequence: validate,
// derive per-day metrics, mark attention days, then apply the disposition
// window rules. The result lists attention and disposition days in ascending
// date order. Pure; the input is never modified.
func Evaluate(records []model.DailyRecord, t Thresholds) (*model.Report, error) {
	if err := validate(records); err != nil {
		return nil, err
	}

	metrics, err := calculator.ComputeDailyMetrics(records)
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}

	report := &model.Report{}
	flagged := make([]bool, len(records))
	for i, m := range metrics {
		criteria := EvaluateAttention(m, records[i].Volume, t)
		if len(criteria) > 0 {
			flagged[i] = true
			report.Attention = append(report.Attention, model.AttentionDay{
				Date:     records[i].Date,
				Criteria: criteria,
			})
		}
	}

	// prefix[i] = attention days among records[0:i], for O(1) window counts.
	prefix := make([]int, len(records)+1)
	for i, f := range flagged {
		prefix[i+1] = prefix[i]
		if f {
			prefix[i+1]++
		}
	}

	consecutive := 0
	for i := range records {
		if flagged[i] {
			consecutive++
		} else {
			consecutive = 0
		}

		day := model.DispositionDay{Date: records[i].Date}

		// Each window rule is evaluated only once its full trailing window
		// exists; earlier dates are skipped for that rule.
		if i >= t.ConsecutiveDays-1 && consecutive >= t.ConsecutiveDays {
			day.Rules = append(day.Rules, model.TriggerConsecutive)
		}
		if i >= t.ShortWindow-1 {
			day.AttentionIn10 = prefix[i+1] - prefix[i+1-t.ShortWindow]
			if day.AttentionIn10 >= t.ShortWindowCount {
				day.Rules = append(day.Rules, model.TriggerWithin10)
			}
		}
		if i >= t.LongWindow-1 {
			day.AttentionIn30 = prefix[i+1] - prefix[i+1-t.LongWindow]
			if day.AttentionIn30 >= t.LongWindowCount {
				day.Rules = append(day.Rules, model.TriggerWithin30)
			}
		}

		if len(day.Rules) > 0 {
			report.Dispositions = append(report.Dispositions, day)
		}
	}

	return report, nil
}

func validate(records []model.DailyRecord) error {
	if len(records) == 0 {
		return &ValidationError{Reason: "empty"}
	}
	for i, rec := range records {
		if rec.Open <= 0 || rec.High <= 0 || rec.Low <= 0 || rec.Close <= 0 {
			return &ValidationError{Reason: "non-positive price", Index: i, Date: rec.Date}
		}
		if rec.IndexOpen <= 0 || rec.IndexHigh <= 0 || rec.IndexLow <= 0 || rec.IndexClose <= 0 {
			return &ValidationError{Reason: "non-positive index value", Index: i, Date: rec.Date}
		}
		if rec.OutstandingShares <= 0 {
			return &ValidationError{Reason: "non-positive outstanding shares", Index: i, Date: rec.Date}
		}
		if rec.Volume < 0 {
			return &ValidationError{Reason: "negative volume", Index: i, Date: rec.Date}
		}
		if i > 0 {
			if rec.Date.Equal(records[i-1].Date) {
				return &ValidationError{Reason: "duplicate date", Index: i, Date: rec.Date}
			}
			if rec.Date.Before(records[i-1].Date) {
				return &ValidationError{Reason: "unsorted dates", Index: i, Date: rec.Date}
			}
		}
	}
	return nil
}
