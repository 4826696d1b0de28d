package rules

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"DispositionSentinel/internal/model"
)

var testBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// makeFlatRecords builds n flat trading days: price 100, index 10000,
// volume 1000, one million shares outstanding. Nothing in the series
// meets any attention criterion.
func makeFlatRecords(n int) []model.DailyRecord {
	records := make([]model.DailyRecord, n)
	for i := range records {
		records[i] = model.DailyRecord{
			Date:              testBase.AddDate(0, 0, i),
			Open:              100,
			High:              100,
			Low:               100,
			Close:             100,
			Volume:            1000,
			IndexOpen:         10000,
			IndexHigh:         10000,
			IndexLow:          10000,
			IndexClose:        10000,
			OutstandingShares: 1000000,
		}
	}
	return records
}

// spikeTurnover turns the given days into attention days via the turnover
// criterion (50% turnover, volume well above the floor).
func spikeTurnover(records []model.DailyRecord, days ...int) {
	for _, d := range days {
		records[d].Volume = 500000
	}
}

func dispositionDates(rep *model.Report) []time.Time {
	dates := make([]time.Time, len(rep.Dispositions))
	for i, d := range rep.Dispositions {
		dates[i] = d.Date
	}
	return dates
}

func hasRule(day model.DispositionDay, rule model.TriggerRule) bool {
	for _, r := range day.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

func TestEvaluate_FlatSeries(t *testing.T) {
	records := makeFlatRecords(30)
	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Attention) != 0 {
		t.Errorf("expected no attention days, got %d", len(rep.Attention))
	}
	if len(rep.Dispositions) != 0 {
		t.Errorf("expected no disposition days, got %d", len(rep.Dispositions))
	}
}

func TestEvaluate_PriceSurge(t *testing.T) {
	// Ten days in which the stock climbs ~20% while the index stays flat:
	// three consecutive +6.5% closes at the end of the window.
	records := makeFlatRecords(10)
	price := 100.0
	for i := 7; i < 10; i++ {
		next := price * 1.065
		records[i].Open = price
		records[i].Low = price
		records[i].High = next
		records[i].Close = next
		records[i].Volume = 5000
		price = next
	}
	if price < 120 {
		t.Fatalf("fixture should rise at least 20%%, final close %.2f", price)
	}

	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Attention) != 3 {
		t.Fatalf("expected 3 attention days, got %d", len(rep.Attention))
	}
	for _, a := range rep.Attention {
		if len(a.Criteria) != 1 || a.Criteria[0] != model.CriterionPriceChange {
			t.Errorf("day %s: expected only the price-change criterion, got %v",
				a.Date.Format("2006-01-02"), a.Criteria)
		}
	}
	if len(rep.Dispositions) != 1 {
		t.Fatalf("expected 1 disposition day, got %d", len(rep.Dispositions))
	}
	day := rep.Dispositions[0]
	if !day.Date.Equal(records[9].Date) {
		t.Errorf("expected disposition on the final day, got %s", day.Date.Format("2006-01-02"))
	}
	if !hasRule(day, model.TriggerConsecutive) {
		t.Errorf("expected the consecutive rule, got %v", day.Rules)
	}
}

func TestEvaluate_TurnoverRun(t *testing.T) {
	// Turnover at 50% of outstanding shares for three consecutive days.
	records := makeFlatRecords(5)
	spikeTurnover(records, 2, 3, 4)

	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Attention) != 3 {
		t.Fatalf("expected 3 attention days, got %d", len(rep.Attention))
	}
	for _, a := range rep.Attention {
		if len(a.Criteria) != 1 || a.Criteria[0] != model.CriterionTurnover {
			t.Errorf("day %s: expected only the turnover criterion, got %v",
				a.Date.Format("2006-01-02"), a.Criteria)
		}
	}
	if len(rep.Dispositions) != 1 {
		t.Fatalf("expected 1 disposition day, got %d", len(rep.Dispositions))
	}
	day := rep.Dispositions[0]
	if !day.Date.Equal(records[4].Date) {
		t.Errorf("expected disposition on the final day of the run, got %s", day.Date.Format("2006-01-02"))
	}
	if !hasRule(day, model.TriggerConsecutive) {
		t.Errorf("expected the consecutive rule, got %v", day.Rules)
	}
}

func TestEvaluate_SixInTen(t *testing.T) {
	// Six attention days spread over the trailing ten, never three in a row.
	records := makeFlatRecords(15)
	spikeTurnover(records, 5, 6, 8, 9, 11, 12)

	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{records[12].Date, records[13].Date, records[14].Date}
	got := dispositionDates(rep)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected dispositions %v, got %v", want, got)
	}
	for _, day := range rep.Dispositions {
		if !hasRule(day, model.TriggerWithin10) {
			t.Errorf("day %s: expected the 10-day rule, got %v", day.Date.Format("2006-01-02"), day.Rules)
		}
		if hasRule(day, model.TriggerConsecutive) {
			t.Errorf("day %s: consecutive rule should not fire", day.Date.Format("2006-01-02"))
		}
		if day.AttentionIn10 != 6 {
			t.Errorf("day %s: expected 6 attention days in window, got %d",
				day.Date.Format("2006-01-02"), day.AttentionIn10)
		}
	}
}

func TestEvaluate_TwelveInThirty(t *testing.T) {
	// Twelve attention days in thirty, in pairs five days apart: never three
	// in a row and never six within any ten-day window.
	records := makeFlatRecords(30)
	spikeTurnover(records, 0, 1, 5, 6, 10, 11, 15, 16, 20, 21, 25, 26)

	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dispositions) != 1 {
		t.Fatalf("expected exactly 1 disposition day, got %d: %v",
			len(rep.Dispositions), dispositionDates(rep))
	}
	day := rep.Dispositions[0]
	if !day.Date.Equal(records[29].Date) {
		t.Errorf("expected disposition on day 30, got %s", day.Date.Format("2006-01-02"))
	}
	if !hasRule(day, model.TriggerWithin30) {
		t.Errorf("expected the 30-day rule, got %v", day.Rules)
	}
	if day.AttentionIn30 != 12 {
		t.Errorf("expected 12 attention days in window, got %d", day.AttentionIn30)
	}
}

func TestEvaluate_WindowSufficiency(t *testing.T) {
	// Two attention days but no rule has a complete window yet.
	short := makeFlatRecords(2)
	spikeTurnover(short, 0, 1)
	rep, err := Evaluate(short, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dispositions) != 0 {
		t.Errorf("expected no dispositions with incomplete windows, got %v", dispositionDates(rep))
	}

	// Three attention days complete the consecutive window on day 3.
	exact := makeFlatRecords(3)
	spikeTurnover(exact, 0, 1, 2)
	rep, err = Evaluate(exact, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Dispositions) != 1 || !rep.Dispositions[0].Date.Equal(exact[2].Date) {
		t.Errorf("expected a single disposition on day 3, got %v", dispositionDates(rep))
	}
}

func TestEvaluate_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(records []model.DailyRecord)
		criterion model.AttentionCriterion
		attention bool
	}{
		{
			name: "amplitude at threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].Low, r[1].High, r[1].Volume = 100, 109, 5000
			},
			criterion: model.CriterionAmplitude,
			attention: false,
		},
		{
			name: "amplitude above threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].Low, r[1].High, r[1].Volume = 100, 109.2, 5000
			},
			criterion: model.CriterionAmplitude,
			attention: true,
		},
		{
			name: "price change at threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].High, r[1].Close, r[1].Volume = 106, 106, 5000
			},
			criterion: model.CriterionPriceChange,
			attention: false,
		},
		{
			name: "price change above threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].High, r[1].Close, r[1].Volume = 106.5, 106.5, 5000
			},
			criterion: model.CriterionPriceChange,
			attention: true,
		},
		{
			name: "turnover at threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].Volume = 100000 // 10% of one million outstanding
			},
			criterion: model.CriterionTurnover,
			attention: false,
		},
		{
			name: "turnover above threshold",
			mutate: func(r []model.DailyRecord) {
				r[1].Volume = 105000 // 10.5%
			},
			criterion: model.CriterionTurnover,
			attention: true,
		},
		{
			name: "volume below floor",
			mutate: func(r []model.DailyRecord) {
				r[1].Volume, r[1].OutstandingShares = 2999, 5998 // 50% turnover, volume short of 3000
			},
			criterion: model.CriterionTurnover,
			attention: false,
		},
		{
			name: "volume at floor",
			mutate: func(r []model.DailyRecord) {
				r[1].Volume, r[1].OutstandingShares = 3000, 6000
			},
			criterion: model.CriterionTurnover,
			attention: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := makeFlatRecords(2)
			tt.mutate(records)
			rep, err := Evaluate(records, DefaultThresholds())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			fired := false
			for _, a := range rep.Attention {
				for _, c := range a.Criteria {
					if c == tt.criterion {
						fired = true
					}
				}
			}
			if fired != tt.attention {
				t.Errorf("criterion %s fired=%v, expected %v", tt.criterion, fired, tt.attention)
			}
		})
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []model.DailyRecord
	}{
		{"empty", nil},
		{"non-positive price", func() []model.DailyRecord {
			r := makeFlatRecords(3)
			r[1].Close = 0
			return r
		}()},
		{"non-positive outstanding", func() []model.DailyRecord {
			r := makeFlatRecords(3)
			r[2].OutstandingShares = -1
			return r
		}()},
		{"negative volume", func() []model.DailyRecord {
			r := makeFlatRecords(3)
			r[0].Volume = -100
			return r
		}()},
		{"duplicate date", func() []model.DailyRecord {
			r := makeFlatRecords(3)
			r[2].Date = r[1].Date
			return r
		}()},
		{"unsorted", func() []model.DailyRecord {
			r := makeFlatRecords(3)
			r[0].Date, r[1].Date = r[1].Date, r[0].Date
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.records, DefaultThresholds())
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	records := makeFlatRecords(15)
	spikeTurnover(records, 5, 6, 8, 9, 11, 12)

	first, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("evaluating the same input twice must yield identical output")
	}
}

func TestEvaluate_OutputAscendingSubset(t *testing.T) {
	records := makeFlatRecords(20)
	spikeTurnover(records, 3, 4, 5, 9, 10, 11, 13, 14, 15)

	rep, err := Evaluate(records, DefaultThresholds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inputDates := make(map[time.Time]bool, len(records))
	for _, r := range records {
		inputDates[r.Date] = true
	}
	var prev time.Time
	for _, d := range rep.Dispositions {
		if !inputDates[d.Date] {
			t.Errorf("output date %s not in input", d.Date.Format("2006-01-02"))
		}
		if !prev.IsZero() && !d.Date.After(prev) {
			t.Errorf("output not strictly ascending at %s", d.Date.Format("2006-01-02"))
		}
		prev = d.Date
	}
}
