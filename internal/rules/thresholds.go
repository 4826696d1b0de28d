package rules

// Thresholds is the regulatory rule table: per-day attention criteria plus the
// disposition window rules. Percentages use strict `>`, the volume floor and
// the window counts use `>=`.
type Thresholds struct {
	AmplitudePct     float64 // intraday amplitude
	AmplitudeDiffPct float64 // amplitude minus index amplitude
	ChangePct        float64 // close-over-previous-close change
	ChangeDiffPct    float64 // change minus index change
	TurnoverPct      float64 // volume / outstanding shares
	MinVolume        float64 // floor for all attention criteria

	ConsecutiveDays  int // attention days in a row
	ShortWindow      int // trading days
	ShortWindowCount int // attention days required within ShortWindow
	LongWindow       int
	LongWindowCount  int
}

// DefaultThresholds returns the TWSE attention and disposition standards
// (公告或通知注意交易資訊暨處置作業要點, simplified from Articles 2 and 6).
func DefaultThresholds() Thresholds {
	return Thresholds{
		AmplitudePct:     9,
		AmplitudeDiffPct: 5,
		ChangePct:        6,
		ChangeDiffPct:    4,
		TurnoverPct:      10,
		MinVolume:        3000,
		ConsecutiveDays:  3,
		ShortWindow:      10,
		ShortWindowCount: 6,
		LongWindow:       30,
		LongWindowCount:  12,
	}
}
