package model

import "time"

// AttentionCriterion identifies a per-day attention criterion.
type AttentionCriterion string

const (
	CriterionAmplitude   AttentionCriterion = "AMPLITUDE"
	CriterionPriceChange AttentionCriterion = "PRICE_CHANGE"
	CriterionTurnover    AttentionCriterion = "TURNOVER"
)

// TriggerRule identifies a disposition window rule.
type TriggerRule string

const (
	TriggerConsecutive TriggerRule = "CONSECUTIVE_3"
	TriggerWithin10    TriggerRule = "SIX_IN_10"
	TriggerWithin30    TriggerRule = "TWELVE_IN_30"
)

// AttentionDay marks a trading day that met at least one attention criterion.
type AttentionDay struct {
	Date     time.Time
	Criteria []AttentionCriterion
}

// DispositionDay marks a trading day on which the stock qualifies as a
// disposition stock. AttentionIn10/AttentionIn30 are the attention-day counts
// over the trailing windows; zero when the window is incomplete.
type DispositionDay struct {
	Date          time.Time
	Rules         []TriggerRule
	AttentionIn10 int
	AttentionIn30 int
}

// Report is the full output of one evaluation run.
type Report struct {
	Attention    []AttentionDay
	Dispositions []DispositionDay
}
