package model

import "time"

// DailyRecord is one trading day of stock and same-day index data.
type DailyRecord struct {
	Date              time.Time
	Open              float64
	High              float64
	Low               float64
	Close             float64
	Volume            float64
	IndexOpen         float64
	IndexHigh         float64
	IndexLow          float64
	IndexClose        float64
	OutstandingShares float64
}
