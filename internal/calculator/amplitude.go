package calculator

import "errors"

// CalculateAmplitude computes the intraday amplitude in percent: (high-low)/low*100.
func CalculateAmplitude(high, low float64) (float64, error) {
	if low <= 0 {
		return 0, errors.New("low must be positive")
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	return (high - low) / low * 100, nil
}
