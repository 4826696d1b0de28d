package calculator

import "errors"

// CalculateTurnover computes the daily turnover ratio in percent:
// volume/outstanding*100.
func CalculateTurnover(volume, outstanding float64) (float64, error) {
	if outstanding <= 0 {
		return 0, errors.New("outstanding shares must be positive")
	}
	if volume < 0 {
		return 0, errors.New("volume must be non-negative")
	}
	return volume / outstanding * 100, nil
}
