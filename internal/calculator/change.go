package calculator

import "errors"

// CalculateChange computes the close-over-previous-close change in percent.
func CalculateChange(close, prevClose float64) (float64, error) {
	if prevClose <= 0 {
		return 0, errors.New("previous close must be positive")
	}
	return (close - prevClose) / prevClose * 100, nil
}
