package gacha

import (
	"fmt"
	"math"
)

// validateProb rejects NaN, infinities and anything outside [0, 1].
func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidProb, p)
	}
	return nil
}
