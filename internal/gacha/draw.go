package gacha

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw under p, return if it is hit.
// Exactly one uniform is consumed per call, even for p == 0 or p == 1, so a
// seeded sequence stays aligned no matter which rates are in play.
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if rng == nil {
		rng = NewEntropyRNG()
	}
	return rng.Float64() < p, nil
}
