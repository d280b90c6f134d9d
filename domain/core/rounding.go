package core

import "math"

// Rounding is part of the engine's observable contract: ratios and scores are
// reported at 3 decimals, angular errors in degrees at 1 decimal. Consumers
// serialize the rounded values as-is rather than re-deriving them.

// Round3 rounds to 3 decimal places, half away from zero
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// Round1 rounds to 1 decimal place, half away from zero
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Clamp01 clamps a value into [0, 1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
