package mathutil

import "math/bits"

// NextPowerOf2 returns the next power of 2 greater than or equal to n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// ChiSquare returns sum((observed-expected)^2/expected) over counts.
// A non-positive expectation yields 0.
func ChiSquare(counts []uint64, expected float64) float64 {
	if expected <= 0 {
		return 0
	}
	var chi float64
	for _, observed := range counts {
		diff := float64(observed) - expected
		chi += diff * diff / expected
	}
	return chi
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
