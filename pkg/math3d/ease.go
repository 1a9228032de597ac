package math3d

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic maps linear progress p in [0,1] onto 1-(1-p)^3.
// Progress outside the unit interval is clamped.
func EaseOutCubic(p float64) float64 {
	p = Clamp(p, 0, 1)
	q := 1 - p
	return 1 - q*q*q
}
