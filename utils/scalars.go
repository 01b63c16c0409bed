package utils

// Sgn returns -1 for negative x and +1 otherwise, matching the sign
// convention of the flow update formulas.
func Sgn(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Clamp limits x to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
