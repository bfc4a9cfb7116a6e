package utils

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp 把 v 限制在 [lo, hi] 之间
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
