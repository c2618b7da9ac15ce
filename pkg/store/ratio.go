package store

import "math"

func isWhole(x float64) bool {
	return x == math.Floor(x)
}

// SimplifiedRatio reduces a headcount pair x:y to its lowest whole-number
// form by repeated halving: while both halves stay whole it keeps halving,
// and the moment either goes fractional it backs out one step and stops.
// This is the exact reduction dashboards were built against, so it is
// reproduced as-is even though it is not a GCD reduction for pairs that are
// never both even (e.g. one odd operand returns unchanged).
func SimplifiedRatio(x, y float64) Ratio {
	if x == 0 && y == 0 {
		return Ratio{0, 0}
	}

	if isWhole(x) && isWhole(y) {
		return SimplifiedRatio(x/2, y/2)
	}
	return Ratio{x * 2, y * 2}
}
