package hillas

import "math"

var posInf = math.Inf(1)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonNegative maps negative, NaN and infinite values to zero.
func nonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// normalizeAxial maps an orientation angle into (-π/2, π/2].
// Ellipse axes have no direction, so θ and θ+π describe the same shape.
func normalizeAxial(angle float64) float64 {
	angle = math.Mod(angle, math.Pi)
	if angle <= -math.Pi/2 {
		angle += math.Pi
	} else if angle > math.Pi/2 {
		angle -= math.Pi
	}
	return angle
}

// AxialDifference returns the smallest absolute difference between two
// orientations modulo π. The result lies in [0, π/2].
func AxialDifference(a, b float64) float64 {
	return math.Abs(normalizeAxial(a - b))
}
