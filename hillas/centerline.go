package hillas

import "math"

const (
	// Minimum number of pixels for a quadratic centerline
	centerlineMinPixels = 6
	// Normal matrices whose determinant falls below this fraction of the
	// product of their diagonal are treated as singular
	normalEquationsEpsilon = 1e-12
)

type centerline struct {
	Points []Point
	A0     float64
	A1     float64
	A2     float64
	// Maximum deviation of the parabola from its chord over the sampled span
	Sag float64
}

// fitCenterline fits cross = a0 + a1*along + a2*along^2 in the frame of the
// major axis by weighted least squares and samples it at n points between
// the extreme along-axis positions of the region.
func fitCenterline(ps PixelSet, centroid Point, angle float64, n int) (centerline, bool) {
	if ps.Len() < centerlineMinPixels || n < 2 {
		return centerline{}, false
	}
	cos, sin := math.Cos(angle), math.Sin(angle)

	// Power sums of the normal equations: s[k] = sum(w*u^k), t[k] = sum(w*u^k*v)
	var s [5]float64
	var t [3]float64
	minU, maxU := math.Inf(1), math.Inf(-1)
	for _, p := range ps.Pixels {
		w := nonNegative(p.Weight)
		dx := p.X - centroid.X
		dy := p.Y - centroid.Y
		u := dx*cos + dy*sin
		v := -dx*sin + dy*cos
		minU = math.Min(minU, u)
		maxU = math.Max(maxU, u)
		uk := w
		for k := 0; k < 5; k++ {
			s[k] += uk
			if k < 3 {
				t[k] += uk * v
			}
			uk *= u
		}
	}

	coeffs, ok := solveSymmetric3(
		[3][3]float64{
			{s[0], s[1], s[2]},
			{s[1], s[2], s[3]},
			{s[2], s[3], s[4]},
		},
		t,
	)
	if !ok {
		return centerline{}, false
	}
	a0, a1, a2 := coeffs[0], coeffs[1], coeffs[2]

	points := make([]Point, n)
	step := (maxU - minU) / float64(n-1)
	for i := 0; i < n; i++ {
		u := minU + float64(i)*step
		v := a0 + a1*u + a2*u*u
		points[i] = Point{
			X: centroid.X + u*cos - v*sin,
			Y: centroid.Y + u*sin + v*cos,
		}
	}
	halfSpan := (maxU - minU) / 2
	return centerline{
		Points: points,
		A0:     a0,
		A1:     a1,
		A2:     a2,
		Sag:    math.Abs(a2) * halfSpan * halfSpan,
	}, true
}

// solveSymmetric3 solves m*x = b through the closed-form inverse of a
// symmetric positive semi-definite 3x3 matrix.
func solveSymmetric3(m [3][3]float64, b [3]float64) ([3]float64, bool) {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	diag := m[0][0] * m[1][1] * m[2][2]
	if !isFinite(det) || diag <= 0 || math.Abs(det) <= normalEquationsEpsilon*diag {
		return [3]float64{}, false
	}
	c10 := m[0][2]*m[2][1] - m[0][1]*m[2][2]
	c11 := m[0][0]*m[2][2] - m[0][2]*m[2][0]
	c12 := m[0][1]*m[2][0] - m[0][0]*m[2][1]
	c20 := m[0][1]*m[1][2] - m[0][2]*m[1][1]
	c21 := m[0][2]*m[1][0] - m[0][0]*m[1][2]
	c22 := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	// inverse = adjugate / det, adjugate[i][j] = cofactor[j][i]
	inv := [3][3]float64{
		{c00 / det, c10 / det, c20 / det},
		{c01 / det, c11 / det, c21 / det},
		{c02 / det, c12 / det, c22 / det},
	}
	var x [3]float64
	for i := 0; i < 3; i++ {
		x[i] = inv[i][0]*b[0] + inv[i][1]*b[1] + inv[i][2]*b[2]
	}
	return x, true
}
