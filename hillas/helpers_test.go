package hillas

import (
	"math"
	"math/rand"
)

const (
	eps = 0.00001
)

// syntheticShower renders an anti-aliased uniform ellipse (full axes length x width,
// major axis at angleDeg) of the given amplitude on top of uniform noise in [0, noise).
func syntheticShower(width, height int, cx, cy, length, minor, angleDeg, amplitude, noise float64, seed int64) *IntensityImage {
	const subsamples = 4
	rng := rand.New(rand.NewSource(seed))
	a, b := length/2, minor/2
	theta := angleDeg * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	pix := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			value := noise * rng.Float64()
			covered := 0
			for sy := 0; sy < subsamples; sy++ {
				for sx := 0; sx < subsamples; sx++ {
					dx := float64(x) - cx - 0.5 + (float64(sx)+0.5)/subsamples
					dy := float64(y) - cy - 0.5 + (float64(sy)+0.5)/subsamples
					u := dx*cos + dy*sin
					v := -dx*sin + dy*cos
					if (u/a)*(u/a)+(v/b)*(v/b) <= 1 {
						covered++
					}
				}
			}
			value += amplitude * float64(covered) / (subsamples * subsamples)
			pix[y*width+x] = value
		}
	}
	return &IntensityImage{Width: width, Height: height, Pix: pix}
}

// latticeSet returns uniform-weight pixels covering [x0, x0+w) x [y0, y0+h)
func latticeSet(x0, y0, w, h int) PixelSet {
	pixels := make([]Pixel, 0, w*h)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			pixels = append(pixels, Pixel{X: float64(x), Y: float64(y), Weight: 1})
		}
	}
	return PixelSet{Pixels: pixels}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
