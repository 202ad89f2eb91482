package hillas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// scaleFloor keeps thresholds meaningful on near-uniform images
const scaleFloor = 1e-9

// Preprocessed is the background-suppressed, smoothed version of an image
// together with the background statistics used to produce it.
type Preprocessed struct {
	Width  int
	Height int
	// Smoothed non-negative excess over the background median
	Pix []float64
	// Background level (median of the raw pixels)
	Median float64
	// Robust spread of the raw pixels about the median
	Scale float64
}

// At returns the smoothed excess of pixel (x, y)
func (pre *Preprocessed) At(x, y int) float64 {
	return pre.Pix[y*pre.Width+x]
}

// Preprocess estimates the background of img, subtracts it (clamping at zero)
// and applies a separable gaussian blur of standard deviation sigma.
// The image must be valid: see IntensityImage.Validate.
func Preprocess(img *IntensityImage, sigma float64, estimator ScaleEstimator) *Preprocessed {
	n := img.Len()
	values := make([]float64, n)
	for i, v := range img.Pix {
		values[i] = nonNegative(v)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	scale := robustScale(values, median, estimator)

	excess := make([]float64, n)
	for i, v := range values {
		if d := v - median; d > 0 {
			excess[i] = d
		}
	}

	return &Preprocessed{
		Width:  img.Width,
		Height: img.Height,
		Pix:    gaussianBlur(excess, img.Width, img.Height, sigma),
		Median: median,
		Scale:  scale,
	}
}

func robustScale(values []float64, median float64, estimator ScaleEstimator) float64 {
	switch estimator {
	case ScaleStdDev:
		if len(values) < 2 {
			return 0
		}
		return stat.StdDev(values, nil)
	default:
		deviations := make([]float64, len(values))
		for i, v := range values {
			deviations[i] = math.Abs(v - median)
		}
		return stat.Mean(deviations, nil)
	}
}

// gaussianKernel returns a normalized kernel with radius ceil(3*sigma)
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur convolves horizontally then vertically. Samples beyond the
// border take the value of the nearest edge pixel.
func gaussianBlur(src []float64, width, height int, sigma float64) []float64 {
	if sigma <= 0 {
		out := make([]float64, len(src))
		copy(out, src)
		return out
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	horizontal := make([]float64, len(src))
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * src[row+clampInt(x+k, 0, width-1)]
			}
			horizontal[row+x] = acc
		}
	}

	out := make([]float64, len(src))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * horizontal[clampInt(y+k, 0, height-1)*width+x]
			}
			out[y*width+x] = acc
		}
	}
	return out
}
