package hillas

import (
	"math"
	"testing"
)

func TestPreprocessFlatImage(t *testing.T) {
	img, _ := NewBlankIntensityImage(8, 6)
	for i := range img.Pix {
		img.Pix[i] = 3.5
	}
	pre := Preprocess(img, 1.5, ScaleMeanAbsDeviation)
	if pre.Median != 3.5 {
		t.Errorf("Wrong median: %v, expected: %v", pre.Median, 3.5)
	}
	if pre.Scale != 0 {
		t.Errorf("Wrong scale: %v, expected: %v", pre.Scale, 0.0)
	}
	for i, v := range pre.Pix {
		if v != 0 {
			t.Errorf("Pixel %d should be zero, got %v", i, v)
			return
		}
	}
}

func TestPreprocessStatistics(t *testing.T) {
	img, _ := NewIntensityImage(5, 1, []float64{1, 2, 3, 4, 10})
	pre := Preprocess(img, 0, ScaleMeanAbsDeviation)
	if pre.Median != 3 {
		t.Errorf("Wrong median: %v, expected: %v", pre.Median, 3.0)
	}
	// |1-3|+|2-3|+0+|4-3|+|10-3| = 11
	if math.Abs(pre.Scale-11.0/5.0) > eps {
		t.Errorf("Wrong scale: %v, expected: %v", pre.Scale, 11.0/5.0)
	}
	expected := []float64{0, 0, 0, 1, 7}
	for i := range expected {
		if pre.Pix[i] != expected[i] {
			t.Errorf("Wrong excess at %d: %v, expected: %v", i, pre.Pix[i], expected[i])
		}
	}

	std := Preprocess(img, 0, ScaleStdDev)
	// sample standard deviation of {1,2,3,4,10}
	if math.Abs(std.Scale-math.Sqrt(12.5)) > eps {
		t.Errorf("Wrong std scale: %v, expected: %v", std.Scale, math.Sqrt(12.5))
	}
}

func TestPreprocessIgnoresInvalidPixels(t *testing.T) {
	img, _ := NewIntensityImage(4, 1, []float64{math.NaN(), -5, 2, math.Inf(1)})
	pre := Preprocess(img, 0, ScaleMeanAbsDeviation)
	for i, v := range pre.Pix {
		if !isFinite(v) || v < 0 {
			t.Errorf("Pixel %d should be finite and non-negative, got %v", i, v)
		}
	}
	if pre.Pix[2] != 2 {
		t.Errorf("Wrong excess: %v, expected: %v", pre.Pix[2], 2.0)
	}
}

func TestGaussianBlurKeepsConstant(t *testing.T) {
	width, height := 7, 5
	src := make([]float64, width*height)
	for i := range src {
		src[i] = 2
	}
	out := gaussianBlur(src, width, height, 2.0)
	for i, v := range out {
		if math.Abs(v-2) > eps {
			t.Errorf("Edge handling changed pixel %d: %v, expected: %v", i, v, 2.0)
			return
		}
	}
}

func TestGaussianBlurImpulse(t *testing.T) {
	width, height := 21, 21
	src := make([]float64, width*height)
	src[10*width+10] = 1
	out := gaussianBlur(src, width, height, 1.0)
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-1) > eps {
		t.Errorf("Blur should preserve total light: %v, expected: %v", sum, 1.0)
	}
	if out[10*width+11] != out[11*width+10] || out[10*width+9] != out[10*width+11] {
		t.Errorf("Blur of an impulse should be symmetric")
	}
	if out[10*width+10] <= out[10*width+11] {
		t.Errorf("Centre should stay the brightest pixel")
	}
}

func TestGaussianBlurZeroSigma(t *testing.T) {
	src := []float64{1, 5, 0, 2}
	out := gaussianBlur(src, 2, 2, 0)
	for i := range src {
		if out[i] != src[i] {
			t.Errorf("Zero sigma must be identity: %v, expected: %v", out, src)
			return
		}
	}
	out[0] = 100
	if src[0] == 100 {
		t.Errorf("Blur must not alias its input")
	}
}
