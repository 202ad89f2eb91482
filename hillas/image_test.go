package hillas

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
)

func TestNewIntensityImage(t *testing.T) {
	img, err := NewIntensityImage(3, 2, []float64{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Error(err)
		return
	}
	if v := img.At(2, 1); v != 5 {
		t.Errorf("Wrong pixel value: %v, expected: %v", v, 5.0)
	}
	if v := img.At(3, 0); v != 0 {
		t.Errorf("Out of bounds pixel should be zero, got %v", v)
	}
	img.Set(1, 1, 7)
	if v := img.Pix[4]; v != 7 {
		t.Errorf("Wrong pixel value after Set: %v, expected: %v", v, 7.0)
	}
}

func TestNewIntensityImageErrors(t *testing.T) {
	_, err := NewIntensityImage(0, 2, nil)
	if errors.Cause(err) != ErrInvalidDimensions {
		t.Errorf("Wrong error: %v, expected: %v", err, ErrInvalidDimensions)
	}
	_, err = NewIntensityImage(2, 2, []float64{1, 2, 3})
	if errors.Cause(err) != ErrBufferSize {
		t.Errorf("Wrong error: %v, expected: %v", err, ErrBufferSize)
	}
	_, err = NewBlankIntensityImage(-1, 4)
	if errors.Cause(err) != ErrInvalidDimensions {
		t.Errorf("Wrong error: %v, expected: %v", err, ErrInvalidDimensions)
	}
	var nilImage *IntensityImage
	if errors.Cause(nilImage.Validate()) != ErrInvalidDimensions {
		t.Errorf("nil image should be invalid")
	}
}

func TestIntensityImageFrom(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 3))
	src.SetGray(1, 2, color.Gray{Y: 255})
	src.SetGray(3, 0, color.Gray{Y: 128})
	img, err := IntensityImageFrom(src)
	if err != nil {
		t.Error(err)
		return
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("Wrong dimensions: %dx%d, expected: 4x3", img.Width, img.Height)
		return
	}
	if v := img.At(1, 2); v < 0.99 || v > 1.0+eps {
		t.Errorf("White pixel should have luminance ~1, got %v", v)
	}
	mid := img.At(3, 0)
	if mid <= 0 || mid >= img.At(1, 2) {
		t.Errorf("Grey pixel luminance %v should lie between black and white", mid)
	}
	if v := img.At(0, 0); v != 0 {
		t.Errorf("Black pixel should have zero luminance, got %v", v)
	}
}

func TestIntensityImageFromTransparent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img, err := IntensityImageFrom(src)
	if err != nil {
		t.Error(err)
		return
	}
	if v := img.At(0, 0); v != 0 {
		t.Errorf("Transparent pixel should be zero, got %v", v)
	}
	if v := img.At(1, 1); v < 0.99 {
		t.Errorf("Opaque white pixel should be ~1, got %v", v)
	}
}
