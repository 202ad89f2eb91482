package hillas

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// IntensityImage is a row-major buffer of non-negative pixel intensities.
// The value of pixel (x, y) is stored at index y*Width + x.
type IntensityImage struct {
	Width  int
	Height int
	Pix    []float64
}

// NewIntensityImage wraps pix as an image after checking its dimensions.
// The buffer is not copied.
func NewIntensityImage(width, height int, pix []float64) (*IntensityImage, error) {
	img := &IntensityImage{
		Width:  width,
		Height: height,
		Pix:    pix,
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// NewBlankIntensityImage allocates a zero-filled image
func NewBlankIntensityImage(width, height int) (*IntensityImage, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", width, height)
	}
	return NewIntensityImage(width, height, make([]float64, width*height))
}

// IntensityImageFrom converts any raster into an intensity image using the
// linear (CIE Y) luminance of each pixel, in [0, 1]. Fully transparent pixels are zero.
func IntensityImageFrom(src image.Image) (*IntensityImage, error) {
	nrgba := imaging.Clone(src)
	bounds := nrgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", width, height)
	}
	pix := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := colorful.MakeColor(nrgba.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
			if !ok {
				continue
			}
			_, luminance, _ := c.Xyz()
			pix[y*width+x] = nonNegative(luminance)
		}
	}
	return NewIntensityImage(width, height, pix)
}

// Validate checks the image geometry
func (img *IntensityImage) Validate() error {
	if img == nil {
		return errors.Wrap(ErrInvalidDimensions, "nil image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "got %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height {
		return errors.Wrapf(ErrBufferSize, "expected %d pixels for %dx%d, got %d", img.Width*img.Height, img.Width, img.Height, len(img.Pix))
	}
	return nil
}

// At returns the intensity of pixel (x, y). Coordinates outside the image yield zero.
func (img *IntensityImage) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0
	}
	return img.Pix[y*img.Width+x]
}

// Set writes the intensity of pixel (x, y). Coordinates outside the image are ignored.
func (img *IntensityImage) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	img.Pix[y*img.Width+x] = v
}

// Len returns the number of pixels
func (img *IntensityImage) Len() int {
	return img.Width * img.Height
}
