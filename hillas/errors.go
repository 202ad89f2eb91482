package hillas

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when an image has a non-positive width or height
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrBufferSize is returned when a pixel buffer does not hold exactly width*height values
	ErrBufferSize = errors.New("pixel buffer length does not match image dimensions")
	// ErrDimensionMismatch is returned when a frame image differs from the pipeline's fixed size
	ErrDimensionMismatch = errors.New("image dimensions do not match pipeline dimensions")
	// ErrUnknownCamera is returned when a frame refers to a camera missing from the layout
	ErrUnknownCamera = errors.New("camera is not part of the layout")
	// ErrInvalidParams is returned by parameter validation
	ErrInvalidParams = errors.New("invalid parameters")
)
