package hillas

import (
	"image"
	"math"
)

// Rectangle is an axis-aligned box in pixel coordinates.
// X and Y are the top-left corner, Width and Height are inclusive pixel spans.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// Sub returns p shifted by -offset
func (p Point) Sub(offset Point) Point {
	return Point{X: p.X - offset.X, Y: p.Y - offset.Y}
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
