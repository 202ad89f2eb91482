package hillas

// ShapeRecord holds the Hillas parameters of a single camera image.
// Length >= Width >= 0 always holds. Angle is the orientation of the major
// axis in radians, in (-π/2, π/2], measured from the +X axis towards +Y.
type ShapeRecord struct {
	CentroidX   float64
	CentroidY   float64
	Length      float64
	Width       float64
	Angle       float64
	TotalWeight float64
	PixelsUsed  int
	// Largest pixel weight in the fitted region
	Peak float64
	// Bounding box of the fitted region
	BBox     Rectangle
	IsCurved bool
	// Quadratic coefficient of the centerline, in 1/pixel. Zero without a centerline
	Curvature float64
	// Ordered samples of the fitted centerline along the major axis; nil when no centerline was fitted
	Centerline []Point
}

// Center returns the centroid of the record
func (rec *ShapeRecord) Center() Point {
	return Point{X: rec.CentroidX, Y: rec.CentroidY}
}

// Elongation returns Length/Width, or +Inf for a zero width
func (rec *ShapeRecord) Elongation() float64 {
	if rec.Width <= 0 {
		return posInf
	}
	return rec.Length / rec.Width
}
