package hillas

import "math"

// Pixel is one member of a region
type Pixel struct {
	// Index into the source buffer (y*width + x)
	Index int
	X     float64
	Y     float64
	// Non-negative weight, usually the smoothed excess intensity
	Weight float64
}

// PixelSet is a region of weighted pixels
type PixelSet struct {
	Pixels []Pixel
}

// NewPixelSetFromIndices builds a region from buffer indices of an image of the given width.
// Weights are taken from values; negative and NaN values contribute zero.
func NewPixelSetFromIndices(indices []int, values []float64, width int) PixelSet {
	pixels := make([]Pixel, len(indices))
	for i, idx := range indices {
		pixels[i] = Pixel{
			Index:  idx,
			X:      float64(idx % width),
			Y:      float64(idx / width),
			Weight: nonNegative(values[idx]),
		}
	}
	return PixelSet{Pixels: pixels}
}

// Len returns the number of member pixels
func (ps PixelSet) Len() int {
	return len(ps.Pixels)
}

// TotalWeight returns the sum of member weights
func (ps PixelSet) TotalWeight() float64 {
	total := 0.0
	for _, p := range ps.Pixels {
		total += nonNegative(p.Weight)
	}
	return total
}

// Peak returns the largest member weight
func (ps PixelSet) Peak() float64 {
	peak := 0.0
	for _, p := range ps.Pixels {
		peak = maxFloat64(peak, nonNegative(p.Weight))
	}
	return peak
}

// BBox returns the smallest rectangle covering every member pixel
func (ps PixelSet) BBox() Rectangle {
	if len(ps.Pixels) == 0 {
		return Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range ps.Pixels {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

// WeightedMoments are the zeroth, first and central second moments of a weighted point set.
// Sxx, Syy and Sxy are normalized by TotalWeight, i.e. they form the weighted covariance.
type WeightedMoments struct {
	TotalWeight float64
	CentroidX   float64
	CentroidY   float64
	Sxx         float64
	Syy         float64
	Sxy         float64
}

// ComputeMoments returns the moments of ps. ok is false when the total weight is not positive.
func ComputeMoments(ps PixelSet) (moments WeightedMoments, ok bool) {
	var sumW, sumX, sumY float64
	for _, p := range ps.Pixels {
		w := nonNegative(p.Weight)
		sumW += w
		sumX += w * p.X
		sumY += w * p.Y
	}
	if sumW <= 0 || !isFinite(sumW) {
		return WeightedMoments{}, false
	}
	cx := sumX / sumW
	cy := sumY / sumW
	var sxx, syy, sxy float64
	for _, p := range ps.Pixels {
		w := nonNegative(p.Weight)
		dx := p.X - cx
		dy := p.Y - cy
		sxx += w * dx * dx
		syy += w * dy * dy
		sxy += w * dx * dy
	}
	return WeightedMoments{
		TotalWeight: sumW,
		CentroidX:   cx,
		CentroidY:   cy,
		Sxx:         sxx / sumW,
		Syy:         syy / sumW,
		Sxy:         sxy / sumW,
	}, true
}

// Centroid returns the weighted centroid
func (m WeightedMoments) Centroid() Point {
	return Point{X: m.CentroidX, Y: m.CentroidY}
}
