package hillas

import "math"

const (
	// Determinant below which the covariance is treated as singular
	covarianceEpsilon = 1e-9
	// Lower bound for eigenvalues before taking square roots
	eigenFloor = 1e-12
)

// FitOptions configures RobustFit
type FitOptions struct {
	MahalanobisThreshold float64
	MaxIterations        int
	MinArea              int
	AxisScale            float64
	FitCenterline        bool
	CenterlinePoints     int
	CurvatureThreshold   float64
}

// DefaultFitOptions returns the fitter part of DefaultParams
func DefaultFitOptions() FitOptions {
	return DefaultParams().fitOptions()
}

// FitResult is the outcome of a successful robust fit
type FitResult struct {
	Record ShapeRecord
	// Pixels that survived outlier rejection
	Members PixelSet
	// Moments of Members
	Moments WeightedMoments
	// Number of passes that removed pixels
	Iterations int
}

// RobustFit fits an ellipse to the weighted pixel set by iteratively removing
// pixels whose squared Mahalanobis distance to the centroid exceeds the
// threshold, then recovering the axes from the covariance eigenvalues.
// It returns nil when the set is smaller than MinArea or carries no weight.
func RobustFit(ps PixelSet, opts FitOptions) *FitResult {
	if ps.Len() < opts.MinArea || ps.Len() == 0 {
		return nil
	}
	members := make([]Pixel, len(ps.Pixels))
	copy(members, ps.Pixels)
	moments, ok := ComputeMoments(PixelSet{Pixels: members})
	if !ok {
		return nil
	}

	iterations := 0
	for iterations < opts.MaxIterations {
		distance := mahalanobisFunc(moments)
		kept := make([]Pixel, 0, len(members))
		for _, p := range members {
			if distance(p.X, p.Y) <= opts.MahalanobisThreshold {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(members) || len(kept) < opts.MinArea {
			break
		}
		next, ok := ComputeMoments(PixelSet{Pixels: kept})
		if !ok {
			// Only zero-weight pixels left: unsafe to continue
			break
		}
		members = kept
		moments = next
		iterations++
	}

	region := PixelSet{Pixels: members}
	major, minor, angle := principalAxes(moments)
	record := ShapeRecord{
		CentroidX:   moments.CentroidX,
		CentroidY:   moments.CentroidY,
		Length:      2 * opts.AxisScale * math.Sqrt(major),
		Width:       2 * opts.AxisScale * math.Sqrt(minor),
		Angle:       angle,
		TotalWeight: moments.TotalWeight,
		PixelsUsed:  len(members),
		Peak:        region.Peak(),
		BBox:        region.BBox(),
	}
	if opts.FitCenterline {
		if cl, ok := fitCenterline(region, moments.Centroid(), angle, opts.CenterlinePoints); ok {
			record.Centerline = cl.Points
			record.Curvature = cl.A2
			record.IsCurved = cl.Sag > opts.CurvatureThreshold
		}
	}
	return &FitResult{
		Record:     record,
		Members:    region,
		Moments:    moments,
		Iterations: iterations,
	}
}

// mahalanobisFunc returns the squared distance to the centroid under the
// inverse covariance, or the squared Euclidean distance for a singular covariance.
func mahalanobisFunc(m WeightedMoments) func(x, y float64) float64 {
	det := m.Sxx*m.Syy - m.Sxy*m.Sxy
	if det < covarianceEpsilon {
		return func(x, y float64) float64 {
			dx := x - m.CentroidX
			dy := y - m.CentroidY
			return dx*dx + dy*dy
		}
	}
	invXX := m.Syy / det
	invYY := m.Sxx / det
	invXY := -m.Sxy / det
	return func(x, y float64) float64 {
		dx := x - m.CentroidX
		dy := y - m.CentroidY
		return invXX*dx*dx + 2*invXY*dx*dy + invYY*dy*dy
	}
}

// principalAxes solves the 2x2 symmetric eigenproblem of the covariance.
// major >= minor >= eigenFloor. angle is the major-axis orientation.
func principalAxes(m WeightedMoments) (major, minor, angle float64) {
	halfTrace := (m.Sxx + m.Syy) / 2
	halfDiff := (m.Sxx - m.Syy) / 2
	root := math.Sqrt(halfDiff*halfDiff + m.Sxy*m.Sxy)
	major = math.Max(halfTrace+root, eigenFloor)
	minor = math.Max(halfTrace-root, eigenFloor)
	angle = normalizeAxial(0.5 * math.Atan2(2*m.Sxy, m.Sxx-m.Syy))
	return major, minor, angle
}
