package hillas

import (
	"github.com/pkg/errors"
)

// ScaleEstimator selects the robust spread statistic used for thresholding
type ScaleEstimator uint16

const (
	// ScaleMeanAbsDeviation is the mean absolute deviation about the median
	ScaleMeanAbsDeviation ScaleEstimator = iota
	// ScaleStdDev is the sample standard deviation
	ScaleStdDev
)

func (s ScaleEstimator) String() string {
	switch s {
	case ScaleMeanAbsDeviation:
		return "mean_abs_deviation"
	case ScaleStdDev:
		return "std_dev"
	default:
		return "unknown"
	}
}

// Params holds the per-call numeric configuration of single-view analysis.
type Params struct {
	// Standard deviation of the gaussian blur in pixels. Zero disables smoothing. Default 1.0
	Sigma float64
	// Foreground iff smoothed excess > ThresholdMultiplier*scale. Default 3.0
	ThresholdMultiplier float64
	// Scale statistic. Default ScaleMeanAbsDeviation
	ScaleEstimator ScaleEstimator
	// Minimum number of pixels in a region. Default 5
	MinArea int
	// Squared Mahalanobis distance above which a pixel is rejected. Default 9.0 (3 sigma)
	MahalanobisThreshold float64
	// Cap on outlier-rejection passes. Default 10
	MaxIterations int
	// length/width = 2*AxisScale*sqrt(eigenvalue). Default 2.0 (full extent of a uniform ellipse)
	AxisScale float64
	// Whether the quadratic centerline is fitted. Default true
	FitCenterline bool
	// Number of samples along the major axis. Default 10
	CenterlinePoints int
	// Centerline sag in pixels above which a shape is reported as curved. Default 0.5
	CurvatureThreshold float64
}

// DefaultParams returns default analysis parameters
func DefaultParams() Params {
	return Params{
		Sigma:                1.0,
		ThresholdMultiplier:  3.0,
		ScaleEstimator:       ScaleMeanAbsDeviation,
		MinArea:              5,
		MahalanobisThreshold: 9.0,
		MaxIterations:        10,
		AxisScale:            2.0,
		FitCenterline:        true,
		CenterlinePoints:     10,
		CurvatureThreshold:   0.5,
	}
}

// Validate checks that every parameter is usable
func (p Params) Validate() error {
	if !isFinite(p.Sigma) || p.Sigma < 0 {
		return errors.Wrapf(ErrInvalidParams, "sigma must be >= 0, got %v", p.Sigma)
	}
	if !isFinite(p.ThresholdMultiplier) || p.ThresholdMultiplier <= 0 {
		return errors.Wrapf(ErrInvalidParams, "threshold multiplier must be > 0, got %v", p.ThresholdMultiplier)
	}
	if p.ScaleEstimator != ScaleMeanAbsDeviation && p.ScaleEstimator != ScaleStdDev {
		return errors.Wrapf(ErrInvalidParams, "unknown scale estimator %d", p.ScaleEstimator)
	}
	if p.MinArea < 1 {
		return errors.Wrapf(ErrInvalidParams, "min area must be >= 1, got %d", p.MinArea)
	}
	if !isFinite(p.MahalanobisThreshold) || p.MahalanobisThreshold <= 0 {
		return errors.Wrapf(ErrInvalidParams, "mahalanobis threshold must be > 0, got %v", p.MahalanobisThreshold)
	}
	if p.MaxIterations < 1 {
		return errors.Wrapf(ErrInvalidParams, "max iterations must be >= 1, got %d", p.MaxIterations)
	}
	if !isFinite(p.AxisScale) || p.AxisScale <= 0 {
		return errors.Wrapf(ErrInvalidParams, "axis scale must be > 0, got %v", p.AxisScale)
	}
	if p.FitCenterline && p.CenterlinePoints < 2 {
		return errors.Wrapf(ErrInvalidParams, "centerline needs at least 2 samples, got %d", p.CenterlinePoints)
	}
	if !isFinite(p.CurvatureThreshold) || p.CurvatureThreshold < 0 {
		return errors.Wrapf(ErrInvalidParams, "curvature threshold must be >= 0, got %v", p.CurvatureThreshold)
	}
	return nil
}

func (p Params) fitOptions() FitOptions {
	return FitOptions{
		MahalanobisThreshold: p.MahalanobisThreshold,
		MaxIterations:        p.MaxIterations,
		MinArea:              p.MinArea,
		AxisScale:            p.AxisScale,
		FitCenterline:        p.FitCenterline,
		CenterlinePoints:     p.CenterlinePoints,
		CurvatureThreshold:   p.CurvatureThreshold,
	}
}
