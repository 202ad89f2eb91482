package hillas

import (
	"math"
	"slices"
)

// CameraLayout maps each camera to its fixed offset in the common frame
type CameraLayout map[CameraID]Point

// FusionOptions configures Fuse
type FusionOptions struct {
	// Weight of the secondary intensity proxy (record peak) relative to the total weight. Default 0.01
	SecondaryCoefficient float64
	// Substitute for non-positive lengths and negative widths. Default 1.0
	NominalPixelSize float64
	// Substitute for a missing or non-positive total weight. Default 1.0
	DefaultWeight float64
	// Minimum number of valid records. Values below 2 are raised to 2. Default 2
	MinCameras int
}

// DefaultFusionOptions returns default fusion options
func DefaultFusionOptions() FusionOptions {
	return FusionOptions{
		SecondaryCoefficient: 0.01,
		NominalPixelSize:     1.0,
		DefaultWeight:        1.0,
		MinCameras:           2,
	}
}

// SourceWeight is the contribution of one camera to a fused record
type SourceWeight struct {
	Camera CameraID
	Weight float64
	// Weight divided by the sum of all weights, in [0, 1]
	Fraction float64
}

// FusedShapeRecord is the weighted combination of several camera records
// expressed in the common frame of the camera layout.
type FusedShapeRecord struct {
	CentroidX float64
	CentroidY float64
	Length    float64
	Width     float64
	// Axial circular mean of the source angles, in (-π/2, π/2]
	Angle float64
	// Sorted by camera identifier
	Sources []SourceWeight
	// Records that took part in the fusion
	Records    map[CameraID]*ShapeRecord
	NumCameras int
}

// Center returns the fused centroid
func (rec *FusedShapeRecord) Center() Point {
	return Point{X: rec.CentroidX, Y: rec.CentroidY}
}

// Source returns the contribution of the given camera
func (rec *FusedShapeRecord) Source(id CameraID) (SourceWeight, bool) {
	for _, s := range rec.Sources {
		if s.Camera == id {
			return s, true
		}
	}
	return SourceWeight{}, false
}

// Fuse combines per-camera records into a single record. Centroids are moved
// into the common frame by subtracting the camera offset; cameras missing from
// the layout sit at the origin. Centroid, length and width are weighted means,
// the angle is the weighted circular mean of the doubled angles, halved, so
// that orientations near ±π/2 average correctly.
// It returns nil when fewer than MinCameras records are usable.
func Fuse(records map[CameraID]*ShapeRecord, layout CameraLayout, opts FusionOptions) *FusedShapeRecord {
	minCameras := maxInt(opts.MinCameras, 2)

	ids := make([]CameraID, 0, len(records))
	for id, rec := range records {
		if rec == nil || !rec.Center().IsFinite() {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) < minCameras {
		logger.WithField("cameras", len(ids)).Debug("not enough views to fuse")
		return nil
	}
	slices.Sort(ids)

	var sumW, sumX, sumY, sumLength, sumWidth, sumSin, sumCos float64
	sources := make([]SourceWeight, len(ids))
	used := make(map[CameraID]*ShapeRecord, len(ids))
	for i, id := range ids {
		rec := records[id]
		w := fusionWeight(rec, opts)
		length := positiveOr(rec.Length, opts.NominalPixelSize)
		width := rec.Width
		if !isFinite(width) || width < 0 {
			width = opts.NominalPixelSize
		}
		angle := rec.Angle
		if !isFinite(angle) {
			angle = 0
		}
		center := rec.Center().Sub(layout[id])

		sumW += w
		sumX += w * center.X
		sumY += w * center.Y
		sumLength += w * length
		sumWidth += w * width
		sumSin += w * math.Sin(2*angle)
		sumCos += w * math.Cos(2*angle)

		sources[i] = SourceWeight{Camera: id, Weight: w}
		used[id] = rec
	}
	for i := range sources {
		sources[i].Fraction = sources[i].Weight / sumW
	}

	length := sumLength / sumW
	width := sumWidth / sumW
	if width > length {
		length, width = width, length
	}
	return &FusedShapeRecord{
		CentroidX:  sumX / sumW,
		CentroidY:  sumY / sumW,
		Length:     length,
		Width:      width,
		Angle:      normalizeAxial(0.5 * math.Atan2(sumSin, sumCos)),
		Sources:    sources,
		Records:    used,
		NumCameras: len(ids),
	}
}

// fusionWeight is the total weight plus a small share of the peak intensity
func fusionWeight(rec *ShapeRecord, opts FusionOptions) float64 {
	primary := rec.TotalWeight
	if !isFinite(primary) || primary <= 0 {
		primary = opts.DefaultWeight
	}
	w := primary + opts.SecondaryCoefficient*nonNegative(rec.Peak)
	if !isFinite(w) || w <= 0 {
		return 1
	}
	return w
}

func positiveOr(v, fallback float64) float64 {
	if !isFinite(v) || v <= 0 {
		return fallback
	}
	return v
}
