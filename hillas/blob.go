package hillas

// Observation is anything the tracker can associate across frames.
// Both *ShapeRecord and *FusedShapeRecord implement it.
type Observation interface {
	// Center returns the position used for association, in the common frame
	Center() Point
}
