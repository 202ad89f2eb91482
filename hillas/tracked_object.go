package hillas

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// TrackedObject is the tracker's memory of one identity.
// Association uses LastPosition; the Kalman-smoothed position is reported alongside.
type TrackedObject[O Observation] struct {
	Identity     int
	LastPosition Point
	LastRecord   O
	smoothed     Point
	track        []Point
	maxTrackLen  int
	hits         int
	misses       int
	kf           *kalman_filter.Kalman2D
}

func newTrackedObject[O Observation](identity int, obs O, dt float64, maxTrackLen int) *TrackedObject[O] {
	center := obs.Center()

	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(center.X, center.Y))
	obj := TrackedObject[O]{
		Identity:     identity,
		LastPosition: center,
		LastRecord:   obs,
		smoothed:     center,
		track:        make([]Point, 0, maxTrackLen),
		maxTrackLen:  maxTrackLen,
		hits:         1,
		kf:           kf,
	}
	obj.track = append(obj.track, center)
	return &obj
}

// update stores the new observation and advances the Kalman filter with it
func (obj *TrackedObject[O]) update(obs O) error {
	center := obs.Center()
	obj.LastPosition = center
	obj.LastRecord = obs

	obj.kf.Predict()
	err := obj.kf.Update(center.X, center.Y)
	if err != nil {
		return errors.Wrapf(err, "Can't update filter of identity %d", obj.Identity)
	}
	stateX, stateY := obj.kf.GetState()
	obj.smoothed = Point{X: stateX, Y: stateY}

	obj.hits++
	obj.misses = 0
	obj.track = append(obj.track, obj.smoothed)
	if len(obj.track) > obj.maxTrackLen {
		obj.track = obj.track[1:]
	}
	return nil
}

// Smoothed returns the Kalman-filtered position
func (obj *TrackedObject[O]) Smoothed() Point {
	return obj.smoothed
}

// Track returns the smoothed position history. Be careful: this is not copy of track, but reference to it
func (obj *TrackedObject[O]) Track() []Point {
	return obj.track
}

// Hits returns how many observations were associated with the object
func (obj *TrackedObject[O]) Hits() int {
	return obj.hits
}

// Misses returns the number of consecutive calls without a match
func (obj *TrackedObject[O]) Misses() int {
	return obj.misses
}

// state returns a detached copy for snapshots
func (obj *TrackedObject[O]) state() TrackState[O] {
	track := make([]Point, len(obj.track))
	copy(track, obj.track)
	return TrackState[O]{
		Identity:     obj.Identity,
		LastPosition: obj.LastPosition,
		LastRecord:   obj.LastRecord,
		Smoothed:     obj.smoothed,
		Track:        track,
		Hits:         obj.hits,
		Misses:       obj.misses,
	}
}

// TrackState is a read-only copy of a TrackedObject
type TrackState[O Observation] struct {
	Identity     int
	LastPosition Point
	LastRecord   O
	Smoothed     Point
	Track        []Point
	Hits         int
	Misses       int
}
