package hillas

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TrackerOptions configures a TrackingSession
type TrackerOptions struct {
	// Maximum Euclidean distance (common frame units) for re-using an identity. Default 30.0
	MaxDistance float64
	// Identities unmatched for more than MaxMisses consecutive calls are forgotten.
	// Zero keeps every identity for the lifetime of the session. Default 0
	MaxMisses int
	// Association rule. Default MatchingAlgorithmGreedy
	Algorithm MatchingAlgorithm
	// Time step between calls for the Kalman smoother. Default 1.0
	Dt float64
	// Length of the smoothed position history kept per identity. Default 150
	MaxTrackLen int
}

// DefaultTrackerOptions returns default tracker options
func DefaultTrackerOptions() TrackerOptions {
	return TrackerOptions{
		MaxDistance: 30.0,
		MaxMisses:   0,
		Algorithm:   MatchingAlgorithmGreedy,
		Dt:          1.0,
		MaxTrackLen: 150,
	}
}

// Validate checks the options
func (opts TrackerOptions) Validate() error {
	if !isFinite(opts.MaxDistance) || opts.MaxDistance < 0 {
		return errors.Wrapf(ErrInvalidParams, "max distance must be >= 0, got %v", opts.MaxDistance)
	}
	if opts.MaxMisses < 0 {
		return errors.Wrapf(ErrInvalidParams, "max misses must be >= 0, got %d", opts.MaxMisses)
	}
	if opts.Algorithm != MatchingAlgorithmGreedy && opts.Algorithm != MatchingAlgorithmHungarian {
		return errors.Wrapf(ErrInvalidParams, "unknown matching algorithm %d", opts.Algorithm)
	}
	if !isFinite(opts.Dt) || opts.Dt <= 0 {
		return errors.Wrapf(ErrInvalidParams, "dt must be > 0, got %v", opts.Dt)
	}
	if opts.MaxTrackLen < 1 {
		return errors.Wrapf(ErrInvalidParams, "max track length must be >= 1, got %d", opts.MaxTrackLen)
	}
	return nil
}

// TrackedRecord is an observation annotated with its identity for the current call
type TrackedRecord[O Observation] struct {
	Identity int
	Record   O
	// Raw observed position
	Position Point
	// Kalman-smoothed position
	Smoothed Point
	// True when the identity was minted by this call
	IsNew bool
}

// TrackingSession assigns persistent integer identities to observations across calls.
// Each session is independent; updates are serialized and snapshots may be read concurrently.
// O is the observation type, e.g. *FusedShapeRecord.
type TrackingSession[O Observation] struct {
	// Session identifier, useful to tell parallel simulations apart
	ID uuid.UUID
	// Main storage
	objects      map[int]*TrackedObject[O]
	nextIdentity int
	opts         TrackerOptions
	mu           sync.RWMutex
}

// NewTrackingSessionDefault creates default instance of TrackingSession
func NewTrackingSessionDefault[O Observation]() *TrackingSession[O] {
	return newTrackingSession[O](DefaultTrackerOptions())
}

// NewTrackingSession creates new instance of TrackingSession
func NewTrackingSession[O Observation](opts TrackerOptions) (*TrackingSession[O], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newTrackingSession[O](opts), nil
}

func newTrackingSession[O Observation](opts TrackerOptions) *TrackingSession[O] {
	return &TrackingSession[O]{
		ID:           uuid.New(),
		objects:      make(map[int]*TrackedObject[O]),
		nextIdentity: 1,
		opts:         opts,
	}
}

// Track associates the observations of the current call with known identities.
// Observations are considered in the given order and must not be nil.
// Unmatched observations receive new identities; identities are never reused.
func (session *TrackingSession[O]) Track(observations []O) (map[int]TrackedRecord[O], error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	priors := make([]int, 0, len(session.objects))
	lastPositions := make(map[int]Point, len(session.objects))
	for identity, obj := range session.objects {
		priors = append(priors, identity)
		lastPositions[identity] = obj.LastPosition
	}
	sort.Ints(priors)

	positions := make([]Point, len(observations))
	for i, obs := range observations {
		positions[i] = obs.Center()
	}

	var matches []int
	switch session.opts.Algorithm {
	case MatchingAlgorithmHungarian:
		matches = associateHungarian(positions, priors, lastPositions, session.opts.MaxDistance)
	default:
		matches = associateGreedy(positions, priors, lastPositions, session.opts.MaxDistance)
	}

	result := make(map[int]TrackedRecord[O], len(observations))
	matched := make(map[int]struct{}, len(observations))
	for i, obs := range observations {
		identity := matches[i]
		if identity != 0 {
			obj := session.objects[identity]
			err := obj.update(obs)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't update identity %d", identity)
			}
			matched[identity] = struct{}{}
			result[identity] = TrackedRecord[O]{
				Identity: identity,
				Record:   obs,
				Position: positions[i],
				Smoothed: obj.Smoothed(),
			}
			continue
		}
		identity = session.nextIdentity
		session.nextIdentity++
		obj := newTrackedObject(identity, obs, session.opts.Dt, session.opts.MaxTrackLen)
		session.objects[identity] = obj
		result[identity] = TrackedRecord[O]{
			Identity: identity,
			Record:   obs,
			Position: positions[i],
			Smoothed: obj.Smoothed(),
			IsNew:    true,
		}
		logger.WithFields(logrus.Fields{
			"session":  session.ID,
			"identity": identity,
		}).Debug("new identity")
	}

	for _, identity := range priors {
		if _, ok := matched[identity]; ok {
			continue
		}
		obj := session.objects[identity]
		obj.misses++
		// Remove object if it was not found for a long time
		if session.opts.MaxMisses > 0 && obj.misses > session.opts.MaxMisses {
			delete(session.objects, identity)
		}
	}
	return result, nil
}

// Snapshot returns a copy of every remembered identity, sorted by identity
func (session *TrackingSession[O]) Snapshot() []TrackState[O] {
	session.mu.RLock()
	defer session.mu.RUnlock()
	states := make([]TrackState[O], 0, len(session.objects))
	for _, obj := range session.objects {
		states = append(states, obj.state())
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Identity < states[j].Identity
	})
	return states
}

// Len returns the number of remembered identities
func (session *TrackingSession[O]) Len() int {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return len(session.objects)
}

// NextIdentity returns the identity the next unmatched observation will receive
func (session *TrackingSession[O]) NextIdentity() int {
	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.nextIdentity
}

// Options returns the session configuration
func (session *TrackingSession[O]) Options() TrackerOptions {
	return session.opts
}
