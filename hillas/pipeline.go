package hillas

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FrameResult is everything produced for one frame
type FrameResult struct {
	// Entry per input camera, nil when no shower was found in that view
	Records map[CameraID]*ShapeRecord
	// Nil when fewer than two views produced a record
	Fused *FusedShapeRecord
	// Identity-annotated fused record of this frame (empty when Fused is nil)
	Tracked map[int]TrackedRecord[*FusedShapeRecord]
}

// Pipeline runs single-view analysis for every camera, fuses the views and
// tracks the fused record. The camera images of every frame must share the
// pipeline's fixed dimensions.
type Pipeline struct {
	Width   int
	Height  int
	Layout  CameraLayout
	Params  Params
	Fusion  FusionOptions
	Session *TrackingSession[*FusedShapeRecord]
}

// NewPipelineDefault creates a pipeline with default parameters and a fresh tracking session
func NewPipelineDefault(width, height int, layout CameraLayout) (*Pipeline, error) {
	return NewPipeline(width, height, layout, DefaultParams(), DefaultFusionOptions(), NewTrackingSessionDefault[*FusedShapeRecord]())
}

// NewPipeline creates new instance of Pipeline
func NewPipeline(width, height int, layout CameraLayout, params Params, fusion FusionOptions, session *TrackingSession[*FusedShapeRecord]) (*Pipeline, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", width, height)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.Wrap(ErrInvalidParams, "tracking session is required")
	}
	return &Pipeline{
		Width:   width,
		Height:  height,
		Layout:  layout,
		Params:  params,
		Fusion:  fusion,
		Session: session,
	}, nil
}

// Validate checks a frame against the pipeline's fixed geometry and camera layout
func (pipeline *Pipeline) Validate(frame map[CameraID]*IntensityImage) error {
	for id, img := range frame {
		if _, ok := pipeline.Layout[id]; !ok {
			return errors.Wrapf(ErrUnknownCamera, "camera %s", id)
		}
		if err := img.Validate(); err != nil {
			return errors.Wrapf(err, "camera %s", id)
		}
		if img.Width != pipeline.Width || img.Height != pipeline.Height {
			return errors.Wrapf(ErrDimensionMismatch, "camera %s: got %dx%d, expected %dx%d", id, img.Width, img.Height, pipeline.Width, pipeline.Height)
		}
	}
	return nil
}

// Process analyzes one frame. An error means the frame violated a precondition;
// absent records are reported through nil fields, never as errors.
func (pipeline *Pipeline) Process(frame map[CameraID]*IntensityImage) (*FrameResult, error) {
	if err := pipeline.Validate(frame); err != nil {
		return nil, errors.Wrap(err, "invalid frame")
	}
	records, err := AnalyzeCameras(frame, pipeline.Params)
	if err != nil {
		return nil, errors.Wrap(err, "can't analyze frame")
	}

	fused := Fuse(records, pipeline.Layout, pipeline.Fusion)
	observations := make([]*FusedShapeRecord, 0, 1)
	if fused != nil {
		observations = append(observations, fused)
	}
	tracked, err := pipeline.Session.Track(observations)
	if err != nil {
		return nil, errors.Wrap(err, "can't track frame")
	}

	logger.WithFields(logrus.Fields{
		"session": pipeline.Session.ID,
		"cameras": len(frame),
		"fused":   fused != nil,
	}).Debug("frame processed")

	return &FrameResult{
		Records: records,
		Fused:   fused,
		Tracked: tracked,
	}, nil
}
