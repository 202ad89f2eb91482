package hillas

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// CameraID identifies one camera of the array
type CameraID string

// AnalyzeView runs preprocessing, segmentation and the robust fit on a single
// camera image. A nil record with a nil error means no shower was found.
// An error is returned only for an invalid image or invalid parameters.
func AnalyzeView(img *IntensityImage, params Params) (*ShapeRecord, error) {
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(err, "can't analyze image")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return analyzeView(img, params), nil
}

// analyzeView expects validated input
func analyzeView(img *IntensityImage, params Params) *ShapeRecord {
	pre := Preprocess(img, params.Sigma, params.ScaleEstimator)
	region, ok := Segment(pre, params.ThresholdMultiplier, params.MinArea)
	if !ok {
		logger.WithFields(logrus.Fields{
			"median": pre.Median,
			"scale":  pre.Scale,
		}).Debug("no region above threshold")
		return nil
	}
	fit := RobustFit(region, params.fitOptions())
	if fit == nil {
		logger.WithField("pixels", region.Len()).Debug("region rejected by moment fit")
		return nil
	}
	record := fit.Record
	return &record
}

// AnalyzeCameras analyzes every camera image concurrently. The returned map has
// an entry (possibly nil) for every input camera. The first invalid image aborts the call.
func AnalyzeCameras(images map[CameraID]*IntensityImage, params Params) (map[CameraID]*ShapeRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for id, img := range images {
		if err := img.Validate(); err != nil {
			return nil, errors.Wrapf(err, "camera %s", id)
		}
	}

	records := make(map[CameraID]*ShapeRecord, len(images))
	var mu sync.Mutex
	var g errgroup.Group
	for id, img := range images {
		id, img := id, img
		g.Go(func() error {
			record := analyzeView(img, params)
			if record == nil {
				logger.WithField("camera", id).Debug("no shower detected")
			}
			mu.Lock()
			records[id] = record
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
