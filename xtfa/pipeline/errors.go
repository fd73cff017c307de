package pipeline

import "errors"

var (
	// ErrCurveNotKnown is surfaced when a step needs a reference-point curve
	// that has not been computed yet; the driver treats it as a request to
	// postpone this node (see flowstate.ErrCurveNotKnown).
	ErrCurveNotKnown = errors.New("pipeline: required curve not known yet")
)
