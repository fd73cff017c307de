package netio

import "errors"

var (
	// ErrMismatchedCurveLengths reports a service/arrival curve document
	// whose rate/latency or rate/burst arrays have different lengths.
	ErrMismatchedCurveLengths = errors.New("netio: curve rate/latency (or rate/burst) arrays have mismatched lengths")

	// ErrEmptyCurve reports a service/arrival curve document with no
	// segments at all.
	ErrEmptyCurve = errors.New("netio: curve has no segments")
)
