package flowstate

import "errors"

var (
	// ErrCurveNotKnown indicates no FlowState has been recorded yet at the
	// requested output port.
	ErrCurveNotKnown = errors.New("flowstate: arrival curve not known yet at this port")

	// ErrAtsCurveNotKnown indicates no ATS-shaped curve has been registered
	// at the requested node.
	ErrAtsCurveNotKnown = errors.New("flowstate: ats curve not known yet at this port")

	// ErrEmptyPath indicates a Flow was constructed with a path of length
	// zero (primary or named).
	ErrEmptyPath = errors.New("flowstate: flow path must contain at least one port")

	// ErrRepeatedPort indicates the same port name appears twice in one
	// flow path.
	ErrRepeatedPort = errors.New("flowstate: flow path repeats a port")
)
