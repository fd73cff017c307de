package curve

import "errors"

var (
	// ErrArrivalCurveNotDefined is returned by ValueLeft for t<=0, where the
	// left-limit of an arrival curve is not defined.
	ErrArrivalCurveNotDefined = errors.New("curve: arrival curve left-limit not defined at t<=0")

	// ErrLocallyUnstable is returned by HDist/VDist when the arrival curve's
	// asymptotic rate is not strictly less than the service curve's rate
	// (or the arrival burst is infinite): no finite delay/backlog bound exists.
	ErrLocallyUnstable = errors.New("curve: locally unstable system")
)
