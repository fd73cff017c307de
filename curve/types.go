package curve

import "math"

// Curve is a non-decreasing function from non-negative reals to extended
// non-negative reals. Implementations are immutable value-ish types; every
// package-level operation (Conv, Add, Deconv, HDist, VDist, ...) returns a
// new Curve rather than mutating an operand.
type Curve interface {
	// Value returns the curve's value at t (t>=0). Callers must not pass
	// negative t.
	Value(t float64) float64

	// ValueRight returns the right-hand limit of the curve at t.
	ValueRight(t float64) float64

	// ValueLeft returns the left-hand limit of the curve at t. It returns
	// ErrArrivalCurveNotDefined when t<=0.
	ValueLeft(t float64) (float64, error)

	// IsNoCurve reports whether this curve is identically zero.
	IsNoCurve() bool
}

// NoCurve is identically zero: value 0 for every t>=0. It is the identity
// element of Add and absorbing under Conv (Conv with NoCurve returns NoCurve).
type NoCurve struct{}

func (NoCurve) Value(float64) float64      { return 0 }
func (NoCurve) ValueRight(float64) float64 { return 0 }
func (NoCurve) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	return 0, nil
}
func (NoCurve) IsNoCurve() bool { return true }

// InfiniteCurve is δ₀: 0 at t=0, +∞ for t>0. It is the identity of Conv
// (Conv with InfiniteCurve returns the other operand unchanged, since δ₀ is
// the identity of min-plus convolution) and dominates under Add.
type InfiniteCurve struct{}

func (InfiniteCurve) Value(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Inf(1)
}
func (InfiniteCurve) ValueRight(t float64) float64 {
	return math.Inf(1)
}
func (InfiniteCurve) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	if t == math.SmallestNonzeroFloat64 {
		return 0, nil
	}
	return math.Inf(1), nil
}
func (InfiniteCurve) IsNoCurve() bool { return false }

// LeakyBucket is the token-bucket arrival curve σ+ρt for t>0, 0 at t=0.
// Rate and Burst must be >= 0; Burst may be +Inf to encode "unstable".
type LeakyBucket struct {
	Rate  float64 // ρ, sustained rate
	Burst float64 // σ, burst tolerance
}

// NewLeakyBucket constructs a LeakyBucket. LB(0,0) is still returned as a
// LeakyBucket value, not converted to NoCurve; its IsNoCurve reports true, so
// Conv and Add treat it as NoCurve.
func NewLeakyBucket(rate, burst float64) LeakyBucket {
	return LeakyBucket{Rate: rate, Burst: burst}
}

func (lb LeakyBucket) Value(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return lb.Burst + lb.Rate*t
}
func (lb LeakyBucket) ValueRight(t float64) float64 {
	return lb.Burst + lb.Rate*t
}
func (lb LeakyBucket) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	return lb.Burst + lb.Rate*t, nil
}
func (lb LeakyBucket) IsNoCurve() bool {
	return lb.Rate == 0 && lb.Burst == 0
}

// RateLatency is the rate-latency service curve R*(t-T)+ : max(0, R*(t-T)).
type RateLatency struct {
	Rate    float64 // R
	Latency float64 // T
}

func NewRateLatency(rate, latency float64) RateLatency {
	return RateLatency{Rate: rate, Latency: latency}
}

func (rl RateLatency) Value(t float64) float64 {
	if t <= rl.Latency {
		return 0
	}
	return rl.Rate * (t - rl.Latency)
}
func (rl RateLatency) ValueRight(t float64) float64 {
	return rl.Value(t)
}
func (rl RateLatency) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	return rl.Value(t), nil
}
func (rl RateLatency) IsNoCurve() bool {
	return rl.Rate == 0
}

// SubtractLeakyBucket reduces a RateLatency service curve by an
// already-accounted leaky bucket, used internally by the TFA LP tangent-line
// construction (original_source/saihu/xtfa/minPlusToolbox.py:999,
// substract_latest_lb). The result is the rate-latency curve whose latency
// is shifted so that it passes through the same point as rl minus lb's
// contribution at rl's latency; ρ must stay below rl.Rate or the result is
// locally unstable and the zero-rate RateLatency is returned.
func (rl RateLatency) SubtractLeakyBucket(lb LeakyBucket) RateLatency {
	if lb.Rate >= rl.Rate {
		return RateLatency{Rate: 0, Latency: rl.Latency}
	}
	// The tangent point where LB(rho,sigma) meets RL(R,T) moves the
	// effective latency forward by sigma/(R-rho).
	shift := lb.Burst / (rl.Rate - lb.Rate)
	return RateLatency{Rate: rl.Rate, Latency: rl.Latency + shift}
}

// BoundedDelay is Γ_d: 0 for t<=d, +∞ for t>d. Used as a pure-delay service
// curve for deconvolution against a jitter bound.
type BoundedDelay struct {
	Delay float64 // d
}

func NewBoundedDelay(d float64) BoundedDelay {
	return BoundedDelay{Delay: d}
}

func (bd BoundedDelay) Value(t float64) float64 {
	if t <= bd.Delay {
		return 0
	}
	return math.Inf(1)
}
func (bd BoundedDelay) ValueRight(t float64) float64 {
	return bd.Value(t)
}
func (bd BoundedDelay) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	return bd.Value(t), nil
}
func (bd BoundedDelay) IsNoCurve() bool {
	return false
}
