package curve

import (
	"math"
	"sort"
)

// Conv computes the min-plus convolution a⊗b: (a⊗b)(t) = inf_{0<=s<=t} a(s)+b(t-s).
func Conv(a, b Curve) Curve {
	if a.IsNoCurve() || b.IsNoCurve() {
		return NoCurve{}
	}
	if _, ok := a.(InfiniteCurve); ok {
		return b
	}
	if _, ok := b.(InfiniteCurve); ok {
		return a
	}

	// BoundedDelay convolved with anything else is a pure right-shift by its
	// delay: (f⊗BD(d))(t) = f(t-d) for t>d, 0 otherwise.
	if bd, ok := a.(BoundedDelay); ok {
		return convWithDelay(b, bd.Delay)
	}
	if bd, ok := b.(BoundedDelay); ok {
		return convWithDelay(a, bd.Delay)
	}

	// Two leaky buckets / GVBRs convolve to the pointwise minimum of their
	// whole-domain line extensions, i.e. a (possibly simplifying) GVBR.
	aLBs, aOK := leakyBucketsOf(a)
	bLBs, bOK := leakyBucketsOf(b)
	if aOK && bOK {
		return simplifyGVBR(NewGVBR(append(append([]LeakyBucket{}, aLBs...), bLBs...)...))
	}

	if rla, ok := a.(RateLatency); ok {
		if rlb, ok := b.(RateLatency); ok {
			rate := rla.Rate
			if rlb.Rate < rate {
				rate = rlb.Rate
			}
			return RateLatency{Rate: rate, Latency: rla.Latency + rlb.Latency}
		}
	}

	return sumFallback{lazyCurve{valueFn: func(t float64) float64 {
		best := math.Inf(1)
		for _, s := range candidateTimes(a, b, t) {
			if s < 0 || s > t {
				continue
			}
			v := a.Value(s) + b.Value(t-s)
			if v < best {
				best = v
			}
		}
		return best
	}}}
}

// convWithDelay returns the curve representing c shifted right by delay
// (the result of c⊗BoundedDelay(delay)).
func convWithDelay(c Curve, delay float64) Curve {
	switch v := c.(type) {
	case RateLatency:
		return RateLatency{Rate: v.Rate, Latency: v.Latency + delay}
	case BoundedDelay:
		return BoundedDelay{Delay: v.Delay + delay}
	case LeakyBucket:
		return DGVBR{Latency: delay, Base: NewGVBR(v)}
	case GVBR:
		return DGVBR{Latency: delay, Base: v}
	case DGVBR:
		return DGVBR{Latency: v.Latency + delay, Base: v.Base}
	case MaxOfRateLatencies:
		segs := make([]RateLatency, len(v.Segments))
		for i, s := range v.Segments {
			segs[i] = RateLatency{Rate: s.Rate, Latency: s.Latency + delay}
		}
		return NewMaxOfRateLatencies(segs...)
	default:
		return lazyCurve{valueFn: func(t float64) float64 {
			if t <= delay {
				return 0
			}
			return c.Value(t - delay)
		}}
	}
}

// leakyBucketsOf returns the whole-domain LeakyBucket lines underlying a
// curve known to be a pointwise min of leaky buckets (LeakyBucket or GVBR),
// and whether c is such a curve.
func leakyBucketsOf(c Curve) ([]LeakyBucket, bool) {
	switch v := c.(type) {
	case LeakyBucket:
		return []LeakyBucket{v}, true
	case GVBR:
		return v.Segments, true
	default:
		return nil, false
	}
}

// simplifyGVBR returns g's single segment directly when g canonicalized
// down to one LeakyBucket (GVBR reducing to a single LB equals that LB).
func simplifyGVBR(g GVBR) Curve {
	if lb, ok := g.SingleLeakyBucket(); ok {
		return lb
	}
	return g
}

// Add computes the pointwise sum (a+b)(t) = a(t)+b(t).
func Add(a, b Curve) Curve {
	if a.IsNoCurve() {
		return b
	}
	if b.IsNoCurve() {
		return a
	}
	if _, ok := a.(InfiniteCurve); ok {
		return a
	}
	if _, ok := b.(InfiniteCurve); ok {
		return b
	}

	if lba, ok := a.(LeakyBucket); ok {
		if lbb, ok := b.(LeakyBucket); ok {
			return LeakyBucket{Rate: lba.Rate + lbb.Rate, Burst: lba.Burst + lbb.Burst}
		}
	}

	aLBs, aOK := leakyBucketsOf(a)
	bLBs, bOK := leakyBucketsOf(b)
	if aOK && bOK {
		return simplifyGVBR(addConcavePiecewise(aLBs, bLBs))
	}

	return sumCurve{A: a, B: b}
}

// addConcavePiecewise implements the documented GVBR+GVBR algorithm: at
// every discontinuity of either operand, sum the two whole-domain lines
// active just before it, then re-canonicalize (minPlusToolbox.py's
// GVBR.__add__, original_source/saihu/xtfa/minPlusToolbox.py).
func addConcavePiecewise(aLBs, bLBs []LeakyBucket) GVBR {
	a := NewGVBR(aLBs...)
	b := NewGVBR(bLBs...)

	bpSet := map[float64]bool{0: true}
	for _, bp := range a.Breakpoints {
		bpSet[bp] = true
	}
	for _, bp := range b.Breakpoints {
		bpSet[bp] = true
	}
	points := make([]float64, 0, len(bpSet))
	for p := range bpSet {
		points = append(points, p)
	}
	sort.Float64s(points)

	var sums []LeakyBucket
	for _, p := range points {
		probe := p + 1e-9
		ai := a.Segments[a.ActiveSegment(probe)]
		bi := b.Segments[b.ActiveSegment(probe)]
		sums = append(sums, LeakyBucket{Rate: ai.Rate + bi.Rate, Burst: ai.Burst + bi.Burst})
	}
	return NewGVBR(sums...)
}

// Deconv computes the min-plus deconvolution a⊘b: (a⊘b)(t) = sup_{s>=0} a(t+s)-b(s).
func Deconv(a, b Curve) Curve {
	if bd, ok := b.(BoundedDelay); ok {
		switch v := a.(type) {
		case LeakyBucket:
			return LeakyBucket{Rate: v.Rate, Burst: v.Burst + v.Rate*bd.Delay}
		case GVBR:
			segs := make([]LeakyBucket, len(v.Segments))
			for i, s := range v.Segments {
				segs[i] = LeakyBucket{Rate: s.Rate, Burst: s.Burst + s.Rate*bd.Delay}
			}
			return NewGVBR(segs...)
		}
	}
	if rl, ok := b.(RateLatency); ok {
		switch v := a.(type) {
		case LeakyBucket:
			return LeakyBucket{Rate: v.Rate, Burst: v.Burst + v.Rate*rl.Latency}
		case GVBR:
			segs := make([]LeakyBucket, len(v.Segments))
			for i, s := range v.Segments {
				segs[i] = LeakyBucket{Rate: s.Rate, Burst: s.Burst + s.Rate*rl.Latency}
			}
			return NewGVBR(segs...)
		}
	}

	return lazyCurve{valueFn: func(t float64) float64 {
		best := math.Inf(-1)
		for _, s := range candidateDeconvOffsets(a, b, t) {
			if s < 0 {
				continue
			}
			v := a.Value(t+s) - b.Value(s)
			if v > best {
				best = v
			}
		}
		if math.IsInf(best, -1) {
			return 0
		}
		return best
	}}
}

// HDist computes the maximal horizontal distance h(alpha,beta): the delay
// bound such that alpha(t) <= beta(t+d) for all t, with the smallest such d
// achieving equality somewhere. Returns ErrLocallyUnstable when alpha's
// asymptotic rate is not strictly less than beta's.
func HDist(alpha, beta Curve) (float64, error) {
	if alpha.IsNoCurve() {
		return 0, nil
	}
	if bd, ok := beta.(BoundedDelay); ok {
		return bd.Delay, nil
	}

	if lb, ok := alpha.(LeakyBucket); ok {
		if rl, ok := beta.(RateLatency); ok {
			if lb.Rate >= rl.Rate {
				return 0, ErrLocallyUnstable
			}
			return rl.Latency + lb.Burst/rl.Rate, nil
		}
	}
	if g, ok := alpha.(GVBR); ok {
		if rl, ok := beta.(RateLatency); ok {
			return hdistGVBRRL(g, rl)
		}
		if m, ok := beta.(MaxOfRateLatencies); ok {
			return hdistGVBRMaxRL(g, m)
		}
	}
	if lb, ok := alpha.(LeakyBucket); ok {
		if m, ok := beta.(MaxOfRateLatencies); ok {
			return hdistGVBRMaxRL(NewGVBR(lb), m)
		}
	}

	return genericHDist(alpha, beta)
}

func hdistGVBRRL(g GVBR, rl RateLatency) (float64, error) {
	if len(g.Segments) == 0 {
		return rl.Latency, nil
	}
	last := g.Segments[len(g.Segments)-1]
	if last.Rate >= rl.Rate {
		return 0, ErrLocallyUnstable
	}

	best := 0.0
	for _, seg := range g.Segments {
		if seg.Rate < rl.Rate {
			if d := rl.Latency + seg.Burst/rl.Rate; d > best {
				best = d
			}
		}
	}
	for _, bp := range g.Breakpoints {
		if bp <= 0 {
			continue
		}
		d := g.Value(bp)/rl.Rate + rl.Latency - bp
		if d > best {
			best = d
		}
	}
	return best, nil
}

func hdistGVBRMaxRL(g GVBR, m MaxOfRateLatencies) (float64, error) {
	if len(g.Segments) == 0 || len(m.Segments) == 0 {
		return 0, ErrLocallyUnstable
	}
	lastArrival := g.Segments[len(g.Segments)-1]
	lastService := m.Segments[len(m.Segments)-1]
	if lastArrival.Rate >= lastService.Rate {
		return 0, ErrLocallyUnstable
	}

	best := 0.0
	for _, gs := range g.Segments {
		for _, ms := range m.Segments {
			if gs.Rate >= ms.Rate {
				continue
			}
			if d := ms.Latency + gs.Burst/ms.Rate; d > best {
				best = d
			}
		}
	}
	return best, nil
}

// VDist computes the maximal vertical distance v(alpha,beta) = sup_t alpha(t)-beta(t),
// the backlog bound.
func VDist(alpha, beta Curve) (float64, error) {
	if alpha.IsNoCurve() {
		return 0, nil
	}
	if asymptoticRate(alpha) >= asymptoticRate(beta) {
		return 0, ErrLocallyUnstable
	}

	best := 0.0
	for _, t := range candidateTimes(alpha, beta, math.Inf(1)) {
		if t < 0 {
			continue
		}
		if d := alpha.Value(t) - beta.Value(t); d > best {
			best = d
		}
	}
	return best, nil
}

// breakpointsOfCurve returns the finite set of abscissae where c's slope
// changes, used to bound the search for HDist/VDist/Deconv optima on
// piecewise-linear curves.
func breakpointsOfCurve(c Curve) []float64 {
	switch v := c.(type) {
	case GVBR:
		return v.Breakpoints
	case MaxOfRateLatencies:
		return v.Breakpoints
	case RateLatency:
		return []float64{v.Latency}
	case BoundedDelay:
		return []float64{v.Delay}
	case DGVBR:
		base := breakpointsOfCurve(v.Base)
		out := make([]float64, len(base)+1)
		out[0] = v.Latency
		for i, b := range base {
			out[i+1] = b + v.Latency
		}
		return out
	default:
		return nil
	}
}

func asymptoticRate(c Curve) float64 {
	switch v := c.(type) {
	case NoCurve:
		return 0
	case InfiniteCurve:
		return math.Inf(1)
	case LeakyBucket:
		return v.Rate
	case RateLatency:
		return v.Rate
	case BoundedDelay:
		return math.Inf(1)
	case GVBR:
		if len(v.Segments) == 0 {
			return 0
		}
		return v.Segments[len(v.Segments)-1].Rate
	case MaxOfRateLatencies:
		if len(v.Segments) == 0 {
			return 0
		}
		return v.Segments[len(v.Segments)-1].Rate
	case DGVBR:
		return asymptoticRate(v.Base)
	default:
		return math.Inf(1)
	}
}

// candidateTimes returns the finite set of t values at or below horizon
// where the sup/inf defining HDist/VDist/Conv can be attained: the
// breakpoints of both curves, plus 0.
func candidateTimes(a, b Curve, horizon float64) []float64 {
	set := map[float64]bool{0: true}
	for _, t := range breakpointsOfCurve(a) {
		if t <= horizon {
			set[t] = true
		}
	}
	for _, t := range breakpointsOfCurve(b) {
		if t <= horizon {
			set[t] = true
		}
	}
	out := make([]float64, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

func candidateDeconvOffsets(a, b Curve, t float64) []float64 {
	set := map[float64]bool{0: true}
	for _, s := range breakpointsOfCurve(b) {
		set[s] = true
	}
	for _, tb := range breakpointsOfCurve(a) {
		if s := tb - t; s >= 0 {
			set[s] = true
		}
	}
	out := make([]float64, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Float64s(out)
	return out
}

// genericHDist is the fallback used for curve-pair combinations not given a
// closed-form formula above: it samples the candidate breakpoints of both
// curves and inverts beta numerically via bisection.
func genericHDist(alpha, beta Curve) (float64, error) {
	if asymptoticRate(alpha) >= asymptoticRate(beta) {
		return 0, ErrLocallyUnstable
	}
	best := 0.0
	for _, t := range candidateTimes(alpha, beta, math.Inf(1)) {
		v := alpha.Value(t)
		s := invertBisect(beta, v)
		if d := s - t; d > best {
			best = d
		}
	}
	return best, nil
}

// invertBisect returns the smallest s>=0 with beta(s)>=v, via bisection over
// an exponentially growing bracket. beta must be non-decreasing.
func invertBisect(beta Curve, v float64) float64 {
	if v <= 0 {
		return 0
	}
	hi := 1.0
	for beta.Value(hi) < v {
		hi *= 2
		if hi > 1e18 {
			return math.Inf(1)
		}
	}
	lo := 0.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if beta.Value(mid) >= v {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// lazyCurve wraps an arbitrary value function as a Curve for fallback
// operations over combinations with no closed-form representation.
type lazyCurve struct {
	valueFn func(t float64) float64
}

func (l lazyCurve) Value(t float64) float64      { return l.valueFn(t) }
func (l lazyCurve) ValueRight(t float64) float64 { return l.valueFn(t) }
func (l lazyCurve) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	return l.valueFn(t), nil
}
func (l lazyCurve) IsNoCurve() bool { return l.valueFn(1) == 0 && l.valueFn(1e9) == 0 }

type sumFallback struct{ lazyCurve }

// sumCurve wraps two curves whose sum has no simpler canonical
// representation (e.g. RateLatency+RateLatency) and computes Value lazily.
type sumCurve struct {
	A, B Curve
}

func (s sumCurve) Value(t float64) float64      { return s.A.Value(t) + s.B.Value(t) }
func (s sumCurve) ValueRight(t float64) float64 { return s.A.ValueRight(t) + s.B.ValueRight(t) }
func (s sumCurve) ValueLeft(t float64) (float64, error) {
	av, err := s.A.ValueLeft(t)
	if err != nil {
		return 0, err
	}
	bv, err := s.B.ValueLeft(t)
	if err != nil {
		return 0, err
	}
	return av + bv, nil
}
func (s sumCurve) IsNoCurve() bool { return s.A.IsNoCurve() && s.B.IsNoCurve() }
