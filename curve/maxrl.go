package curve

import "sort"

// MaxOfRateLatencies is the pointwise maximum of several RateLatency service
// curves, stored canonically as an ordered list (strictly increasing
// latency, strictly increasing rate) plus the intersection abscissae
// between successive active segments. Strictly dominated curves are
// dropped.
type MaxOfRateLatencies struct {
	// Segments holds the active RateLatency curves, strictly increasing
	// latency, strictly increasing rate.
	Segments []RateLatency

	// Breakpoints[i] is the abscissa where Segments[i] stops being the
	// pointwise maximum and Segments[i+1] takes over.
	Breakpoints []float64
}

// NewMaxOfRateLatencies canonicalizes a MaxOfRateLatencies from an
// arbitrary list of RateLatency curves.
func NewMaxOfRateLatencies(rls ...RateLatency) MaxOfRateLatencies {
	deduped := dedupeAndDropDominatedRL(rls)
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Latency < deduped[j].Latency
	})

	stack := upperEnvelopeRL(deduped)
	breaks := breakpointsOfRL(stack)

	return MaxOfRateLatencies{Segments: stack, Breakpoints: breaks}
}

// dedupeAndDropDominatedRL drops any RateLatency dominated everywhere by
// another (A dominates B if A.Rate>=B.Rate && A.Latency<=B.Latency).
func dedupeAndDropDominatedRL(rls []RateLatency) []RateLatency {
	seen := make(map[RateLatency]bool)
	var uniq []RateLatency
	for _, rl := range rls {
		if !seen[rl] {
			seen[rl] = true
			uniq = append(uniq, rl)
		}
	}

	var kept []RateLatency
	for i, b := range uniq {
		dominated := false
		for j, a := range uniq {
			if i == j {
				continue
			}
			strictlyBetter := a.Rate > b.Rate || a.Latency < b.Latency
			if a.Rate >= b.Rate && a.Latency <= b.Latency && strictlyBetter {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, b)
		}
	}
	return kept
}

// crossRL returns the abscissa t>=max(a.Latency,b.Latency) at which
// a.Value(t) == b.Value(t), assuming a.Rate != b.Rate.
func crossRL(a, b RateLatency) float64 {
	return (a.Rate*a.Latency - b.Rate*b.Latency) / (a.Rate - b.Rate)
}

// upperEnvelopeRL computes the pointwise-maximum envelope of rls (already
// pruned and sorted by ascending latency, i.e. ascending rate) by negating
// rate and the latency-weighted intercept, running the same monotonic-stack
// construction used for GVBR's lower envelope, and relying on the identity
// max(f) = -min(-f).
func upperEnvelopeRL(sorted []RateLatency) []RateLatency {
	type line struct {
		slope, intercept float64
		rl               RateLatency
	}
	lines := make([]line, len(sorted))
	for i, rl := range sorted {
		lines[i] = line{slope: -rl.Rate, intercept: rl.Rate * rl.Latency, rl: rl}
	}

	crossX := func(a, b line) float64 {
		return (b.intercept - a.intercept) / (a.slope - b.slope)
	}

	var stack []line
	for _, l := range lines {
		for len(stack) >= 2 {
			a := stack[len(stack)-2]
			b := stack[len(stack)-1]
			if crossX(b, l) <= crossX(a, b) {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}
		stack = append(stack, l)
	}

	result := make([]RateLatency, len(stack))
	for i, l := range stack {
		result[i] = l.rl
	}
	return result
}

func breakpointsOfRL(segments []RateLatency) []float64 {
	if len(segments) < 2 {
		return nil
	}
	bp := make([]float64, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		bp[i] = crossRL(segments[i], segments[i+1])
	}
	return bp
}

// ActiveSegment returns the index of the segment realizing the pointwise
// maximum at t.
func (m MaxOfRateLatencies) ActiveSegment(t float64) int {
	idx := sort.SearchFloat64s(m.Breakpoints, t)
	if idx >= len(m.Segments) {
		idx = len(m.Segments) - 1
	}
	return idx
}

func (m MaxOfRateLatencies) Value(t float64) float64 {
	if len(m.Segments) == 0 {
		return 0
	}
	return m.Segments[m.ActiveSegment(t)].Value(t)
}

func (m MaxOfRateLatencies) ValueRight(t float64) float64 {
	if len(m.Segments) == 0 {
		return 0
	}
	return m.Segments[m.ActiveSegment(t)].ValueRight(t)
}

func (m MaxOfRateLatencies) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	if len(m.Segments) == 0 {
		return 0, nil
	}
	return m.Segments[m.ActiveSegment(t)].Value(t), nil
}

func (m MaxOfRateLatencies) IsNoCurve() bool {
	for _, s := range m.Segments {
		if !s.IsNoCurve() {
			return false
		}
	}
	return true
}

// SingleRateLatency reports whether this MaxOfRateLatencies canonicalized
// down to a single active segment.
func (m MaxOfRateLatencies) SingleRateLatency() (RateLatency, bool) {
	if len(m.Segments) == 1 {
		return m.Segments[0], true
	}
	return RateLatency{}, false
}
