package curve

import "sort"

// GVBR (generalized VBR) is the min-plus convolution — the pointwise
// minimum — of two or more LeakyBuckets, stored canonically as an ordered
// list of active LeakyBuckets sorted by burst ascending (equivalently rate
// descending), plus the intersection abscissae between successive active
// segments. Dominated segments (never the pointwise minimum for any t>0)
// are removed by NewGVBR.
type GVBR struct {
	// Segments holds the active LeakyBuckets, strictly increasing burst,
	// strictly decreasing rate.
	Segments []LeakyBucket

	// Breakpoints[i] is the abscissa where Segments[i] stops being active
	// and Segments[i+1] takes over; len(Breakpoints) == len(Segments)-1,
	// strictly increasing.
	Breakpoints []float64
}

// NewGVBR canonicalizes a GVBR from an arbitrary list of LeakyBuckets:
// duplicates and pairwise-dominated segments are removed, the lower
// envelope over t>=0 is computed, and any segment never active for t>0 is
// dropped. Canonicalization is idempotent (NewGVBR of an already-canonical
// GVBR's segments returns the same segments).
func NewGVBR(lbs ...LeakyBucket) GVBR {
	deduped := dedupeAndDropDominated(lbs)
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Burst < deduped[j].Burst
	})

	stack := lowerEnvelope(deduped)
	breaks := breakpointsOf(stack)

	// Drop leading segments whose breakpoint with the next segment is at
	// t<=0: they are never active for t>0.
	for len(stack) > 1 && breaks[0] <= 0 {
		stack = stack[1:]
		breaks = breaks[1:]
	}

	return GVBR{Segments: stack, Breakpoints: breaks}
}

// dedupeAndDropDominated removes exact duplicates and any LeakyBucket B for
// which another LeakyBucket A exists with A.Rate<=B.Rate && A.Burst<=B.Burst
// (A dominates B everywhere, so B is never the pointwise minimum).
func dedupeAndDropDominated(lbs []LeakyBucket) []LeakyBucket {
	seen := make(map[LeakyBucket]bool)
	var uniq []LeakyBucket
	for _, lb := range lbs {
		if !seen[lb] {
			seen[lb] = true
			uniq = append(uniq, lb)
		}
	}

	var kept []LeakyBucket
	for i, b := range uniq {
		dominated := false
		for j, a := range uniq {
			if i == j {
				continue
			}
			strictlyBetter := a.Rate < b.Rate || a.Burst < b.Burst
			if a.Rate <= b.Rate && a.Burst <= b.Burst && strictlyBetter {
				dominated = true
				break
			}
			// Tie: identical rate and burst already deduped above; if both
			// equal here it means i==j handled, so nothing further to do.
		}
		if !dominated {
			kept = append(kept, b)
		}
	}
	return kept
}

// intersectX returns the abscissa where LeakyBuckets a and b have equal
// value, assuming a.Rate != b.Rate.
func intersectX(a, b LeakyBucket) float64 {
	return (b.Burst - a.Burst) / (a.Rate - b.Rate)
}

// lowerEnvelope computes the pointwise-minimum envelope of lbs (already
// deduped/dominance-pruned and sorted by ascending burst, i.e. descending
// rate) using the standard monotonic-stack convex-hull-trick construction.
func lowerEnvelope(sorted []LeakyBucket) []LeakyBucket {
	var stack []LeakyBucket
	for _, lb := range sorted {
		for len(stack) >= 2 {
			a := stack[len(stack)-2]
			b := stack[len(stack)-1]
			if intersectX(b, lb) <= intersectX(a, b) {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}
		stack = append(stack, lb)
	}
	return stack
}

func breakpointsOf(segments []LeakyBucket) []float64 {
	if len(segments) < 2 {
		return nil
	}
	bp := make([]float64, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		bp[i] = intersectX(segments[i], segments[i+1])
	}
	return bp
}

// ActiveSegment returns the index of the segment active at t.
func (g GVBR) ActiveSegment(t float64) int {
	idx := sort.SearchFloat64s(g.Breakpoints, t)
	if idx >= len(g.Segments) {
		idx = len(g.Segments) - 1
	}
	return idx
}

// SingleLeakyBucket reports whether this GVBR has canonicalized down to a
// single active segment, and returns it if so: "GVBR reducing to a single
// LB equals that LB" per the curve-equality invariant.
func (g GVBR) SingleLeakyBucket() (LeakyBucket, bool) {
	if len(g.Segments) == 1 {
		return g.Segments[0], true
	}
	return LeakyBucket{}, false
}

func (g GVBR) Value(t float64) float64 {
	if len(g.Segments) == 0 {
		return 0
	}
	return g.Segments[g.ActiveSegment(t)].Value(t)
}

func (g GVBR) ValueRight(t float64) float64 {
	if len(g.Segments) == 0 {
		return 0
	}
	return g.Segments[g.ActiveSegment(t)].ValueRight(t)
}

func (g GVBR) ValueLeft(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrArrivalCurveNotDefined
	}
	if len(g.Segments) == 0 {
		return 0, nil
	}
	return g.Segments[g.ActiveSegment(t)].Value(t), nil
}

func (g GVBR) IsNoCurve() bool {
	if lb, ok := g.SingleLeakyBucket(); ok {
		return lb.IsNoCurve()
	}
	return false
}
