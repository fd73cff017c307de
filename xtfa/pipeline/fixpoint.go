package pipeline

import (
	"math"

	"github.com/adfeel220/saihu/curve"
)

// ceilToPlaces rounds v up to the given number of decimal places, clamping
// floating-point drift (e.g. 3.0000000000000004) to a fixed grid so that
// successive cyclic fix-point iterations can actually detect convergence
// instead of oscillating on representation noise.
func ceilToPlaces(v float64, places int) float64 {
	if math.IsInf(v, 1) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Ceil(v*scale) / scale
}

// ceilCurveBursts rounds a curve's burst terms up to the next integer,
// leaving its rate terms untouched. Only the concrete curve shapes the
// pipeline actually produces (LeakyBucket, NoCurve, InfiniteCurve) are
// recognized; anything else passes through unchanged, since a composite
// curve's burst isn't a single scalar to ceil.
func ceilCurveBursts(c curve.Curve) curve.Curve {
	switch v := c.(type) {
	case curve.LeakyBucket:
		return curve.NewLeakyBucket(v.Rate, math.Ceil(v.Burst))
	default:
		return c
	}
}
