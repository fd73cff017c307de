package result

import "math"

// multiplierOrder lists SI prefixes from smallest to largest scale, mirroring
// original_source/src/netscript/unit_util.py's multipliers table (atto
// through Exa, with '' for unscaled).
var multiplierOrder = []string{"a", "f", "p", "n", "u", "m", "", "k", "M", "G", "T", "P", "E"}

var multiplierScale = map[string]float64{
	"a": 1e-18,
	"f": 1e-15,
	"p": 1e-12,
	"n": 1e-9,
	"u": 1e-6,
	"m": 1e-3,
	"":  1,
	"k": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
	"P": 1e15,
	"E": 1e18,
}

// DecideMultiplier picks the SI prefix that brings x into [1, 1000), falling
// back to the largest or smallest prefix when x is out of the whole table's
// range, and returns x rescaled under that prefix alongside the prefix
// itself. Mirrors unit_util.py's decide_multiplier.
func DecideMultiplier(x float64) (float64, string) {
	if x == 0 {
		return 0, ""
	}
	for _, mul := range multiplierOrder {
		scale := multiplierScale[mul]
		v := x / scale
		if v >= 1 && v < 1e3 {
			return v, mul
		}
	}
	largest := multiplierOrder[len(multiplierOrder)-1]
	if x/multiplierScale[largest] >= 1e3 {
		return x / multiplierScale[largest], largest
	}
	smallest := multiplierOrder[0]
	if x/multiplierScale[smallest] < 1.0 {
		return x / multiplierScale[smallest], smallest
	}
	return x, ""
}

// DecideMinMultiplier returns the smallest-scale SI prefix that DecideMultiplier
// would choose across all of xs, so a set of values can be reported under one
// common unit. Values that are +Inf/-Inf/NaN are skipped. Mirrors
// unit_util.py's decide_min_multiplier.
func DecideMinMultiplier(xs []float64) string {
	minMul := "E"
	seenAny := false
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		seenAny = true
		_, mul := DecideMultiplier(x)
		if multiplierScale[mul] < multiplierScale[minMul] {
			minMul = mul
		}
	}
	if !seenAny {
		return ""
	}
	return minMul
}
