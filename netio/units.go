package netio

import (
	"fmt"
	"strconv"
	"strings"
)

// siMultiplier mirrors original_source/src/netscript/unit_util.py's
// multipliers table (minus the empty-string entry, which is "no
// multiplier").
var siMultiplier = map[byte]float64{
	'a': 1e-18,
	'f': 1e-15,
	'p': 1e-12,
	'n': 1e-9,
	'u': 1e-6,
	'm': 1e-3,
	'k': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'P': 1e15,
	'E': 1e18,
}

// timeUnit maps a unit_util.py time-unit suffix to seconds.
var timeUnit = map[string]float64{"s": 1, "m": 60, "h": 3600}

// dataUnit maps a unit_util.py data-unit suffix to bits.
var dataUnit = map[string]float64{"b": 1, "B": 8}

// rateUnit maps a unit_util.py rate-unit suffix ("{data}p{time}", e.g.
// "bps", "Bpm") to bits/second, matching get_rate_unit's du/tu.
var rateUnit = buildRateUnits()

func buildRateUnits() map[string]float64 {
	out := make(map[string]float64, len(dataUnit)*len(timeUnit))
	for dch, d := range dataUnit {
		for tch, t := range timeUnit {
			out[dch+"p"+tch] = d / t
		}
	}
	return out
}

// parseWithUnit parses a "<num><SI-prefix><base>" string into its canonical
// base value (seconds, bits, or bits/second depending on units), matching
// unit_util.py's parse_num_unit_time/data/rate family. A string with no
// recognized unit suffix is parsed as a bare number and scaled by
// pureNumberScale, implementing spec.md §6's "pure numbers default to the
// network's declared unit".
func parseWithUnit(s string, units map[string]float64, pureNumberScale float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("netio: empty numeric value")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v * pureNumberScale, nil
	}

	var unitSuffix string
	var unitScale float64
	for u, scale := range units {
		if strings.HasSuffix(s, u) && len(u) > len(unitSuffix) {
			unitSuffix, unitScale = u, scale
		}
	}
	if unitSuffix == "" {
		return 0, fmt.Errorf("netio: %q has no recognized unit suffix", s)
	}

	rest := s[:len(s)-len(unitSuffix)]
	if rest == "" {
		return 0, fmt.Errorf("netio: %q is missing its numeric part", s)
	}

	if v, err := strconv.ParseFloat(rest, 64); err == nil {
		return v * unitScale, nil
	}

	mc := rest[len(rest)-1]
	mult, ok := siMultiplier[mc]
	if !ok {
		return 0, fmt.Errorf("netio: %q: unrecognized SI multiplier %q", s, string(mc))
	}
	numPart := rest[:len(rest)-1]
	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("netio: %q is not a number", s)
	}
	return v * mult * unitScale, nil
}

// ParseTime parses a time quantity into seconds.
func ParseTime(s string, pureNumberScale float64) (float64, error) {
	return parseWithUnit(s, timeUnit, pureNumberScale)
}

// ParseData parses a data-size quantity into bits.
func ParseData(s string, pureNumberScale float64) (float64, error) {
	return parseWithUnit(s, dataUnit, pureNumberScale)
}

// ParseRate parses a rate quantity into bits/second.
func ParseRate(s string, pureNumberScale float64) (float64, error) {
	return parseWithUnit(s, rateUnit, pureNumberScale)
}
