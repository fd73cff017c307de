// Package result aggregates the per-method analyses C5/C6 (xtfa) and C7
// (lp) produce into one report: per-flow end-to-end delay by method plus
// the best (minimum) across methods, per-server delay by method, and
// per-method execution time. Report values are unscaled seconds;
// DecideMultiplier and DecideMinMultiplier pick a common SI-prefix
// multiplier that keeps values in the 1-999 range when possible
// (original_source/src/netscript/unit_util.py's decide_min_multiplier).
package result
