package lp

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/netmodel"
)

// Problem is an lp_solve-dialect linear program under construction: a
// max/min objective over a set of variables, plus an ordered list of
// already-rendered constraint statements. Constructors (BuildTFA, BuildSFA,
// BuildPLP, BuildELP) append to Constraints directly rather than building an
// intermediate AST, mirroring the teacher's "write the next line of the LP
// file" style (original_source/saihu/panco/fifo/tfaLP.py).
type Problem struct {
	// Maximize selects "max:" (the default used by every LP family here);
	// false selects "min:".
	Maximize bool

	// ObjectiveVars are summed with coefficient 1 in the objective line.
	ObjectiveVars []string

	// Constraints holds one fully-formed lp_solve statement per entry
	// (no trailing newline); WriteTo appends ";\n" after each.
	Constraints []string

	// Free lists variable names to declare unbounded via a "free" section;
	// every variable lp_solve doesn't see here defaults to >= 0, which is
	// correct for every burst, delay and time variable these LPs use.
	Free []string
}

// AddConstraint appends one constraint line, formatted with fmt.Sprintf.
func (p *Problem) AddConstraint(format string, args ...any) {
	p.Constraints = append(p.Constraints, fmt.Sprintf(format, args...))
}

// WriteTo renders the problem in lp_solve's text dialect.
func (p *Problem) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	if p.Maximize {
		sb.WriteString("max:")
	} else {
		sb.WriteString("min:")
	}
	for _, v := range p.ObjectiveVars {
		sb.WriteString(" +")
		sb.WriteString(v)
	}
	sb.WriteString(";\n")

	for _, c := range p.Constraints {
		sb.WriteString(c)
		sb.WriteString(";\n")
	}

	if len(p.Free) > 0 {
		sb.WriteString("free ")
		sb.WriteString(strings.Join(p.Free, ","))
		sb.WriteString(";\n")
	}

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Solution is a parsed lp_solve "-S2" run: every "name value" pair reported
// on stdout, or Unsolved if the problem had no feasible solution.
type Solution struct {
	Values   map[string]float64
	Unsolved bool
}

// Value looks up a variable's solved value, returning ErrUnsolved if
// Unsolved, or ErrUnknownVariable if the name was never reported.
func (s Solution) Value(name string) (float64, error) {
	if s.Unsolved {
		return 0, ErrUnsolved
	}
	v, ok := s.Values[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return v, nil
}

var identSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// sanitize maps an arbitrary server/flow/path name to an lp_solve-safe
// identifier fragment: lp_solve variable names may only contain letters,
// digits and underscores.
func sanitize(name string) string {
	return identSanitizer.ReplaceAllString(name, "_")
}

// flowPath is one analyzed (flow, path) pair: the primary path under
// PathName "", or one named multicast branch, exactly as
// netmodel.Flow.AllPaths enumerates them.
type flowPath struct {
	id       string // sanitized, collision-free identifier for this flow instance
	flow     *netmodel.Flow
	pathName string
	path     []string
	arrival  []lbSegment
}

// lbSegment is one active leaky-bucket segment of an arrival curve, pulled
// out of either a bare curve.LeakyBucket or a curve.GVBR's Segments.
type lbSegment struct {
	Rate, Burst float64
}

// lbSegmentsOf extracts the active leaky-bucket segments of c, in the
// canonical ascending-burst order GVBR already maintains.
func lbSegmentsOf(c curve.Curve) ([]lbSegment, bool) {
	switch v := c.(type) {
	case curve.LeakyBucket:
		return []lbSegment{{Rate: v.Rate, Burst: v.Burst}}, true
	case curve.GVBR:
		if len(v.Segments) == 0 {
			return nil, false
		}
		out := make([]lbSegment, len(v.Segments))
		for i, s := range v.Segments {
			out[i] = lbSegment{Rate: s.Rate, Burst: s.Burst}
		}
		return out, true
	default:
		return nil, false
	}
}

// rlSegmentsOf extracts the active rate-latency segments of c.
func rlSegmentsOf(c curve.Curve) ([]curve.RateLatency, bool) {
	switch v := c.(type) {
	case curve.RateLatency:
		return []curve.RateLatency{v}, true
	case curve.MaxOfRateLatencies:
		if len(v.Segments) == 0 {
			return nil, false
		}
		return v.Segments, true
	default:
		return nil, false
	}
}

// flowPaths flattens every (flow, path) pair of net into a deterministically
// ordered list: sorted by (flow name, path name) since netmodel.Flow.Paths
// is a map and map iteration order is not stable.
func flowPaths(net *netmodel.Network) ([]flowPath, error) {
	var out []flowPath
	for _, f := range net.Flows {
		segs, ok := lbSegmentsOf(f.Arrival)
		if !ok {
			return nil, fmt.Errorf("%w: flow %q", ErrNoArrivalCurve, f.Name)
		}
		for name, path := range f.AllPaths() {
			if len(path) == 0 {
				return nil, fmt.Errorf("%w: flow %q path %q", ErrEmptyPath, f.Name, name)
			}
			out = append(out, flowPath{id: sanitize(f.Name) + pathSuffix(name), flow: f, pathName: name, path: path, arrival: segs})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].flow.Name != out[j].flow.Name {
			return out[i].flow.Name < out[j].flow.Name
		}
		return out[i].pathName < out[j].pathName
	})
	return out, nil
}

func pathSuffix(name string) string {
	if name == "" {
		return ""
	}
	return "_" + sanitize(name)
}

// Variable name builders. All LP families share this naming scheme so a
// Solution's variable names are self-describing in lp_solve's text dump.
func xVar(id, server string) string { return "x_" + id + "_" + sanitize(server) }
func fVar(id, server string) string { return "f_" + id + "_" + sanitize(server) }
func dVar(server string) string     { return "d_" + sanitize(server) }
func uVar(server string) string     { return "u_" + sanitize(server) }
func tVar(server string) string     { return "t_" + sanitize(server) }
func aVar(server string) string     { return "a_" + sanitize(server) }
func bVar(server string) string     { return "b_" + sanitize(server) }
