package flowstate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adfeel220/saihu/core"
	"github.com/adfeel220/saihu/curve"
)

// NewFlow validates paths (every path non-empty, no port repeated within a
// single path) and stores them. It does not build the flow-induced graph;
// Graph builds it on each call.
func NewFlow(name string, sourceArrivalCurve curve.Curve, maxPacketLength, minPacketLength float64, trafficClass string, paths map[string][]string) (*Flow, error) {
	if sourceArrivalCurve == nil {
		sourceArrivalCurve = curve.NoCurve{}
	}
	for key, path := range paths {
		if len(path) == 0 {
			return nil, fmt.Errorf("flowstate: path %q: %w", displayPathKey(key), ErrEmptyPath)
		}
		seen := make(map[string]struct{}, len(path))
		for _, port := range path {
			if _, dup := seen[port]; dup {
				return nil, fmt.Errorf("flowstate: path %q: %w: %s", displayPathKey(key), ErrRepeatedPort, port)
			}
			seen[port] = struct{}{}
		}
	}

	f := &Flow{
		Name:               name,
		SourceArrivalCurve: sourceArrivalCurve,
		MaxPacketLength:    maxPacketLength,
		MinPacketLength:    minPacketLength,
		TrafficClass:       trafficClass,
		Properties:         make(map[string]string),
		Paths:              paths,
		flowStatesAtPort:   make(map[string][]*FlowState),
		atsCurves:          make(map[string]curve.Curve),
	}
	return f, nil
}

func displayPathKey(key string) string {
	if key == "" {
		return "<primary>"
	}
	return key
}

// Graph rebuilds the flow-induced directed graph over output-port names:
// one vertex per distinct port across every path, one edge per consecutive
// hop (deduplicated across branches sharing a prefix).
func (f *Flow) Graph() *core.Graph {
	g := core.NewGraph(core.WithDirected(true))
	for _, path := range f.Paths {
		for _, port := range path {
			_ = g.AddVertex(port)
		}
		for i := 0; i+1 < len(path); i++ {
			if g.HasEdge(path[i], path[i+1]) {
				continue
			}
			_, _ = g.AddEdge(path[i], path[i+1], 0)
		}
	}
	return g
}

// LeafPorts returns every port that has no outgoing hop in any path — the
// flow's terminal output ports.
func (f *Flow) LeafPorts() []string {
	g := f.Graph()
	var leaves []string
	for _, v := range g.Vertices() {
		_, outDeg, _, err := g.Degree(v)
		if err == nil && outDeg == 0 {
			leaves = append(leaves, v)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// RegisterFlowState records fs as the (or one of several duplicated, in the
// multicast-duplication sense) FlowStates observed at output port port.
func (f *Flow) RegisterFlowState(port string, fs *FlowState) {
	f.flowStatesAtPort[port] = append(f.flowStatesAtPort[port], fs)
}

// RegisterAtsCurve parks an ATS-shaped arrival curve directly on node,
// addressable later via the "ats:<node>" reference-point form.
func (f *Flow) RegisterAtsCurve(node string, c curve.Curve) {
	f.atsCurves[node] = c
}

// ArrivalCurveAtReference returns this flow's arrival curve at reference
// point ref: the sentinel "source" returns SourceArrivalCurve; an
// "ats:<node>" reference returns the curve registered via RegisterAtsCurve
// at that node, or ErrAtsCurveNotKnown if none was registered; any other ref
// is treated as an output-port name and returns the sum of every FlowState
// recorded there via RegisterFlowState (summing models the case where
// packets for this flow pass the port more than once, e.g. after
// multicast duplication), or ErrCurveNotKnown if none have been recorded.
func (f *Flow) ArrivalCurveAtReference(ref string) (curve.Curve, error) {
	if ref == "source" {
		return f.SourceArrivalCurve, nil
	}
	if strings.HasPrefix(ref, "ats:") {
		node := strings.TrimPrefix(ref, "ats:")
		c, ok := f.atsCurves[node]
		if !ok {
			return nil, fmt.Errorf("%w: flow %s, port %s", ErrAtsCurveNotKnown, f.Name, node)
		}
		return c, nil
	}

	states, ok := f.flowStatesAtPort[ref]
	if !ok || len(states) == 0 {
		return nil, fmt.Errorf("%w: flow %s, port %s", ErrCurveNotKnown, f.Name, ref)
	}
	total := curve.Curve(curve.NoCurve{})
	for _, fs := range states {
		total = curve.Add(total, fs.ArrivalCurve)
	}
	return total, nil
}
