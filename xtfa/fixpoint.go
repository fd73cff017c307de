package xtfa

import (
	"fmt"
	"sort"

	"github.com/adfeel220/saihu/core"
	"github.com/adfeel220/saihu/fas"
	"github.com/adfeel220/saihu/flowstate"
	"github.com/adfeel220/saihu/netmodel"
	"github.com/adfeel220/saihu/saihulog"
	"github.com/adfeel220/saihu/xtfa/pipeline"
)

// CyclicFixPointDriver analyzes a flow-induced graph that contains cycles:
// it cuts the graph with an exact MFAS solver, seeds each cut edge with a
// zero-delay guess, and repeatedly re-runs the feed-forward driver over the
// resulting acyclic graph until the flow states materializing on the cut
// edges stop changing.
type CyclicFixPointDriver struct {
	Network *netmodel.Network
	Flows   map[pipeline.FlowKey]*flowstate.Flow
	Cfg     pipeline.Config
	Steps   Steps

	// Solver computes the feedback arc set cut. Defaults to fas.BaharevMfas
	// with fas.DefaultMILPSolver when nil.
	Solver fas.Solver

	// MaxIterations bounds the fix-point loop; defaults to 100.
	MaxIterations int

	// MatchDmax additionally requires equal max_delay_from["source"] for
	// convergence, not just equal arrival curves and dictionary keys.
	MatchDmax bool
}

// cutEdge names one feedback edge chosen by the MFAS solver: the edge from
// From to To is removed from the scheduling graph and instead seeded
// directly every iteration.
type cutEdge struct {
	From, To string
}

// Run executes the fix-point loop, returning the final feed-forward Report
// once the cut-edge situation stabilizes, or ErrFixPointDidNotConverge after
// MaxIterations.
func (d CyclicFixPointDriver) Run() (Report, error) {
	cuts, err := d.computeCuts()
	if err != nil {
		return Report{}, fmt.Errorf("xtfa: computing cuts: %w", err)
	}
	cutFlows := d.flowsPerCut(cuts)
	saihulog.Logger().WithField("cuts", len(cuts)).Info("xtfa: cyclic driver starting fix-point iteration")

	maxIter := d.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}

	ffNet, err := d.acyclicNetworkWithoutCuts(cuts)
	if err != nil {
		return Report{}, err
	}
	cfg := d.Cfg
	cfg.FixPoint = true // required for CeilBursts convergence

	seeds := d.initialGuess(cuts, cutFlows)
	var prevSignature []string
	for iter := 0; iter < maxIter; iter++ {
		driver := FeedForwardDriver{Network: ffNet, Flows: d.Flows, Cfg: cfg, Steps: d.Steps}
		e := newFFEngine(driver)
		for name, states := range seeds {
			e.incoming[name] = append(e.incoming[name], states...)
		}
		report, err := e.run()
		if err != nil {
			return Report{}, fmt.Errorf("xtfa: fix-point sweep %d: %w", iter, err)
		}

		signature := d.cutSignature(cutFlows, report)
		if iter > 0 && signaturesEqual(prevSignature, signature) {
			saihulog.Logger().WithField("iterations", iter+1).Info("xtfa: fix-point converged")
			return report, nil
		}
		prevSignature = signature
		seeds = d.extractSeeds(cuts, cutFlows, report)
	}
	return Report{}, ErrFixPointDidNotConverge
}

// computeCuts runs the configured MFAS solver over the network's
// flow-induced graph and returns the chosen feedback edges as (From, To)
// server-name pairs.
func (d CyclicFixPointDriver) computeCuts() ([]cutEdge, error) {
	g := core.NewGraph(core.WithDirected(true))
	for _, s := range d.Network.Servers {
		_ = g.AddVertex(s.Name)
	}
	for _, e := range d.Network.Edges() {
		if g.HasEdge(e.From, e.To) {
			continue
		}
		_, _ = g.AddEdge(e.From, e.To, 1)
	}

	solver := d.Solver
	if solver == nil {
		solver = fas.BaharevMfas{Solver: fas.DefaultMILPSolver{}}
	}
	fasSet, err := solver.GetFAS(g)
	if err != nil {
		return nil, err
	}

	cuts := make([]cutEdge, 0, len(fasSet))
	for _, e := range fasSet {
		cuts = append(cuts, cutEdge{From: e.From, To: e.To})
	}
	sort.Slice(cuts, func(i, j int) bool {
		if cuts[i].From != cuts[j].From {
			return cuts[i].From < cuts[j].From
		}
		return cuts[i].To < cuts[j].To
	})
	return cuts, nil
}

// acyclicNetworkWithoutCuts rebuilds a netmodel.Network whose flows have had
// every cut edge's server hop removed from their paths, so the feed-forward
// driver sees a strictly acyclic graph; the cut edge's downstream half is
// instead supplied directly every iteration via the seeds map.
func (d CyclicFixPointDriver) acyclicNetworkWithoutCuts(cuts []cutEdge) (*netmodel.Network, error) {
	cut := make(map[cutEdge]bool, len(cuts))
	for _, c := range cuts {
		cut[c] = true
	}

	flows := make([]*netmodel.Flow, 0, len(d.Network.Flows))
	for _, fl := range d.Network.Flows {
		nf := *fl
		nf.Path = splitAtCut(fl.Path, cut)
		if len(fl.Paths) > 0 {
			nf.Paths = make(map[string][]string, len(fl.Paths))
			for k, p := range fl.Paths {
				nf.Paths[k] = splitAtCut(p, cut)
			}
		}
		flows = append(flows, &nf)
	}
	return netmodel.NewNetwork(d.Network.Servers, flows)
}

// splitAtCut truncates path at the first cut edge it crosses: the
// downstream remainder after a cut is re-entered via a seeded flow state,
// not by the predecessor link, so keeping it in Path would make the
// rebuilt network's predecessor graph cyclic again.
func splitAtCut(path []string, cut map[cutEdge]bool) []string {
	for i := 0; i+1 < len(path); i++ {
		if cut[cutEdge{From: path[i], To: path[i+1]}] {
			return path[:i+1]
		}
	}
	return path
}

// cutCrossing identifies one (flow, path-branch) that crosses a given cut
// edge, keyed the same way as CyclicFixPointDriver.Flows.
type cutCrossing struct {
	Key pipeline.FlowKey
	Cut cutEdge
}

// flowsPerCut finds, for every cut edge, every flow (and multicast branch)
// whose original (pre-truncation) path crosses it — computed once up front
// since the network's flow topology does not change across iterations.
func (d CyclicFixPointDriver) flowsPerCut(cuts []cutEdge) []cutCrossing {
	var out []cutCrossing
	for _, c := range cuts {
		for _, fl := range d.Network.FlowsInServer(c.From) {
			for pathName, path := range fl.AllPaths() {
				if pathCrosses(path, c) {
					out = append(out, cutCrossing{Key: pipeline.FlowKey{Name: fl.Name, Path: pathName}, Cut: c})
				}
			}
		}
	}
	return out
}

func pathCrosses(path []string, c cutEdge) bool {
	for i := 0; i+1 < len(path); i++ {
		if path[i] == c.From && path[i+1] == c.To {
			return true
		}
	}
	return false
}

// initialGuess builds, for every flow crossing a cut edge, the initial
// "guess" flow state materialized directly on that cut: the flow's source
// arrival curve, with every delay/rto dictionary entry at zero (spec.md
// §4.4 step 2).
func (d CyclicFixPointDriver) initialGuess(cuts []cutEdge, crossings []cutCrossing) map[string][]*flowstate.FlowState {
	seeds := make(map[string][]*flowstate.FlowState)
	for _, cr := range crossings {
		flow, ok := d.Flows[cr.Key]
		if !ok {
			continue
		}
		fs := flowstate.NewFlowState(flow)
		fs.ArrivalCurve = flow.SourceArrivalCurve
		fs.AtEdge = cr.Cut.From
		seeds[cr.Cut.To] = append(seeds[cr.Cut.To], fs)
	}
	return seeds
}

// extractSeeds pulls, for every cut crossing, the actual flow state this
// iteration's sweep computed at the cut's origin server (matched by Flow
// pointer identity, since each FlowKey owns a distinct *flowstate.Flow), and
// uses it as next iteration's materialized guess — this is what lets bursts
// and delays actually refine toward a fixed point instead of being
// recomputed from the same initial guess every time.
func (d CyclicFixPointDriver) extractSeeds(cuts []cutEdge, crossings []cutCrossing, report Report) map[string][]*flowstate.FlowState {
	seeds := make(map[string][]*flowstate.FlowState)
	for _, cr := range crossings {
		flow, ok := d.Flows[cr.Key]
		if !ok {
			continue
		}
		res, ok := report.Nodes[cr.Cut.From]
		if !ok {
			continue
		}
		for _, fs := range res.Outgoing {
			if fs.Flow != flow {
				continue
			}
			seeds[cr.Cut.To] = append(seeds[cr.Cut.To], fs.Copy())
		}
	}
	return seeds
}

// cutSignature renders the comparison spec.md's cyclic driver requires:
// same flow name, same edge, same canonicalized arrival curve, same
// dictionary keys, and (if MatchDmax) equal max_delay_from["source"] — for
// every flow state crossing a cut this iteration.
func (d CyclicFixPointDriver) cutSignature(crossings []cutCrossing, report Report) []string {
	var sig []string
	for _, cr := range crossings {
		flow, ok := d.Flows[cr.Key]
		if !ok {
			continue
		}
		res, ok := report.Nodes[cr.Cut.From]
		if !ok {
			continue
		}
		for _, fs := range res.Outgoing {
			if fs.Flow != flow {
				continue
			}
			keys := make([]string, 0, len(fs.MaxDelayFrom))
			for k := range fs.MaxDelayFrom {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			entry := fmt.Sprintf("%s@%s->%s|%v|%v", fs.Flow.Name, cr.Cut.From, cr.Cut.To, fs.ArrivalCurve, keys)
			if d.MatchDmax {
				entry += fmt.Sprintf("|%.15g", fs.MaxDelayFrom["source"])
			}
			sig = append(sig, entry)
		}
	}
	sort.Strings(sig)
	return sig
}

func signaturesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
