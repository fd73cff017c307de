package lp

import (
	"fmt"

	"github.com/adfeel220/saihu/netmodel"
)

// BuildSFA constructs the Separated Flow Analysis linear program for one
// flow of interest's primary path, grounded on
// original_source/src/panco/fifo/fifoLP.py's forest-decomposition approach
// but scoped to the common case its forest degenerates to: foi's own path
// is the tree, and every other flow crossing a node on that path
// contributes to the node's cross-traffic burst exactly as it would at the
// root of its own one-node sub-tree. (General branching topologies, where
// the forest under a node has depth > 1, are not decomposed further; see
// DESIGN.md.)
//
// Per node j on the path, SFA leaves the server's own rate Rⱼ untouched
// (unlike a full leftover-service-curve subtraction) and absorbs cross
// traffic purely as added latency θⱼ = Tⱼ + bCrossⱼ/Rⱼ, per spec. foi's
// end-to-end delay is the closed-form sum of θⱼ over its path, plus its own
// burst divided by the path's bottleneck rate.
func BuildSFA(net *netmodel.Network, foiName string) (*Problem, error) {
	foi, ok := net.Flow(foiName)
	if !ok {
		return nil, fmt.Errorf("%w: flow %q", netmodel.ErrUnknownServer, foiName)
	}
	fps, err := flowPaths(net)
	if err != nil {
		return nil, err
	}
	foiSegs, ok := lbSegmentsOf(foi.Arrival)
	if !ok || len(foiSegs) == 0 {
		return nil, fmt.Errorf("%w: flow %q", ErrNoArrivalCurve, foiName)
	}

	prob := &Problem{Maximize: true}
	delayVar := "delay_" + sanitize(foiName)
	prob.ObjectiveVars = []string{delayVar}

	for i := range fps {
		if err := addBurstPropagation(prob, &fps[i]); err != nil {
			return nil, err
		}
	}

	rMin := 0.0
	thetaVars := make([]string, 0, len(foi.Path))
	for _, j := range foi.Path {
		server, ok := net.Server(j)
		if !ok {
			return nil, fmt.Errorf("%w: %q", netmodel.ErrUnknownServer, j)
		}
		segs, ok := rlSegmentsOf(server.Service)
		if !ok || len(segs) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoServiceCurve, j)
		}
		rl := segs[len(segs)-1] // highest-rate (long-term) segment
		if rMin == 0 || rl.Rate < rMin {
			rMin = rl.Rate
		}

		var crossTerms []string
		for i := range fps {
			if fps[i].flow.Name == foiName {
				continue
			}
			if !containsServer(fps[i].path, j) {
				continue
			}
			crossTerms = append(crossTerms, xVar(fps[i].id, j))
		}

		thetaVar := "theta_" + sanitize(foiName) + "_" + sanitize(j)
		thetaVars = append(thetaVars, thetaVar)
		// thetaVar = T + (1/R) * crossSum  <=>  R*thetaVar - crossSum = R*T
		line := fmt.Sprintf("%g %s", rl.Rate, thetaVar)
		for _, t := range crossTerms {
			line += " -" + t
		}
		prob.AddConstraint("%s = %g", line, rl.Rate*rl.Latency)
	}

	if rMin <= 0 {
		return nil, fmt.Errorf("%w: flow %q path has no positive-rate server", ErrNoServiceCurve, foiName)
	}

	sum := fmt.Sprintf("%g", foiSegs[0].Burst/rMin)
	for _, t := range thetaVars {
		sum += " +" + t
	}
	prob.AddConstraint("%s = %s", delayVar, sum)

	return prob, nil
}

func containsServer(path []string, server string) bool {
	for _, s := range path {
		if s == server {
			return true
		}
	}
	return false
}
