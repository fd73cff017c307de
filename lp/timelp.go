package lp

import (
	"fmt"

	"github.com/adfeel220/saihu/netmodel"
)

// maxCrossInstants caps how many crossing-flow instants ELP allocates per
// node (2^min(crossCount,maxCrossInstants) - 1): panco's exponential
// time-instant construction (elpConstraints.py) is combinatorial in the
// number of flows interfering at a node, so an unbounded cap would make
// realistic networks unsolvable. PLP allocates crossCount instants, so ELP
// has more instants than PLP only for 2 <= crossCount <= 14; the two are
// equal for crossCount 0, 1 and 15, and ELP has fewer from 16 on.
const maxCrossInstants = 4

// buildTimeVariableLP constructs the PLP/ELP family of linear programs for
// one flow of interest's primary path, grounded on
// original_source/src/saihu/panco/fifo/plpConstraints.py's time-variable
// system: per node, a chain of time instants `t_j_r` ordered by a
// monotonicity constraint, a cumulative cross-traffic arrival variable
// bounded at each instant (the arrival constraints), and a rate-latency
// tangent evaluated at the chain's last instant (the service/FIFO
// constraints). The node count of instants is linear in the number of
// flows crossing that node for PLP, and exponential (capped) for ELP —
// this is panco's quadratic/exponential distinction, scoped here to a
// single linear path rather than panco's general forest (see DESIGN.md).
func buildTimeVariableLP(net *netmodel.Network, foiName string, exponential bool, label string) (*Problem, error) {
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
	delayVar := fmt.Sprintf("delay_%s_%s", label, sanitize(foiName))
	prob.ObjectiveVars = []string{delayVar}

	for i := range fps {
		if err := addBurstPropagation(prob, &fps[i]); err != nil {
			return nil, err
		}
	}

	var nodeDelayVars []string
	for _, j := range foi.Path {
		server, ok := net.Server(j)
		if !ok {
			return nil, fmt.Errorf("%w: %q", netmodel.ErrUnknownServer, j)
		}
		rlSegs, ok := rlSegmentsOf(server.Service)
		if !ok || len(rlSegs) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoServiceCurve, j)
		}
		rl := rlSegs[len(rlSegs)-1]

		var rhoCross, sigmaCross float64
		crossCount := 0
		for i := range fps {
			if fps[i].flow.Name == foiName || !containsServer(fps[i].path, j) {
				continue
			}
			crossCount++
			rhoCross += fps[i].arrival[0].Rate
			sigmaCross += fps[i].arrival[0].Burst
		}

		instants := crossCount
		if exponential {
			bounded := crossCount
			if bounded > maxCrossInstants {
				bounded = maxCrossInstants
			}
			instants = (1 << uint(bounded)) - 1
		}
		if instants < 1 {
			instants = 1
		}

		tName := func(r int) string { return fmt.Sprintf("t_%s_%s_%d", label, sanitize(j), r) }
		fcName := func(r int) string { return fmt.Sprintf("fc_%s_%s_%d", label, sanitize(j), r) }

		for r := 1; r <= instants; r++ {
			prob.AddConstraint("%s <= %s", tName(r-1), tName(r))
			prob.AddConstraint("%s <= %g + %g %s", fcName(r), sigmaCross, rhoCross, tName(r))
			prob.AddConstraint("%s >= %s", fcName(r), fcName(r-1))
		}
		prob.AddConstraint("%s = 0", fcName(0))
		prob.AddConstraint("%s = 0", tName(0))

		aVarJ := "a_" + label + "_" + sanitize(j)
		bVarJ := "b_" + label + "_" + sanitize(j)
		dVarJ := "d_" + label + "_" + sanitize(j)

		prob.AddConstraint("%s = %s + %s", aVarJ, xVar(sanitize(foiName), j), fcName(instants))
		prob.AddConstraint("%s >= %g %s - %g", bVarJ, rl.Rate, tName(instants), rl.Rate*rl.Latency)
		prob.AddConstraint("%s >= 0", bVarJ)
		prob.AddConstraint("%s = %s", bVarJ, aVarJ)
		prob.AddConstraint("%s = %s", dVarJ, tName(instants))
		prob.AddConstraint("%s >= 0", dVarJ)
		nodeDelayVars = append(nodeDelayVars, dVarJ)
	}

	sum := "0"
	for _, v := range nodeDelayVars {
		sum += " +" + v
	}
	prob.AddConstraint("%s = %s", delayVar, sum)

	return prob, nil
}
