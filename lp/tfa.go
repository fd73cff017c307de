package lp

import (
	"fmt"

	"github.com/adfeel220/saihu/netmodel"
)

// BuildTFA constructs the Total Flow Analysis linear program for net
// (original_source/saihu/panco/fifo/tfaLP.py:tfa_variables,
// tfa_constraints_server), generalized from panco's single-token-bucket
// restriction to every active segment of a (possibly GVBR) arrival curve and
// every active segment of a (possibly MaxOfRateLatencies) service curve.
//
// When shaping is true, the TFA++ extension is added: every server's output
// is additionally bounded by a leaky bucket of burst MaxPacketLength and
// rate Capacity (the server's own output shaper, if one is configured, is
// folded in as a further tightening bound).
func BuildTFA(net *netmodel.Network, shaping bool) (*Problem, error) {
	fps, err := flowPaths(net)
	if err != nil {
		return nil, err
	}

	prob := &Problem{Maximize: true}
	for _, s := range net.Servers {
		prob.ObjectiveVars = append(prob.ObjectiveVars, dVar(s.Name))
	}

	for i := range fps {
		if err := addBurstPropagation(prob, &fps[i]); err != nil {
			return nil, err
		}
	}

	for _, s := range net.Servers {
		if err := addServerConstraints(prob, net, s, fps, shaping); err != nil {
			return nil, err
		}
	}

	return prob, nil
}

// BuildTFAPlusPlus is BuildTFA with shaping constraints enabled.
func BuildTFAPlusPlus(net *netmodel.Network) (*Problem, error) {
	return BuildTFA(net, true)
}

func addBurstPropagation(prob *Problem, fp *flowPath) error {
	for l, server := range fp.path {
		if l == 0 {
			prob.AddConstraint("%s = %g", xVar(fp.id, server), fp.arrival[0].Burst)
			continue
		}
		prev := fp.path[l-1]
		for _, seg := range fp.arrival {
			prob.AddConstraint("%s <= %s + %g %s", xVar(fp.id, server), xVar(fp.id, prev), seg.Rate, dVar(prev))
		}
	}
	return nil
}

// flowsAtServer returns every flowPath instance whose path visits server,
// in fps's already-deterministic order.
func flowsAtServer(fps []flowPath, server string) []*flowPath {
	var out []*flowPath
	for i := range fps {
		for _, s := range fps[i].path {
			if s == server {
				out = append(out, &fps[i])
				break
			}
		}
	}
	return out
}

// crossesEdge reports whether fp's path has a hop from -> to.
func crossesEdge(path []string, from, to string) bool {
	for i := 0; i+1 < len(path); i++ {
		if path[i] == from && path[i+1] == to {
			return true
		}
	}
	return false
}

func addServerConstraints(prob *Problem, net *netmodel.Network, s *netmodel.Server, fps []flowPath, shaping bool) error {
	here := flowsAtServer(fps, s.Name)

	for _, fp := range here {
		for _, seg := range fp.arrival {
			prob.AddConstraint("%s <= %s + %g %s", fVar(fp.id, s.Name), xVar(fp.id, s.Name), seg.Rate, uVar(s.Name))
		}
	}

	if shaping {
		for _, h := range net.Predecessors(s.Name) {
			pred, ok := net.Server(h)
			if !ok {
				continue
			}
			crossing := crossingTerms(fps, pred.Name, s.Name)
			if len(crossing) == 0 {
				continue
			}
			if pred.Capacity > 0 {
				addShapingBound(prob, crossing, pred.MaxPacketLength, pred.Capacity, s.Name)
			}
			if pred.Shaping != nil {
				if segs, ok := lbSegmentsOf(pred.Shaping); ok {
					for _, seg := range segs {
						addShapingBound(prob, crossing, seg.Burst, seg.Rate, s.Name)
					}
				}
			}
		}
	}

	sum := "0"
	for _, fp := range here {
		sum += " +" + fVar(fp.id, s.Name)
	}
	prob.AddConstraint("%s = %s", sum, aVar(s.Name))

	segs, ok := rlSegmentsOf(s.Service)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoServiceCurve, s.Name)
	}
	for _, rl := range segs {
		prob.AddConstraint("%s >= %g %s - %g", bVar(s.Name), rl.Rate, tVar(s.Name), rl.Rate*rl.Latency)
	}
	prob.AddConstraint("%s >= 0", bVar(s.Name))
	prob.AddConstraint("%s = %s", bVar(s.Name), aVar(s.Name))
	prob.AddConstraint("%s = %s - %s", dVar(s.Name), tVar(s.Name), uVar(s.Name))
	prob.AddConstraint("%s >= 0", dVar(s.Name))
	return nil
}

// crossingTerms returns the fVar names of every flow instance crossing the
// from->to edge.
func crossingTerms(fps []flowPath, from, to string) []string {
	var out []string
	for i := range fps {
		if crossesEdge(fps[i].path, from, to) {
			out = append(out, fVar(fps[i].id, to))
		}
	}
	return out
}

func addShapingBound(prob *Problem, crossing []string, burst, rate float64, server string) {
	sum := "0"
	for _, v := range crossing {
		sum += " +" + v
	}
	prob.AddConstraint("%s <= %g + %g %s", sum, burst, rate, uVar(server))
}
