package result

import (
	"fmt"
	"math"
	"time"

	"github.com/adfeel220/saihu/lp"
	"github.com/adfeel220/saihu/netmodel"
	"github.com/adfeel220/saihu/xtfa"
)

// Aggregator accumulates MethodResults from one or more analysis runs into
// a combined Report.
type Aggregator struct {
	flows     map[string]map[string]float64 // flow -> method -> delay
	servers   map[string]map[string]float64 // server -> method -> delay
	execTimes map[string]time.Duration
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		flows:     make(map[string]map[string]float64),
		servers:   make(map[string]map[string]float64),
		execTimes: make(map[string]time.Duration),
	}
}

// Add merges mr into the aggregator. Per-flow and per-server entries from
// distinct Add calls for the same method are merged (later calls may fill
// in flows/servers an earlier call for that method didn't cover — this is
// how repeated single-flow-of-interest lp.Build* calls accumulate into one
// method's full picture); ExecTime is summed across calls for the same
// method, matching each Add call representing one more unit of work done
// under that method.
func (a *Aggregator) Add(mr MethodResult) {
	for flow, d := range mr.PerFlowDelay {
		if a.flows[flow] == nil {
			a.flows[flow] = make(map[string]float64)
		}
		a.flows[flow][mr.Method] = d
	}
	for server, d := range mr.PerServerDelay {
		if a.servers[server] == nil {
			a.servers[server] = make(map[string]float64)
		}
		a.servers[server][mr.Method] = d
	}
	a.execTimes[mr.Method] += mr.ExecTime
}

// Report builds the combined Report from everything added so far.
func (a *Aggregator) Report() Report {
	r := Report{
		Flows:     make(map[string]FlowReport, len(a.flows)),
		Servers:   make(map[string]ServerReport, len(a.servers)),
		ExecTimes: make(map[string]time.Duration, len(a.execTimes)),
	}
	for flow, byMethod := range a.flows {
		fr := FlowReport{ByMethod: byMethod, Best: math.Inf(1)}
		for method, d := range byMethod {
			if d < fr.Best {
				fr.Best = d
				fr.BestMethod = method
			}
		}
		r.Flows[flow] = fr
	}
	for server, byMethod := range a.servers {
		r.Servers[server] = ServerReport{ByMethod: byMethod}
	}
	for method, d := range a.execTimes {
		r.ExecTimes[method] = d
	}
	return r
}

// FromXTFA turns one xtfa.Report into a MethodResult: every server's DBP
// delay bound, and every flow's end-to-end delay as the worst (maximum)
// sum of node delays over its analyzed paths (netmodel.Flow.AllPaths),
// matching the multicast "worst delay across paths" rule.
func FromXTFA(net *netmodel.Network, method string, report xtfa.Report, execTime time.Duration) (MethodResult, error) {
	mr := MethodResult{
		Method:         method,
		PerFlowDelay:   make(map[string]float64, len(net.Flows)),
		PerServerDelay: make(map[string]float64, len(net.Servers)),
		ExecTime:       execTime,
	}

	for _, s := range net.Servers {
		node, ok := report.Nodes[s.Name]
		if !ok {
			continue
		}
		mr.PerServerDelay[s.Name] = node.Delay.Max
	}

	for _, f := range net.Flows {
		worst := 0.0
		for _, path := range f.AllPaths() {
			sum := 0.0
			for _, server := range path {
				node, ok := report.Nodes[server]
				if !ok {
					return MethodResult{}, fmt.Errorf("%w: %q", ErrUnknownServer, server)
				}
				sum += node.Delay.Max
			}
			if sum > worst {
				worst = sum
			}
		}
		mr.PerFlowDelay[f.Name] = worst
	}

	return mr, nil
}

// FromTFA turns a solved lp.BuildTFA/BuildTFAPlusPlus lp.Solution into a
// MethodResult: every server's d_<server> variable, and every flow's
// end-to-end delay as the sum of its path's server delays. An unsolved
// Solution yields +Inf for every value, per spec.md §4.5's "All LPs treat
// ∞ in the parser as a detection of an unsolved problem".
func FromTFA(net *netmodel.Network, method string, sol lp.Solution, execTime time.Duration) (MethodResult, error) {
	mr := MethodResult{
		Method:         method,
		PerFlowDelay:   make(map[string]float64, len(net.Flows)),
		PerServerDelay: make(map[string]float64, len(net.Servers)),
		ExecTime:       execTime,
	}

	for _, s := range net.Servers {
		d, err := sol.Value(lp.ServerDelayVar(s.Name))
		if err != nil {
			d = math.Inf(1)
		}
		mr.PerServerDelay[s.Name] = d
	}

	for _, f := range net.Flows {
		worst := 0.0
		for _, path := range f.AllPaths() {
			sum := 0.0
			for _, server := range path {
				sum += mr.PerServerDelay[server]
			}
			if sum > worst {
				worst = sum
			}
		}
		mr.PerFlowDelay[f.Name] = worst
	}

	return mr, nil
}

// FromFlowOfInterest turns one solved lp.BuildSFA/BuildPLP/BuildELP
// lp.Solution into a single-flow MethodResult, reading varName (one of
// lp.SFADelayVar, lp.PLPDelayVar, lp.ELPDelayVar applied to flowName).
// Callers accumulate one of these per flow of interest via Aggregator.Add.
func FromFlowOfInterest(method, flowName, varName string, sol lp.Solution, execTime time.Duration) MethodResult {
	d, err := sol.Value(varName)
	if err != nil {
		d = math.Inf(1)
	}
	return MethodResult{
		Method:       method,
		PerFlowDelay: map[string]float64{flowName: d},
		ExecTime:     execTime,
	}
}
