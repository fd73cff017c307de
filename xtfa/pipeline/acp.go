package pipeline

import (
	"sort"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/flowstate"
)

// DefaultACPSteps returns the steps spec.md §4.3's ACP runs, in order, gated
// by cfg: InitialPerInputPortAggregator, InputPortShaping (if cfg.Packetizer
// or always — shaping itself is always attached, the packetizer flag only
// gates the penalty), LocalSourceApplications.
//
// This package provides no PacketEliminationFunction, ForceMergeAfterPEF,
// PacketOrderingFunction or RegulatorInputPipelineStep; the three steps
// above are the only ACP steps it defines.
func DefaultACPSteps() []ACPStep {
	return []ACPStep{
		InitialPerInputPortAggregator,
		InputPortShaping,
		LocalSourceApplications,
	}
}

// RunACP executes steps in order against ctx, returning the final aggregate
// curve and flow-state list.
func RunACP(ctx *ACPContext, steps []ACPStep) (ACPResult, error) {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return ACPResult{}, err
		}
	}
	return ACPResult{Aggregate: aggregateOf(ctx), States: ctx.States}, nil
}

// InitialPerInputPortAggregator partitions ctx.States by incoming edge.
// It runs the same way whether or not cfg.StartFromInfinite is set; it is
// the step that first populates
// Partitions from a flat States list built by the caller (driver) from
// every incoming edge's propagated flow states.
func InitialPerInputPortAggregator(ctx *ACPContext) error {
	grouped := make(map[string][]int)
	var order []string
	for i, fs := range ctx.States {
		if _, ok := grouped[fs.AtEdge]; !ok {
			order = append(order, fs.AtEdge)
		}
		grouped[fs.AtEdge] = append(grouped[fs.AtEdge], i)
	}
	sort.Strings(order)

	ctx.Partitions = ctx.Partitions[:0]
	for _, edge := range order {
		states := make([]*flowstate.FlowState, 0, len(grouped[edge]))
		for _, idx := range grouped[edge] {
			states = append(states, ctx.States[idx])
		}
		ctx.Partitions = append(ctx.Partitions, &Partition{Edge: edge, States: states})
	}
	return nil
}

// InputPortShaping attaches a LB(c,0) shaping curve to every partition at
// the known capacity of the predecessor server that edge arrived from;
// when cfg.Packetizer is set, that curve is worsened by the predecessor's
// packetization penalty in its tighter (ρ/c)·Lmax form.
func InputPortShaping(ctx *ACPContext) error {
	for _, p := range ctx.Partitions {
		if p.Edge == "" {
			continue // local-source partition, no incoming link to shape
		}
		pred, ok := ctx.Network.Server(p.Edge)
		if !ok || pred.Capacity <= 0 {
			continue
		}
		shaping := curve.Curve(curve.NewLeakyBucket(pred.Capacity, 0))
		if ctx.Cfg.Packetizer && pred.MaxPacketLength > 0 {
			penalty := curve.PacketizationPenalty(pred.Capacity, pred.MaxPacketLength, pred.Capacity)
			shaping = curve.Conv(shaping, penalty)
		}
		p.Shaping = shaping
	}
	return nil
}

// LocalSourceApplications appends a fresh FlowState (no shaping partition)
// for every flow whose path begins at this server, then moves its
// observation clock to TAI — worsening its arrival curve per the clock
// model, exactly as flows.py's source-application flows are always
// observed relative to the absolute clock.
func LocalSourceApplications(ctx *ACPContext) error {
	var local []*flowstate.FlowState
	for _, fl := range ctx.Network.FlowsInServer(ctx.Server.Name) {
		for pathName, path := range fl.AllPaths() {
			if len(path) == 0 || path[0] != ctx.Server.Name {
				continue
			}
			flow, ok := ctx.Flows[FlowKey{Name: fl.Name, Path: pathName}]
			if !ok {
				continue
			}
			fs := flowstate.NewFlowState(flow)
			fs.ArrivalCurve = flow.SourceArrivalCurve
			fs.AtEdge = ""
			fs.ChangeClock(flowstate.NewClock("TAI"), ctx.Cfg.Clock)
			local = append(local, fs)
		}
	}
	if len(local) == 0 {
		return nil
	}
	ctx.States = append(ctx.States, local...)
	ctx.Partitions = append(ctx.Partitions, &Partition{Edge: "", States: local})
	return nil
}

// aggregateOf computes the final α* per spec.md §4.3: the sum over every
// state's individual arrival curve, convolved (per partition) with that
// partition's shaping curve convolved with the sum of its members'
// individual arrival curves.
func aggregateOf(ctx *ACPContext) curve.Curve {
	sumAll := curve.Curve(curve.NoCurve{})
	for _, fs := range ctx.States {
		sumAll = curve.Add(sumAll, fs.ArrivalCurve)
	}

	var shaped curve.Curve
	first := true
	for _, p := range ctx.Partitions {
		sumP := curve.Curve(curve.NoCurve{})
		for _, fs := range p.States {
			sumP = curve.Add(sumP, fs.ArrivalCurve)
		}
		element := sumP
		if p.Shaping != nil {
			element = curve.Conv(p.Shaping, sumP)
		}
		if first {
			shaped = element
			first = false
		} else {
			shaped = curve.Conv(shaped, element)
		}
	}
	if shaped == nil {
		shaped = curve.NoCurve{}
	}
	return curve.Conv(sumAll, shaped)
}
