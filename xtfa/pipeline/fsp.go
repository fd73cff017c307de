package pipeline

import "github.com/adfeel220/saihu/curve"

// sourceRef is the reference point this simplified FSP treats as always
// "fresh". This package has no regulator step (see acp.go), so no node ever
// refreshes a reference other than "source", and it is always the freshest
// one available.
const sourceRef = "source"

// DefaultFSPSteps returns spec.md §4.3's flow-state update pipeline in
// order, gated by cfg.
func DefaultFSPSteps() []FSPStep {
	return []FSPStep{
		DeltaDDeconvolution,
		AddSufferedDelay,
		ReferenceTagging,
		ConstantPropagationDelay,
		CeilBursts,
	}
}

// RunFSP executes steps in order against ctx.State.
func RunFSP(ctx *FSPContext, steps []FSPStep) error {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// DeltaDDeconvolution computes this state's outgoing arrival curve. In
// propagation mode: α_out = α_in ⊘ BoundedDelay(dmax-dmin). In from-source
// mode (the default): α_out = α_fresh ⊘ BoundedDelay(Dmax_from_ref -
// dmin_from_ref), where α_fresh is the flow's curve at sourceRef.
func DeltaDDeconvolution(ctx *FSPContext) error {
	spread := ctx.Delay.Max - ctx.Delay.Min
	if ctx.Cfg.PropagationMode {
		ctx.State.ArrivalCurve = curve.Deconv(ctx.State.ArrivalCurve, curve.NewBoundedDelay(spread))
		return nil
	}

	fresh, err := ctx.State.Flow.ArrivalCurveAtReference(sourceRef)
	if err != nil {
		return err
	}
	dmax := ctx.State.MaxDelayFrom[sourceRef]
	dmin := ctx.State.MinDelayFrom[sourceRef]
	ctx.State.ArrivalCurve = curve.Deconv(fresh, curve.NewBoundedDelay(dmax-dmin))
	return nil
}

// AddSufferedDelay records the node's delay bound against every reference
// point this state tracks.
func AddSufferedDelay(ctx *FSPContext) error {
	ctx.State.AddSufferedDelay(ctx.Delay.Max, ctx.Delay.Min, true)
	return nil
}

// ReferenceTagging adds the outgoing edge's origin server as a fresh
// reference-point key, initialized at zero, so downstream nodes can later
// measure delay suffered since this point.
func ReferenceTagging(ctx *FSPContext) error {
	if !ctx.Cfg.ReferenceTagging {
		return nil
	}
	ctx.State.AddDelayFromEntry(ctx.Server.Name)
	ctx.State.AddRtoFromEntry(ctx.Server.Name)
	return nil
}

// ConstantPropagationDelay adds a fixed link delay uniformly to every
// min/max delay entry, when cfg configures one.
func ConstantPropagationDelay(ctx *FSPContext) error {
	if ctx.Cfg.ConstantPropagationDelay <= 0 {
		return nil
	}
	ctx.State.AddSufferedDelay(ctx.Cfg.ConstantPropagationDelay, ctx.Cfg.ConstantPropagationDelay, true)
	return nil
}

// CeilBursts rounds the arrival curve's leaky-bucket bursts up to the next
// integer and the max delay up to 15 decimal places, so that repeated
// cyclic fix-point iterations actually reach a stable floating-point fixed
// point instead of drifting by representation noise.
func CeilBursts(ctx *FSPContext) error {
	if !ctx.Cfg.FixPoint {
		return nil
	}
	ctx.State.ArrivalCurve = ceilCurveBursts(ctx.State.ArrivalCurve)
	for k, v := range ctx.State.MaxDelayFrom {
		ctx.State.MaxDelayFrom[k] = ceilToPlaces(v, 15)
	}
	return nil
}
