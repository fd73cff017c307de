package pipeline

import (
	"errors"
	"math"

	"github.com/adfeel220/saihu/curve"
)

// DefaultDBPSteps returns spec.md §4.3's delay-bound pipeline: FifoContention
// always runs; MohammadpourImprovement runs only when cfg.MohammadpourImprovement
// is set.
func DefaultDBPSteps() []DBPStep {
	return []DBPStep{
		FifoContention,
		MohammadpourImprovement,
	}
}

// RunDBP executes steps in order, returning the node's [dmin, dmax] bound.
func RunDBP(ctx *DBPContext, steps []DBPStep) (DBPResult, error) {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return DBPResult{}, err
		}
	}
	return ctx.Result, nil
}

// FifoContention computes dmax as the horizontal distance between the
// node's aggregate arrival curve and its (clock-worsened) service curve; a
// FIFO server never goes below zero minimum delay. A locally unstable node
// (arrival rate exceeds service rate) gets an infinite delay bound rather
// than aborting the analysis, so the driver keeps processing the rest of
// the network.
func FifoContention(ctx *DBPContext) error {
	service := curve.WorsenService(ctx.Server.Service, ctx.Cfg.Clock)
	dmax, err := curve.HDist(ctx.Aggregate, service)
	if err != nil {
		if errors.Is(err, curve.ErrLocallyUnstable) {
			ctx.Result = DBPResult{Min: 0, Max: math.Inf(1)}
			return nil
		}
		return err
	}
	ctx.Result = DBPResult{Min: 0, Max: dmax}
	return nil
}

// MohammadpourImprovement tightens dmax when the node's outgoing link
// capacity exceeds its service rate: the minimum packet present can clear
// the link at capacity rather than at the (slower) service rate, shaving
// Lmin·(1/R - 1/c) off the bound whenever that's positive.
func MohammadpourImprovement(ctx *DBPContext) error {
	if !ctx.Cfg.MohammadpourImprovement {
		return nil
	}
	rl, ok := ctx.Server.Service.(curve.RateLatency)
	if !ok || ctx.Server.Capacity <= 0 || rl.Rate <= 0 {
		return nil
	}
	improvement := ctx.Server.MaxPacketLength * (1/rl.Rate - 1/ctx.Server.Capacity)
	if improvement <= 0 {
		return nil
	}
	ctx.Result.Max -= improvement
	if ctx.Result.Max < ctx.Result.Min {
		ctx.Result.Max = ctx.Result.Min
	}
	return nil
}
