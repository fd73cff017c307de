package pipeline

import (
	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/flowstate"
	"github.com/adfeel220/saihu/netmodel"
)

// Partition groups the FlowStates that arrived on one incoming edge,
// together with that edge's shaping curve once InputPortShaping has run.
type Partition struct {
	// Edge is the name of the predecessor server this partition arrived
	// from; the reserved value "" marks flow states originating locally
	// (LocalSourceApplications).
	Edge    string
	Shaping curve.Curve
	States  []*flowstate.FlowState
}

// Config selects, at install time, which optional pipeline steps run.
// Required steps (InitialPerInputPortAggregator, LocalSourceApplications,
// FifoContention, DeltaDDeconvolution, AddSufferedDelay) always run; these
// flags gate the steps spec.md marks optional or conditional.
type Config struct {
	// StartFromInfinite is carried in Config, but no pipeline step or driver
	// reads it: the aggregate is always seeded from the sum of the states'
	// arrival curves.
	StartFromInfinite bool

	// Packetizer worsens InputPortShaping's per-edge shaping curve by the
	// link's packetization penalty.
	Packetizer bool

	// MohammadpourImprovement enables the DBP's optional delay-bound
	// tightening for servers whose outgoing link capacity exceeds the
	// service rate.
	MohammadpourImprovement bool

	// ReferenceTagging adds the current node's name as a new delay-
	// dictionary key on every outgoing flow state in the FSP.
	ReferenceTagging bool

	// ConstantPropagationDelay, when > 0, is added uniformly to both the
	// min and max delay of every outgoing flow state (a fixed link delay).
	ConstantPropagationDelay float64

	// FixPoint enables CeilBursts, required by the cyclic fix-point driver
	// so that floating-point iteration actually converges.
	FixPoint bool

	// PropagationMode selects DeltaDDeconvolution's propagation-mode
	// formula (α_in ⊘ BoundedDelay(dmax-dmin)) instead of the default
	// from-source mode.
	PropagationMode bool

	Clock curve.ClockConfig
}

// FlowKey identifies one analyzed path of a (possibly multicast) flow: Path
// is "" for the primary path, or the named branch for a multicast path.
type FlowKey struct {
	Name string
	Path string
}

// ACPContext is the mutable state threaded through the aggregate-computation
// pipeline for one node.
type ACPContext struct {
	Server  *netmodel.Server
	Network *netmodel.Network
	// Flows resolves a netmodel flow name + path branch to the
	// flowstate.Flow built for it by the driver (one per FlowKey, built
	// once up front and shared across every node on that path).
	Flows      map[FlowKey]*flowstate.Flow
	Cfg        Config
	Partitions []*Partition
	// States is the flattened, order-preserving view of every partition's
	// FlowStates; ACP steps are free to mutate individual FlowStates
	// in place, reorder/replace States, and re-derive Partitions.
	States []*flowstate.FlowState
}

// ACPStep mutates ctx, possibly returning ErrCurveNotKnown to request a
// postpone.
type ACPStep func(ctx *ACPContext) error

// ACPResult is the ACP's output: the aggregate curve at the queuing
// subsystem's input, plus the (possibly modified) flow-state list.
type ACPResult struct {
	Aggregate curve.Curve
	States    []*flowstate.FlowState
}

// DBPResult is the DBP's output for one node: a delay bound [dmin, dmax].
type DBPResult struct {
	Min float64
	Max float64
}

// DBPStep computes or adjusts a DBPResult given the node's aggregate curve.
type DBPStep func(ctx *DBPContext) error

// DBPContext is the mutable state threaded through the delay-bound
// pipeline.
type DBPContext struct {
	Server    *netmodel.Server
	Cfg       Config
	Aggregate curve.Curve
	Result    DBPResult
}

// FSPContext is the mutable state threaded through the flow-state update
// pipeline for one outgoing FlowState.
type FSPContext struct {
	Server  *netmodel.Server
	Cfg     Config
	Delay   DBPResult
	State   *flowstate.FlowState
	AtEdge  string // the outgoing edge this state is being propagated onto
}

// FSPStep mutates ctx.State in place.
type FSPStep func(ctx *FSPContext) error
