package flowstate

import (
	"fmt"

	"github.com/adfeel220/saihu/curve"
)

// sourceKey is the reserved reference-point name for the output of the
// sending application, before the source end-system's output port.
const sourceKey = "source"

// NewFlowState returns a FlowState for flow, initialized with a NoCurve
// arrival curve, the "H" (local, non-TAI) clock, and all three delay
// dictionaries holding only the mandatory "source" entry at zero.
func NewFlowState(flow *Flow) *FlowState {
	return &FlowState{
		Flow:         flow,
		ArrivalCurve: curve.NoCurve{},
		Clock:        NewClock("H"),
		Flags:        make(map[string]any),
		MinDelayFrom: map[string]float64{sourceKey: 0},
		MaxDelayFrom: map[string]float64{sourceKey: 0},
		RtoFrom:      map[string]float64{sourceKey: 0},
	}
}

// AddDelayFromEntry registers a new reference point, initializing its
// min/max delay bounds to zero.
func (fs *FlowState) AddDelayFromEntry(fromEntryName string) {
	fs.MinDelayFrom[fromEntryName] = 0
	fs.MaxDelayFrom[fromEntryName] = 0
}

// AddRtoFromEntry registers a new reference point for RTO bookkeeping,
// initialized to zero.
func (fs *FlowState) AddRtoFromEntry(fromEntryName string) {
	fs.RtoFrom[fromEntryName] = 0
}

// AddSufferedDelay records that the flow suffered an additional variable
// delay of [minDelay, maxDelay] since every reference point currently
// tracked. It does not touch ArrivalCurve; callers must update that
// separately. jitterFIFO controls RTO growth: when false, every reference
// point's RTO grows by (maxDelay-minDelay) regardless of its current value;
// when true (the common case), RTO only grows for reference points that
// already have a strictly positive RTO — a purely FIFO system remains FIFO.
func (fs *FlowState) AddSufferedDelay(maxDelay, minDelay float64, jitterFIFO bool) {
	for k := range fs.MinDelayFrom {
		fs.MinDelayFrom[k] += minDelay
	}
	for k := range fs.MaxDelayFrom {
		fs.MaxDelayFrom[k] += maxDelay
	}
	for k := range fs.RtoFrom {
		if fs.RtoFrom[k] > 0 || !jitterFIFO {
			fs.RtoFrom[k] += maxDelay - minDelay
		}
	}
}

// Copy returns a deep copy of fs: the Flow reference is shared, every map
// is independently allocated.
func (fs *FlowState) Copy() *FlowState {
	cp := &FlowState{
		Flow:         fs.Flow,
		AtEdge:       fs.AtEdge,
		ArrivalCurve: fs.ArrivalCurve,
		Clock:        fs.Clock,
		Flags:        make(map[string]any, len(fs.Flags)),
		MinDelayFrom: make(map[string]float64, len(fs.MinDelayFrom)),
		MaxDelayFrom: make(map[string]float64, len(fs.MaxDelayFrom)),
		RtoFrom:      make(map[string]float64, len(fs.RtoFrom)),
	}
	for k, v := range fs.Flags {
		cp.Flags[k] = v
	}
	for k, v := range fs.MinDelayFrom {
		cp.MinDelayFrom[k] = v
	}
	for k, v := range fs.MaxDelayFrom {
		cp.MaxDelayFrom[k] = v
	}
	for k, v := range fs.RtoFrom {
		cp.RtoFrom[k] = v
	}
	return cp
}

// ChangeClock switches fs's observation clock to newClock. If the old and
// new clocks are indistinguishable under cfg (see Clock.Equals — always
// true under a Perfect config), this is a no-op beyond recording the new
// clock, so repeated calls with the same non-TAI clock never re-worsen.
// Otherwise the arrival curve, every min/max delay bound, and every
// already-positive RTO entry are worsened per the clock model.
func (fs *FlowState) ChangeClock(newClock Clock, cfg curve.ClockConfig) {
	if fs.Clock.Equals(newClock, cfg) {
		fs.Clock = newClock
		return
	}
	fs.Clock = newClock
	fs.ArrivalCurve = curve.WorsenArrival(fs.ArrivalCurve, cfg)
	for k, v := range fs.MinDelayFrom {
		fs.MinDelayFrom[k] = curve.WorsenDelayLowerBound(v, cfg)
	}
	for k, v := range fs.MaxDelayFrom {
		fs.MaxDelayFrom[k] = curve.WorsenDelayUpperBound(v, cfg)
	}
	for k, v := range fs.RtoFrom {
		if v > 0 {
			fs.RtoFrom[k] = curve.WorsenDelayUpperBound(v, cfg)
		}
	}
}

// InternalArrivalCurve returns ArrivalCurve, worsened by the "internal-penalty"
// flag's Curve if present (a burst penalty accumulated internally, not yet
// folded into ArrivalCurve itself).
func (fs *FlowState) InternalArrivalCurve() curve.Curve {
	penalty, ok := fs.Flags["internal-penalty"].(curve.Curve)
	if !ok {
		return fs.ArrivalCurve
	}
	return curve.Add(fs.ArrivalCurve, penalty)
}

// String renders fs for diagnostics: flow name, observation point, and
// delay/RTO bounds measured from "source".
func (fs *FlowState) String() string {
	return fmt.Sprintf("%s @ %s Dmax=%.6e Dmin=%.6e RTO=%.6e (from source)",
		fs.Flow.Name, fs.AtEdge, fs.MaxDelayFrom[sourceKey], fs.MinDelayFrom[sourceKey], fs.RtoFrom[sourceKey])
}
