package flowstate

import "github.com/adfeel220/saihu/curve"

// Clock identifies the observation clock a FlowState's bounds are expressed
// in. IsTAI marks the absolute reference clock; it is derived once from
// Name, not set independently, matching the one special-cased clock name
// in the original model.
type Clock struct {
	Name  string
	IsTAI bool
}

// NewClock builds a Clock from its name, case-insensitively recognizing
// "tai" as the absolute clock.
func NewClock(name string) Clock {
	return Clock{Name: name, IsTAI: isTAIName(name)}
}

func isTAIName(name string) bool {
	if len(name) != 3 {
		return false
	}
	lower := [3]byte{}
	for i := 0; i < 3; i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return lower == [3]byte{'t', 'a', 'i'}
}

// Equals reports whether c and other are indistinguishable under cfg: a
// Perfect clock config collapses every clock to the same one; otherwise two
// TAI clocks always match, and any other pair matches only by name.
func (c Clock) Equals(other Clock, cfg curve.ClockConfig) bool {
	if cfg.Perfect {
		return true
	}
	if c.IsTAI && other.IsTAI {
		return true
	}
	return c.Name == other.Name
}

// Flow represents a single application's data units as they traverse the
// network: a source arrival curve, packet-length bounds, and one or more
// named paths of output-port names (the primary path under the empty-string
// key, exactly mirroring netmodel.Flow.Paths).
type Flow struct {
	Name                string
	Sources             []string
	SourceArrivalCurve   curve.Curve
	MaxPacketLength      float64
	MinPacketLength      float64
	TrafficClass         string
	Properties           map[string]string
	Paths                map[string][]string
	flowStatesAtPort     map[string][]*FlowState
	atsCurves            map[string]curve.Curve
}

// FlowState represents the stationary state of one Flow at one observation
// point: its arrival curve, observation clock, and three delay-bookkeeping
// dictionaries keyed by reference-point name ("source" always present).
type FlowState struct {
	Flow         *Flow
	AtEdge       string
	ArrivalCurve curve.Curve
	Clock        Clock
	Flags        map[string]any
	MinDelayFrom map[string]float64
	MaxDelayFrom map[string]float64
	RtoFrom      map[string]float64
}
