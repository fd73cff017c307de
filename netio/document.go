package netio

import (
	"fmt"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/netmodel"
)

// CurveDoc is the wire shape of a service or arrival curve: parallel
// Rates/Latencies arrays describe a service curve (one RateLatency segment
// per index, combined into a MaxOfRateLatencies when there is more than
// one); parallel Rates/Bursts arrays describe an arrival curve (one
// LeakyBucket segment per index, combined into a GVBR when there is more
// than one), per spec.md §6.
type CurveDoc struct {
	Latencies []string `json:"latencies,omitempty" yaml:"latencies,omitempty"`
	Bursts    []string `json:"bursts,omitempty" yaml:"bursts,omitempty"`
	Rates     []string `json:"rates" yaml:"rates"`
}

// ServerDoc is the wire shape of one netmodel.Server.
type ServerDoc struct {
	Name            string   `json:"name" yaml:"name"`
	ServiceCurve    CurveDoc `json:"service_curve" yaml:"service_curve"`
	Capacity        string   `json:"capacity" yaml:"capacity"`
	MaxPacketLength string   `json:"max_packet_length,omitempty" yaml:"max_packet_length,omitempty"`
}

// MulticastDoc is one additional named path of a multicast flow.
type MulticastDoc struct {
	Name string   `json:"name" yaml:"name"`
	Path []string `json:"path" yaml:"path"`
}

// FlowDoc is the wire shape of one netmodel.Flow.
type FlowDoc struct {
	Name            string         `json:"name" yaml:"name"`
	Path            []string       `json:"path" yaml:"path"`
	ArrivalCurve    CurveDoc       `json:"arrival_curve" yaml:"arrival_curve"`
	MaxPacketLength string         `json:"max_packet_length" yaml:"max_packet_length"`
	MinPacketLength string         `json:"min_packet_length,omitempty" yaml:"min_packet_length,omitempty"`
	Multicast       []MulticastDoc `json:"multicast,omitempty" yaml:"multicast,omitempty"`
}

// NetworkMeta is the free-form "network" object: declared default units
// (keyed "time", "data", "rate") a bare number falls back to.
type NetworkMeta struct {
	Units map[string]string `json:"units,omitempty" yaml:"units,omitempty"`
}

// Document is the full wire shape spec.md §6 names: network metadata plus
// the servers and flows arrays.
type Document struct {
	Network NetworkMeta `json:"network,omitempty" yaml:"network,omitempty"`
	Servers []ServerDoc `json:"servers" yaml:"servers"`
	Flows   []FlowDoc   `json:"flows" yaml:"flows"`
}

// scales bundles the pure-number fallback scale for each of the three unit
// kinds the document's fields use, derived once from Network.Units.
type scales struct {
	time, data, rate float64
}

func (d Document) scales() (scales, error) {
	s := scales{time: 1, data: 1, rate: 1}
	var err error
	if u, ok := d.Network.Units["time"]; ok && u != "" {
		if s.time, err = parseWithUnit("1"+u, timeUnit, 1); err != nil {
			return s, fmt.Errorf("netio: network.units.time: %w", err)
		}
	}
	if u, ok := d.Network.Units["data"]; ok && u != "" {
		if s.data, err = parseWithUnit("1"+u, dataUnit, 1); err != nil {
			return s, fmt.Errorf("netio: network.units.data: %w", err)
		}
	}
	if u, ok := d.Network.Units["rate"]; ok && u != "" {
		if s.rate, err = parseWithUnit("1"+u, rateUnit, 1); err != nil {
			return s, fmt.Errorf("netio: network.units.rate: %w", err)
		}
	}
	return s, nil
}

// ToNetwork builds and validates a netmodel.Network from the decoded
// Document.
func (d Document) ToNetwork() (*netmodel.Network, error) {
	sc, err := d.scales()
	if err != nil {
		return nil, err
	}

	servers := make([]*netmodel.Server, 0, len(d.Servers))
	for _, sd := range d.Servers {
		s, err := sd.toServer(sc)
		if err != nil {
			return nil, fmt.Errorf("netio: server %q: %w", sd.Name, err)
		}
		servers = append(servers, s)
	}

	flows := make([]*netmodel.Flow, 0, len(d.Flows))
	for _, fd := range d.Flows {
		f, err := fd.toFlow(sc)
		if err != nil {
			return nil, fmt.Errorf("netio: flow %q: %w", fd.Name, err)
		}
		flows = append(flows, f)
	}

	return netmodel.NewNetwork(servers, flows)
}

func (sd ServerDoc) toServer(sc scales) (*netmodel.Server, error) {
	service, err := sd.ServiceCurve.toServiceCurve(sc)
	if err != nil {
		return nil, err
	}

	s := &netmodel.Server{Name: sd.Name, Service: service}
	if sd.Capacity != "" {
		capacity, err := ParseRate(sd.Capacity, sc.rate)
		if err != nil {
			return nil, fmt.Errorf("capacity: %w", err)
		}
		s.Capacity = capacity
	}
	if sd.MaxPacketLength != "" {
		lmax, err := ParseData(sd.MaxPacketLength, sc.data)
		if err != nil {
			return nil, fmt.Errorf("max_packet_length: %w", err)
		}
		s.MaxPacketLength = lmax
	}
	return s, nil
}

func (fd FlowDoc) toFlow(sc scales) (*netmodel.Flow, error) {
	arrival, err := fd.ArrivalCurve.toArrivalCurve(sc)
	if err != nil {
		return nil, err
	}

	f := &netmodel.Flow{Name: fd.Name, Path: fd.Path, Arrival: arrival}
	if fd.MaxPacketLength != "" {
		v, err := ParseData(fd.MaxPacketLength, sc.data)
		if err != nil {
			return nil, fmt.Errorf("max_packet_length: %w", err)
		}
		f.MaxPacketLength = v
	}
	if fd.MinPacketLength != "" {
		v, err := ParseData(fd.MinPacketLength, sc.data)
		if err != nil {
			return nil, fmt.Errorf("min_packet_length: %w", err)
		}
		f.MinPacketLength = v
	}
	if len(fd.Multicast) > 0 {
		f.Paths = make(map[string][]string, len(fd.Multicast)+1)
		f.Paths[""] = fd.Path
		for _, m := range fd.Multicast {
			f.Paths[m.Name] = m.Path
		}
	}
	return f, nil
}

func (cd CurveDoc) toServiceCurve(sc scales) (curve.Curve, error) {
	if len(cd.Rates) == 0 {
		return nil, ErrEmptyCurve
	}
	if len(cd.Rates) != len(cd.Latencies) {
		return nil, ErrMismatchedCurveLengths
	}

	rls := make([]curve.RateLatency, len(cd.Rates))
	for i := range cd.Rates {
		rate, err := ParseRate(cd.Rates[i], sc.rate)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		latency, err := ParseTime(cd.Latencies[i], sc.time)
		if err != nil {
			return nil, fmt.Errorf("latencies[%d]: %w", i, err)
		}
		rls[i] = curve.NewRateLatency(rate, latency)
	}
	if len(rls) == 1 {
		return rls[0], nil
	}
	return curve.NewMaxOfRateLatencies(rls...), nil
}

func (cd CurveDoc) toArrivalCurve(sc scales) (curve.Curve, error) {
	if len(cd.Rates) == 0 {
		return nil, ErrEmptyCurve
	}
	if len(cd.Rates) != len(cd.Bursts) {
		return nil, ErrMismatchedCurveLengths
	}

	lbs := make([]curve.LeakyBucket, len(cd.Rates))
	for i := range cd.Rates {
		rate, err := ParseRate(cd.Rates[i], sc.rate)
		if err != nil {
			return nil, fmt.Errorf("rates[%d]: %w", i, err)
		}
		burst, err := ParseData(cd.Bursts[i], sc.data)
		if err != nil {
			return nil, fmt.Errorf("bursts[%d]: %w", i, err)
		}
		lbs[i] = curve.NewLeakyBucket(rate, burst)
	}
	if len(lbs) == 1 {
		return lbs[0], nil
	}
	return curve.NewGVBR(lbs...), nil
}
