package netio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/netmodel"
)

// wopanetRoot is a minimal WOPANet-dialect XML document: stations and
// switches are both servers, links name the from/to adjacency (fromPort/
// toPort are accepted but unused, since netmodel has no port concept), and
// flows carry a source plus one or more named target paths, matching
// original_source/src/netscript/netdef.py's PhysicalNet.read three-pass
// structure (parse_network is metadata-only and has no netmodel
// equivalent, so it is accepted and ignored here).
type wopanetRoot struct {
	XMLName  xml.Name        `xml:"network"`
	Stations []wopanetNode   `xml:"station"`
	Switches []wopanetNode   `xml:"switch"`
	Links    []wopanetLink   `xml:"link"`
	Flows    []wopanetFlow   `xml:"flow"`
}

type wopanetNode struct {
	Name            string `xml:"name,attr"`
	ServiceRate     string `xml:"service-rate,attr"`
	ServiceLatency  string `xml:"service-latency,attr"`
	Capacity        string `xml:"capacity,attr"`
	MaxPacketLength string `xml:"max-packet-length,attr"`
}

type wopanetLink struct {
	From     string `xml:"from,attr"`
	To       string `xml:"to,attr"`
	FromPort string `xml:"fromPort,attr"`
	ToPort   string `xml:"toPort,attr"`
}

type wopanetFlow struct {
	Name            string         `xml:"name,attr"`
	Source          string         `xml:"source,attr"`
	Rate            string         `xml:"rate,attr"`
	Burst           string         `xml:"burst,attr"`
	MaxPacketLength string         `xml:"max-packet-length,attr"`
	MinPacketLength string         `xml:"min-packet-length,attr"`
	Targets         []wopanetPath  `xml:"target"`
}

type wopanetPath struct {
	Name  string          `xml:"name,attr"`
	Steps []wopanetPathStep `xml:"path"`
}

type wopanetPathStep struct {
	Node string `xml:"node,attr"`
}

// DecodeWOPANet reads a WOPANet-dialect XML network description and
// returns the netmodel.Network it describes. Every station/switch becomes
// a netmodel.Server with a RateLatency service curve from its
// service-rate/service-latency attributes; every flow becomes a
// netmodel.Flow with a LeakyBucket arrival curve from its rate/burst
// attributes, one path per <target>, the first being the primary path.
func DecodeWOPANet(r io.Reader) (*netmodel.Network, error) {
	var doc wopanetRoot
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("netio: decoding WOPANet XML: %w", err)
	}

	servers := make([]*netmodel.Server, 0, len(doc.Stations)+len(doc.Switches))
	for _, n := range append(append([]wopanetNode{}, doc.Stations...), doc.Switches...) {
		s, err := n.toServer()
		if err != nil {
			return nil, fmt.Errorf("netio: node %q: %w", n.Name, err)
		}
		servers = append(servers, s)
	}

	flows := make([]*netmodel.Flow, 0, len(doc.Flows))
	for _, fl := range doc.Flows {
		f, err := fl.toFlow()
		if err != nil {
			return nil, fmt.Errorf("netio: flow %q: %w", fl.Name, err)
		}
		flows = append(flows, f)
	}

	return netmodel.NewNetwork(servers, flows)
}

func (n wopanetNode) toServer() (*netmodel.Server, error) {
	s := &netmodel.Server{Name: n.Name}
	if n.ServiceRate != "" || n.ServiceLatency != "" {
		rate, err := ParseRate(n.ServiceRate, 1)
		if err != nil {
			return nil, fmt.Errorf("service-rate: %w", err)
		}
		latency, err := ParseTime(n.ServiceLatency, 1)
		if err != nil {
			return nil, fmt.Errorf("service-latency: %w", err)
		}
		s.Service = curve.NewRateLatency(rate, latency)
	}
	if n.Capacity != "" {
		capacity, err := ParseRate(n.Capacity, 1)
		if err != nil {
			return nil, fmt.Errorf("capacity: %w", err)
		}
		s.Capacity = capacity
	}
	if n.MaxPacketLength != "" {
		lmax, err := ParseData(n.MaxPacketLength, 1)
		if err != nil {
			return nil, fmt.Errorf("max-packet-length: %w", err)
		}
		s.MaxPacketLength = lmax
	}
	return s, nil
}

func (fl wopanetFlow) toFlow() (*netmodel.Flow, error) {
	if len(fl.Targets) == 0 {
		return nil, fmt.Errorf("flow has no <target> path")
	}

	rate, err := ParseRate(fl.Rate, 1)
	if err != nil {
		return nil, fmt.Errorf("rate: %w", err)
	}
	burst, err := ParseData(fl.Burst, 1)
	if err != nil {
		return nil, fmt.Errorf("burst: %w", err)
	}

	f := &netmodel.Flow{
		Name:    fl.Name,
		Arrival: curve.NewLeakyBucket(rate, burst),
	}
	if fl.MaxPacketLength != "" {
		v, err := ParseData(fl.MaxPacketLength, 1)
		if err != nil {
			return nil, fmt.Errorf("max-packet-length: %w", err)
		}
		f.MaxPacketLength = v
	}
	if fl.MinPacketLength != "" {
		v, err := ParseData(fl.MinPacketLength, 1)
		if err != nil {
			return nil, fmt.Errorf("min-packet-length: %w", err)
		}
		f.MinPacketLength = v
	}

	paths := make(map[string][]string, len(fl.Targets))
	for i, t := range fl.Targets {
		name := t.Name
		if i == 0 {
			name = ""
		}
		path := make([]string, 0, len(t.Steps)+1)
		path = append(path, fl.Source)
		for _, step := range t.Steps {
			path = append(path, step.Node)
		}
		paths[name] = path
	}
	f.Path = paths[""]
	if len(paths) > 1 {
		f.Paths = paths
	}

	return f, nil
}
