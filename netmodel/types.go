package netmodel

import "github.com/adfeel220/saihu/curve"

// Server is a network node offering a service curve to the aggregate of
// flows traversing it, with an optional output shaper and a link capacity.
type Server struct {
	// Name uniquely identifies this Server within its Network.
	Name string

	// Service is the server's service curve: typically a RateLatency or a
	// MaxOfRateLatencies.
	Service curve.Curve

	// Shaping is an optional output shaping curve (a LeakyBucket acting as
	// a max-service bound); nil when the server has no shaper.
	Shaping curve.Curve

	// Capacity is the server's link capacity, in bits/second.
	Capacity float64

	// MaxPacketLength bounds the maximum packet length (bits) served here,
	// used by the packetization penalty; zero means "not configured".
	MaxPacketLength float64
}

// Flow is a TSN traffic flow: an arrival curve injected at the first server
// of Path and carried along Path in order. Multicast flows carry additional
// named paths in Paths; each is analyzed independently and the worst delay
// across paths is reported for the flow (spec.md §3).
type Flow struct {
	// Name uniquely identifies this Flow within its Network.
	Name string

	// Path is the primary ordered sequence of server names, no repeats.
	Path []string

	// Arrival is the flow's arrival curve, typically a single LeakyBucket
	// or a GVBR.
	Arrival curve.Curve

	// MaxPacketLength and MinPacketLength bound packet sizes (bits).
	MaxPacketLength float64
	MinPacketLength float64

	// Paths holds the named multicast paths, keyed by path name. AllPaths
	// ignores any entry under the empty-string key and takes the primary
	// path from Path.
	Paths map[string][]string
}

// AllPaths returns every path this flow must be analyzed over: the primary
// Path plus any named multicast paths in Paths.
func (f *Flow) AllPaths() map[string][]string {
	out := map[string][]string{"": f.Path}
	for name, p := range f.Paths {
		if name == "" {
			continue
		}
		out[name] = p
	}
	return out
}

// Edge identifies a directed link between two servers in the flow-induced
// graph.
type Edge struct {
	From string
	To   string
}

// Network is the canonical, read-only, validated collection of servers and
// flows, plus caches derived from flow paths: adjacency, predecessors,
// successors, and the flows traversing each server. These caches are built
// once by NewNetwork and are never recomputed during analysis (spec.md §3).
type Network struct {
	Servers []*Server
	Flows   []*Flow

	serverIndex map[string]*Server
	flowIndex   map[string]*Flow

	adjacency     map[Edge]bool
	predecessors  map[string][]string
	successors    map[string][]string
	flowsInServer map[string][]*Flow
}

// Server looks up a server by name.
func (n *Network) Server(name string) (*Server, bool) {
	s, ok := n.serverIndex[name]
	return s, ok
}

// Flow looks up a flow by name.
func (n *Network) Flow(name string) (*Flow, bool) {
	f, ok := n.flowIndex[name]
	return f, ok
}

// HasEdge reports whether some flow traverses `from` immediately before `to`.
func (n *Network) HasEdge(from, to string) bool {
	return n.adjacency[Edge{From: from, To: to}]
}

// Predecessors returns the servers with an edge into server.
func (n *Network) Predecessors(server string) []string {
	return n.predecessors[server]
}

// Successors returns the servers with an edge out of server.
func (n *Network) Successors(server string) []string {
	return n.successors[server]
}

// FlowsInServer returns the flows whose (primary or multicast) path
// traverses server.
func (n *Network) FlowsInServer(server string) []*Flow {
	return n.flowsInServer[server]
}

// Edges returns every distinct directed edge of the flow-induced graph.
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, len(n.adjacency))
	for e := range n.adjacency {
		out = append(out, e)
	}
	return out
}
