package netmodel

import "fmt"

// NewNetwork validates servers and flows and builds the derived caches
// (adjacency, predecessors, successors, flows-in-server). The returned
// Network is never mutated afterward; analyzers consume it read-only.
func NewNetwork(servers []*Server, flows []*Flow) (*Network, error) {
	n := &Network{
		Servers:       servers,
		Flows:         flows,
		serverIndex:   make(map[string]*Server, len(servers)),
		flowIndex:     make(map[string]*Flow, len(flows)),
		adjacency:     make(map[Edge]bool),
		predecessors:  make(map[string][]string),
		successors:    make(map[string][]string),
		flowsInServer: make(map[string][]*Flow),
	}

	for _, s := range servers {
		if _, dup := n.serverIndex[s.Name]; dup {
			return nil, fmt.Errorf("%w: %w: server %q", ErrInvalidNetwork, ErrDuplicateName, s.Name)
		}
		if s.Service == nil {
			return nil, fmt.Errorf("%w: %w: server %q", ErrInvalidNetwork, ErrMissingServiceCurve, s.Name)
		}
		n.serverIndex[s.Name] = s
	}

	for _, f := range flows {
		if _, dup := n.flowIndex[f.Name]; dup {
			return nil, fmt.Errorf("%w: %w: flow %q", ErrInvalidNetwork, ErrDuplicateName, f.Name)
		}
		if f.Arrival == nil {
			return nil, fmt.Errorf("%w: %w: flow %q", ErrInvalidNetwork, ErrMissingArrivalCurve, f.Name)
		}
		if f.MinPacketLength < 0 || f.MaxPacketLength < 0 {
			return nil, fmt.Errorf("%w: %w: flow %q", ErrInvalidNetwork, ErrNegativePacketLength, f.Name)
		}
		n.flowIndex[f.Name] = f

		for name, path := range f.AllPaths() {
			if err := n.validateAndIndexPath(f, name, path); err != nil {
				return nil, err
			}
		}
	}

	return n, nil
}

func (n *Network) validateAndIndexPath(f *Flow, pathName string, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: %w: flow %q path %q", ErrInvalidNetwork, ErrEmptyPath, f.Name, pathName)
	}

	seen := make(map[string]bool, len(path))
	for _, server := range path {
		if _, ok := n.serverIndex[server]; !ok {
			return fmt.Errorf("%w: %w: flow %q path %q references %q", ErrInvalidNetwork, ErrUnknownServer, f.Name, pathName, server)
		}
		if seen[server] {
			return fmt.Errorf("%w: %w: flow %q path %q repeats %q", ErrInvalidNetwork, ErrRepeatedServerInPath, f.Name, pathName, server)
		}
		seen[server] = true

		if !containsFlow(n.flowsInServer[server], f) {
			n.flowsInServer[server] = append(n.flowsInServer[server], f)
		}
	}

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		edge := Edge{From: from, To: to}
		if !n.adjacency[edge] {
			n.adjacency[edge] = true
			n.successors[from] = append(n.successors[from], to)
			n.predecessors[to] = append(n.predecessors[to], from)
		}
	}

	return nil
}

func containsFlow(flows []*Flow, target *Flow) bool {
	for _, f := range flows {
		if f == target {
			return true
		}
	}
	return false
}
