package fas

import "github.com/adfeel220/saihu/core"

// EdgeSet is a feedback arc set: the edges, keyed by Edge.ID, whose removal
// makes the graph acyclic.
type EdgeSet map[string]*core.Edge

// Contains reports whether e (matched by ID) is a member of the set.
func (s EdgeSet) Contains(e *core.Edge) bool {
	_, ok := s[e.ID]
	return ok
}

// Solver computes a feedback arc set for a directed graph.
type Solver interface {
	GetFAS(g *core.Graph) (EdgeSet, error)
}

// edgeCost returns the cost of e: its Weight on a weighted graph, or the
// spec's default cost of 1 on an unweighted graph (where Weight is always 0).
func edgeCost(g *core.Graph, e *core.Edge) float64 {
	if !g.Weighted() {
		return 1
	}
	return e.Weight
}

// validateDirected rejects a nil or undirected graph; every fas.Solver
// requires a directed input (spec.md §4.2's "directed graph with
// non-negative edge costs").
func validateDirected(g *core.Graph) error {
	if g == nil {
		return ErrGraphNil
	}
	if !g.Directed() {
		return ErrUndirectedGraph
	}
	for _, e := range g.Edges() {
		if edgeCost(g, e) < 0 {
			return ErrNegativeCost
		}
	}
	return nil
}
