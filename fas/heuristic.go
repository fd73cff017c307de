package fas

import "github.com/adfeel220/saihu/core"

// TopologicalSortHeuristic assigns vertices an arbitrary linear order (the
// graph's own sorted Vertices()) and returns every edge that runs backward
// in that order. Linear time, non-optimal — spec.md §4.2's heuristic FAS.
type TopologicalSortHeuristic struct{}

// GetFAS implements Solver.
func (TopologicalSortHeuristic) GetFAS(g *core.Graph) (EdgeSet, error) {
	if err := validateDirected(g); err != nil {
		return nil, err
	}

	order := g.Vertices()
	index := make(map[string]int, len(order))
	for i, v := range order {
		index[v] = i
	}

	fas := make(EdgeSet)
	for _, e := range g.Edges() {
		if index[e.From] > index[e.To] {
			fas[e.ID] = e
		}
	}
	return fas, nil
}
