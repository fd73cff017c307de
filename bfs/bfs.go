package bfs

import (
	"errors"
	"fmt"

	"github.com/adfeel220/saihu/core"
)

// ErrGraphNil is returned if a nil graph pointer is passed.
var ErrGraphNil = errors.New("bfs: graph is nil")

// ErrStartVertexNotFound is returned when the start ID is absent.
var ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

// ErrWeightedGraph is returned when BFS is run on a weighted graph: hop
// count only makes sense as "shortest path" when every edge costs the
// same, so weighted graphs are rejected rather than silently ignoring
// their weights.
var ErrWeightedGraph = errors.New("bfs: weighted graphs not supported")

// ErrNeighbors is returned when fetching neighbors from the graph fails.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// BFS runs breadth-first search on g starting from startID, visiting
// neighbors in the deterministic order core.Graph.NeighborIDs returns
// them.
func BFS(g *core.Graph, startID string) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}
	if g.Weighted() {
		return nil, ErrWeightedGraph
	}

	vertices := g.Vertices()
	res := &Result{
		Order:  make([]string, 0, len(vertices)),
		Depth:  map[string]int{startID: 0},
		Parent: make(map[string]string, len(vertices)),
	}

	queue := []string{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, id)

		neighbors, err := g.NeighborIDs(id)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, id, err)
		}
		for _, nbr := range neighbors {
			if _, seen := res.Depth[nbr]; seen {
				continue
			}
			res.Depth[nbr] = res.Depth[id] + 1
			res.Parent[nbr] = id
			queue = append(queue, nbr)
		}
	}

	return res, nil
}
