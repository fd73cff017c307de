package fas

import "errors"

var (
	// ErrGraphNil indicates a nil graph was passed to a solver.
	ErrGraphNil = errors.New("fas: graph is nil")

	// ErrUndirectedGraph indicates a solver was given an undirected graph.
	ErrUndirectedGraph = errors.New("fas: graph must be directed")

	// ErrNegativeCost indicates an edge carries a negative cost.
	ErrNegativeCost = errors.New("fas: edge cost must be non-negative")
)
