// Package core_test contains shared fixtures for core.Graph tests.
package core_test

import (
	"github.com/adfeel220/saihu/core"
)

// Vertex IDs used across core tests, named after the TSN topology
// shapes they stand in for (a fork feeding multicast leaves, a ring
// of servers, a residual-graph hub).
const (
	VertexEmpty = ""

	VertexFork  = "fork"
	VertexLeaf1 = "leaf1"

	VertexR1 = "r1"
	VertexR2 = "r2"

	VertexS1 = "s1"
	VertexS2 = "s2"
)

const (
	Weight0 float64 = 0
	Weight1 float64 = 1
	Weight2 float64 = 2

	NAtomicEdgeIDs = 100
)

// NewGraphFull returns a Graph configured for broad contract coverage:
// weighted (fas.BaharevMfas's edge-weighted MFAS graphs), multi-edge
// (shared hops across multicast branches), and loop-tolerant.
func NewGraphFull() *core.Graph {
	return core.NewGraph(core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
}

// ExtractEdgeIDs returns edge IDs preserving the incoming slice order,
// for comparing a graph's edge inventory against a clone's.
func ExtractEdgeIDs(edges []*core.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}

	return out
}
