package dfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adfeel220/saihu/core"
	"github.com/adfeel220/saihu/dfs"
)

// ringGraph builds the server graph of a three-node ring, the same
// topology CyclicFixPointDriver is exercised against: r1->r2->r3->r1.
func ringGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(true))
	_, err := g.AddEdge("r1", "r2", 0)
	assert.NoError(t, err)
	_, err = g.AddEdge("r2", "r3", 0)
	assert.NoError(t, err)
	_, err = g.AddEdge("r3", "r1", 0)
	assert.NoError(t, err)
	return g
}

func TestDetectCycles_NilGraph(t *testing.T) {
	has, cycles, err := dfs.DetectCycles(nil)
	assert.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, cycles)
}

func TestDetectCycles_FeedForwardChainHasNoCycle(t *testing.T) {
	// s1->s2->s3, the linear topology a FeedForwardDriver run requires.
	g := core.NewGraph(core.WithDirected(true))
	_, err := g.AddEdge("s1", "s2", 0)
	assert.NoError(t, err)
	_, err = g.AddEdge("s2", "s3", 0)
	assert.NoError(t, err)

	has, cycles, err := dfs.DetectCycles(g)
	assert.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, cycles)
}

func TestDetectCycles_RingTopologyReportsOneCycle(t *testing.T) {
	g := ringGraph(t)

	has, cycles, err := dfs.DetectCycles(g)
	assert.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, [][]string{{"r1", "r2", "r3", "r1"}}, cycles)
}

func TestDetectCycles_ResidualGraphAfterEdgeRemoval(t *testing.T) {
	// BaharevMfas's engine rebuilds a residual graph with one trial edge
	// removed each MILP iteration; cutting the back edge r3->r1 should
	// make the ring acyclic, same as fas.BaharevMfas expects when its
	// candidate feedback-arc set is correct.
	g := ringGraph(t)
	residual := g.Clone()
	edges := residual.Edges()
	for _, e := range edges {
		if e.From == "r3" && e.To == "r1" {
			assert.NoError(t, residual.RemoveEdge(e.ID))
		}
	}

	has, cycles, err := dfs.DetectCycles(residual)
	assert.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, cycles)
}

func TestDetectCycles_DisjointRingsInOneNetwork(t *testing.T) {
	// Two independent ring subnetworks sharing no servers: both cycles
	// must be reported, each in canonical rotation.
	g := core.NewGraph(core.WithDirected(true))
	cyc1 := []string{"a1", "a2", "a3", "a1"}
	for i := 0; i+1 < len(cyc1); i++ {
		_, err := g.AddEdge(cyc1[i], cyc1[i+1], 0)
		assert.NoError(t, err)
	}
	cyc2 := []string{"b1", "b2", "b1"}
	for i := 0; i+1 < len(cyc2); i++ {
		_, err := g.AddEdge(cyc2[i], cyc2[i+1], 0)
		assert.NoError(t, err)
	}

	has, cycles, err := dfs.DetectCycles(g)
	assert.NoError(t, err)
	assert.True(t, has)
	assert.ElementsMatch(t, [][]string{cyc1, cyc2}, cycles)
}

func TestDetectCycles_MulticastBranchGraphStaysAcyclic(t *testing.T) {
	// flowstate.Flow.Graph()'s shape for a multicast flow: one shared
	// trunk port fanning out into two disjoint branches. Two branches
	// sharing a prefix must not be mistaken for a cycle back to the fork.
	g := core.NewGraph(core.WithDirected(true))
	_, err := g.AddEdge("s0", "s1", 0)
	assert.NoError(t, err)
	_, err = g.AddEdge("s0", "s2", 0)
	assert.NoError(t, err)

	has, cycles, err := dfs.DetectCycles(g)
	assert.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, cycles)
}
