// Package core_test verifies thread-safety of core.Graph under the
// concurrent access patterns that fas.BaharevMfas and xtfa's drivers
// actually exercise: parallel edge insertion while building a
// flow-induced graph, interleaved add/remove during residual-graph
// construction, and concurrent reads racing a Clone.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/adfeel220/saihu/core"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAddEdge mirrors flowstate.Flow.Graph building a
// multicast fan-out: many branches append an edge from a shared fork
// vertex concurrently, and every branch's endpoint must show up as a
// neighbor of the fork.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges())
	const branches = 200
	var wg sync.WaitGroup
	wg.Add(branches)

	for i := 0; i < branches; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("fork", fmt.Sprintf("leaf%d", id), 0)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	nbs, err := g.Neighbors("fork")
	require.NoError(t, err)
	require.Len(t, nbs, branches, "expected %d distinct multicast leaves", branches)
}

// TestConcurrentAddRemoveEdge interleaves edge insertion with removal
// the way fas.BaharevMfas's residual-graph search repeatedly clones,
// removes a trial edge, and re-checks acyclicity across MILP
// iterations: the source graph must stay consistent under concurrent
// mutation, without panicking or racing.
func TestConcurrentAddRemoveEdge(t *testing.T) {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges())
	require.NoError(t, g.AddVertex("hub"))

	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2 * rounds)

	for i := 0; i < rounds; i++ {
		go func(id int) {
			defer wg.Done()
			_, _ = g.AddEdge("hub", fmt.Sprintf("server%d", id), float64(id))
		}(i)

		go func() {
			defer wg.Done()
			for _, e := range g.Edges() {
				_ = g.RemoveEdge(e.ID)
			}
		}()
	}
	wg.Wait()
}

// TestConcurrentNeighborsAndClone validates that readers walking a
// residual graph's neighbor lists don't race against a driver thread
// taking a snapshot via Clone, the same pattern BaharevMfas relies on
// between MILP candidate evaluations.
func TestConcurrentNeighborsAndClone(t *testing.T) {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
	for i := 0; i < 50; i++ {
		_, _ = g.AddEdge("r1", "r1", float64(i))
	}

	const readers = 50
	const cloners = 20
	var wg sync.WaitGroup
	wg.Add(readers + cloners)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			nbs, err := g.Neighbors("r1")
			require.NoError(t, err)
			require.Len(t, nbs, 50)
		}()
	}

	for i := 0; i < cloners; i++ {
		go func() {
			defer wg.Done()
			_ = g.Clone()
		}()
	}

	wg.Wait()
}
