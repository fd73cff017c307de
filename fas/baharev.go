package fas

import (
	"fmt"
	"sort"

	"github.com/adfeel220/saihu/bfs"
	"github.com/adfeel220/saihu/core"
	"github.com/adfeel220/saihu/dfs"
	"github.com/adfeel220/saihu/matrix"
)

// BaharevMfas is an exact minimum feedback arc set solver implementing the
// MILP-with-lazy-constraints method of Baharev, Schichl and Neumaier: rather
// than enumerating every cycle up front, it alternates between solving the
// cover problem over the cycles discovered so far and hunting the residual
// graph (original graph minus the current candidate FAS) for one more
// violated cycle to add as a new constraint row. The loop terminates once no
// cycle survives removal of the candidate set, at which point the candidate
// is both feasible and optimal with respect to the rows generated.
type BaharevMfas struct {
	// Solver resolves the cover problem at each iteration. Defaults to
	// DefaultMILPSolver when nil.
	Solver MILPSolver

	// MaxIterations bounds the lazy-constraint loop. Defaults to 10000 when
	// zero or negative; exceeding it returns ErrIterationLimit rather than
	// looping forever on a pathological instance.
	MaxIterations int
}

// ErrIterationLimit indicates BaharevMfas exhausted MaxIterations without
// converging.
var ErrIterationLimit = fmt.Errorf("fas: baharev: exceeded iteration limit")

// engine carries the mutable state of one GetFAS run: the indexed edge
// list, the accumulated cover-matrix rows, and the solver and iteration cap used to
// drive the lazy-constraint loop. Modeled as a dedicated struct rather than
// closures, in the style of the package's branch-and-bound solvers.
type engine struct {
	graph     *core.Graph
	edgeList  []*core.Edge
	edgeIndex map[string]int // edge.ID -> column index
	costs     []float64
	rows      [][]float64 // accumulated cover-matrix rows, one per discovered cycle
	seenCycle map[string]struct{}
	maxIter   int
	solver    MILPSolver
}

// GetFAS implements Solver.
func (b BaharevMfas) GetFAS(g *core.Graph) (EdgeSet, error) {
	if err := validateDirected(g); err != nil {
		return nil, err
	}

	solver := b.Solver
	if solver == nil {
		solver = DefaultMILPSolver{}
	}
	maxIter := b.MaxIterations
	if maxIter <= 0 {
		maxIter = 10000
	}

	e := newEngine(g, solver, maxIter)
	decision, err := e.run()
	if err != nil {
		return nil, err
	}

	fas := make(EdgeSet)
	for j, edge := range e.edgeList {
		if decision[j] == 1 {
			fas[edge.ID] = edge
		}
	}
	return fas, nil
}

func newEngine(g *core.Graph, solver MILPSolver, maxIter int) *engine {
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	index := make(map[string]int, len(edges))
	costs := make([]float64, len(edges))
	for j, ed := range edges {
		index[ed.ID] = j
		costs[j] = edgeCost(g, ed)
	}

	return &engine{
		graph:     g,
		edgeList:  edges,
		edgeIndex: index,
		costs:     costs,
		seenCycle: make(map[string]struct{}),
		maxIter:   maxIter,
		solver:    solver,
	}
}

// run drives the lazy-constraint loop to convergence, returning a 0/1
// decision vector over e.edgeList.
func (e *engine) run() ([]int, error) {
	decision := make([]int, len(e.edgeList))

	if err := e.extendFromCycles(e.graph); err != nil {
		return nil, err
	}
	if len(e.rows) == 0 {
		// Already acyclic; nothing to cover.
		return decision, nil
	}

	for iter := 0; iter < e.maxIter; iter++ {
		cover, err := e.materializeCover()
		if err != nil {
			return nil, err
		}
		sol, err := e.solver.Solve(cover, e.costs, decision)
		if err != nil {
			return nil, fmt.Errorf("fas: baharev: cover solve: %w", err)
		}
		decision = sol

		residual := e.residualGraph(decision)
		added, err := e.extendFromCycles(residual)
		if err != nil {
			return nil, err
		}
		if !added {
			return decision, nil
		}
	}
	return nil, ErrIterationLimit
}

// residualGraph returns a clone of the original graph with every edge
// selected by decision removed, matching Baharev's MILP-lazy-constraints
// residual-graph check: does the candidate FAS actually kill every cycle?
func (e *engine) residualGraph(decision []int) *core.Graph {
	residual := e.graph.Clone()
	for j, ed := range e.edgeList {
		if decision[j] == 1 {
			_ = residual.RemoveEdge(ed.ID)
		}
	}
	return residual
}

// extendFromCycles finds cycles in g via dfs.DetectCycles, converts any not
// already covered into new cover-matrix rows via shortest-back-path
// reconstruction, and reports whether at least one new row was added.
func (e *engine) extendFromCycles(g *core.Graph) (bool, error) {
	found, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		return false, fmt.Errorf("fas: baharev: cycle detection: %w", err)
	}
	if !found {
		return false, nil
	}

	added := false
	for _, cyc := range cycles {
		row, sig, err := e.cycleToRow(g, cyc)
		if err != nil {
			return false, err
		}
		if _, dup := e.seenCycle[sig]; dup {
			continue
		}
		e.seenCycle[sig] = struct{}{}
		e.rows = append(e.rows, row)
		added = true
	}
	return added, nil
}

// cycleToRow converts a closed vertex cycle [v0, v1, ..., v0] (as produced
// by dfs.DetectCycles) into a cover-matrix row over e.edgeList: one entry
// per consecutive pair, resolved to a concrete edge ID via an unweighted
// shortest-path search on an edge-preserving shadow of g. The shadow exists
// because bfs.BFS refuses weighted graphs, and the edge-selection itself
// only needs connectivity, not cost.
func (e *engine) cycleToRow(g *core.Graph, cyc []string) ([]float64, string, error) {
	shadow, edgeOf := e.unweightedShadow(g)

	row := make([]float64, len(e.edgeList))
	var sig []string
	for i := 0; i+1 < len(cyc); i++ {
		from, to := cyc[i], cyc[i+1]
		result, err := bfs.BFS(shadow, from)
		if err != nil {
			return nil, "", fmt.Errorf("fas: baharev: shortest back-path: %w", err)
		}
		path, err := result.PathTo(to)
		if err != nil {
			return nil, "", fmt.Errorf("fas: baharev: no path %s->%s in residual graph: %w", from, to, err)
		}
		for k := 0; k+1 < len(path); k++ {
			eid, ok := edgeOf[edgeKey(path[k], path[k+1])]
			if !ok {
				return nil, "", fmt.Errorf("fas: baharev: missing edge for %s->%s", path[k], path[k+1])
			}
			row[e.edgeIndex[eid]] = 1
			sig = append(sig, eid)
		}
	}
	sort.Strings(sig)
	return row, fmt.Sprint(sig), nil
}

// unweightedShadow builds a same-vertex, unweighted mirror of g so
// bfs.BFS (which rejects weighted graphs) can compute hop-count shortest
// paths; it returns the shadow plus a from->to edge-key to original-edge-ID
// lookup so the discovered path can be translated back to e.edgeList
// columns.
func (e *engine) unweightedShadow(g *core.Graph) (*core.Graph, map[string]string) {
	shadow := core.NewGraph(core.WithDirected(g.Directed()))
	edgeOf := make(map[string]string)
	for _, v := range g.Vertices() {
		_ = shadow.AddVertex(v)
	}
	for _, ed := range g.Edges() {
		key := edgeKey(ed.From, ed.To)
		if _, exists := edgeOf[key]; !exists {
			edgeOf[key] = ed.ID
			_, _ = shadow.AddEdge(ed.From, ed.To, 0)
		}
	}
	return shadow, edgeOf
}

func edgeKey(from, to string) string {
	return from + "\x00" + to
}

// materializeCover snapshots e.rows into a fresh matrix.Dense, since Dense
// has no dynamic row-append and a new snapshot must be taken before every
// solver call as rows accumulate.
func (e *engine) materializeCover() (*matrix.Dense, error) {
	cover, err := matrix.NewDense(len(e.rows), len(e.edgeList))
	if err != nil {
		return nil, fmt.Errorf("fas: baharev: materialize cover: %w", err)
	}
	for i, row := range e.rows {
		for j, v := range row {
			if v != 0 {
				if err := cover.Set(i, j, v); err != nil {
					return nil, fmt.Errorf("fas: baharev: materialize cover: %w", err)
				}
			}
		}
	}
	return cover, nil
}
