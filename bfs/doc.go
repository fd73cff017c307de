// Package bfs computes unweighted shortest paths over a core.Graph.
// fas.BaharevMfas uses it to translate a cycle found by dfs.DetectCycles
// back into a concrete chain of edge IDs: the cycle only names the
// vertices it passes through, and BFS.PathTo recovers the hop-by-hop
// route between two consecutive cycle vertices on an unweighted shadow
// of the residual graph.
package bfs
