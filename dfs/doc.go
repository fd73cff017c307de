// Package dfs detects cycles in a core.Graph via depth-first search with
// three-color marking and back-edge detection. It exists for
// fas.BaharevMfas, which needs to know whether its residual graph (the
// flow-induced server graph with the current trial edge-removal applied)
// is acyclic yet, and if not, which cycles remain to be broken.
//
// DetectCycles reports the cycles closed by back edges during one DFS pass
// (not every simple cycle of the graph), honoring per-edge Directed
// flags when mixed-edge mode is enabled, and produces a canonical minimal
// rotation of each cycle via Booth's algorithm so the same cycle is never
// reported twice under a different starting vertex.
package dfs
