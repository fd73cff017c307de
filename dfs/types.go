package dfs

// Vertex visitation state used by DetectCycles's DFS coloring.
const (
	White = iota // not yet visited
	Gray         // on the current recursion stack
	Black        // fully explored
)
