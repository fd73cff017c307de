// Package matrix provides a small dense float64 matrix abstraction used as
// coefficient storage for the fas package's cycle cover matrix (one row per
// discovered cycle, one column per graph edge), built by BaharevMfas and
// read by DefaultMILPSolver.
//
// The package intentionally only covers what that caller needs: bounds
// checked element access and cloning. It does not implement graph-to-matrix
// conversions, linear-algebra decompositions, or statistics; nothing in this
// module's specification needs an eigendecomposition or an all-pairs
// shortest path over a dense weight matrix.
package matrix
