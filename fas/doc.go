// Package fas computes a Feedback Arc Set for a directed graph: a set of
// edges whose removal makes the graph acyclic.
//
// Two implementations are provided:
//
//   - Heuristic: an arbitrary-order linear-time pass that returns every edge
//     going "backward" relative to that order. Fast, non-optimal.
//   - Baharev: an exact solver based on Baharev, Schichl and Neumaier's MILP
//     with lazy cycle constraints, alternating between an MILP cover solve
//     and cycle discovery on the residual graph until the residual graph
//     left by the candidate set yields no new cycle. No lower or upper
//     bound on the optimum is tracked.
//
// Both operate on a *core.Graph; edge costs default to 1 via Edge.Weight.
package fas
