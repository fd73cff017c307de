// Package netmodel is the canonical in-memory representation of a network
// under analysis: servers with service/shaping curves, flows with arrival
// curves and paths, and the adjacency/predecessor/successor/flows-in-server
// tables derived from flow paths.
//
// What:
//
//   - Server: name, service curve, optional shaping curve, link capacity.
//   - Flow: name, path (ordered server names), arrival curve, packet length
//     bounds, optional named multicast paths.
//   - Network: the validated, read-only collection of servers and flows,
//     plus caches built once at construction time (NewNetwork) and never
//     invalidated during analysis, matching spec.md §3's lifecycle rule.
//
// Why:
//
//   - Every analyzer in this module (xTFA pipelines, LP constructors)
//     consumes a *Network read-only; centralizing validation here means
//     every analyzer can assume a Network it was handed is well-formed.
//
// Errors:
//
//   - ErrInvalidNetwork wraps the specific InvalidNetwork cause: unknown
//     server in a path, a repeated server in one path, a negative packet
//     length, or a missing service/arrival curve.
package netmodel
