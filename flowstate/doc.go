// Package flowstate models a Flow (a single application's data units
// traversing the network, possibly along several multicast paths) and the
// per-observation-point FlowState snapshots recorded as that flow is
// analyzed hop by hop.
//
// A Flow owns a flow-induced graph: vertices are output-port names, edges
// are the hops an output port's traffic can take. Unlike the canonical
// netmodel.Network, this graph exists purely to collect FlowState snapshots
// (keyed by the output port they were recorded at) and the occasional
// "ats-curve" parked directly on a node, so a later reference-point lookup
// can recover what was known at any point already visited.
package flowstate
