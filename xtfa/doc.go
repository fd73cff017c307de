// Package xtfa drives the per-node pipeline package over a flow-induced
// network graph, scheduling nodes either feed-forward (acyclic graphs) or as
// an MFAS-cut fix-point (cyclic graphs). It owns no curve algebra of its
// own: every node computation is delegated to xtfa/pipeline, and every
// structural query (successors, predecessors, flows per server) to
// netmodel.
package xtfa
