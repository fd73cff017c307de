// Package netio is a thin adapter decoding already-parsed JSON or YAML
// network descriptions (spec.md §6's schema: network/servers/flows) into
// netmodel.Network values, plus a minimal WOPANet-XML reader sufficient to
// round-trip the fields netmodel consumes. It does not implement a general
// network-description file format, report writer, or WOPANet XML writer —
// those remain out of scope per spec.md/SPEC_FULL.md's Non-goals.
package netio
