package lp

import "github.com/adfeel220/saihu/netmodel"

// BuildELP constructs the exponential-time-instants LP for foiName's
// end-to-end delay (spec.md §4.5's ELP family): the same per-node
// construction as BuildPLP, but with exponentially many (capped) time
// instants per node instead of one per crossing flow. See
// buildTimeVariableLP.
func BuildELP(net *netmodel.Network, foiName string) (*Problem, error) {
	return buildTimeVariableLP(net, foiName, true, "elp")
}
