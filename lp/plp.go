package lp

import "github.com/adfeel220/saihu/netmodel"

// BuildPLP constructs the polynomial-time-instants LP for foiName's
// end-to-end delay (spec.md §4.5's PLP family): a linear-in-crossing-flows
// chain of time instants per node. See buildTimeVariableLP.
func BuildPLP(net *netmodel.Network, foiName string) (*Problem, error) {
	return buildTimeVariableLP(net, foiName, false, "plp")
}
