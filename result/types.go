package result

import "time"

// MethodResult is one analysis method's output over some subset of a
// network: per-flow end-to-end delays, per-server delays, and how long the
// method took. xtfa.FeedForwardDriver/CyclicFixPointDriver naturally
// produce every flow and server in one Report; lp's constructors produce
// one flow of interest (and, for TFA/TFA++, every server) per call, so
// Aggregator.Add is designed to be called once per xtfa run but possibly
// many times per LP method (once per flow of interest), accumulating into
// the same Report.
type MethodResult struct {
	// Method names the analysis method: "tfa", "tfa++", "sfa", "plp",
	// "elp", or "xtfa".
	Method string

	// PerFlowDelay maps flow name to its end-to-end delay bound in
	// seconds for this method. +Inf marks an unsolved/unknown bound.
	PerFlowDelay map[string]float64

	// PerServerDelay maps server name to its delay bound in seconds for
	// this method.
	PerServerDelay map[string]float64

	// ExecTime is how long this method's computation took.
	ExecTime time.Duration
}

// FlowReport is one flow's aggregated cross-method view.
type FlowReport struct {
	// ByMethod maps method name to that method's end-to-end delay bound.
	ByMethod map[string]float64

	// Best is the minimum delay bound across every method that analyzed
	// this flow.
	Best float64

	// BestMethod names the method that achieved Best.
	BestMethod string
}

// ServerReport is one server's aggregated cross-method view.
type ServerReport struct {
	ByMethod map[string]float64
}

// Report is the aggregator's output: spec.md §4.6's "per flow, per-method
// end-to-end delay and the best across methods; per server, per-method
// delay; per tool/method, execution time."
type Report struct {
	Flows     map[string]FlowReport
	Servers   map[string]ServerReport
	ExecTimes map[string]time.Duration
}
