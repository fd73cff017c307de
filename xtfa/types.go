package xtfa

import (
	"github.com/adfeel220/saihu/flowstate"
	"github.com/adfeel220/saihu/xtfa/pipeline"
)

// nodeStatus tracks one server's progress through a feed-forward sweep.
// Readiness itself is tracked separately by ffEngine.remaining (a
// predecessor countdown), since a node can flip between postponed and
// ready again within the same sweep set without its remaining count
// changing.
type nodeStatus int

const (
	statusPending nodeStatus = iota
	statusPostponed
	statusDone
)

// Steps bundles the three pipelines run at every node; callers needing
// non-default steps (e.g. a network with a regulator at some node) build
// their own slices and pass them here instead of calling DefaultSteps.
type Steps struct {
	ACP []pipeline.ACPStep
	DBP []pipeline.DBPStep
	FSP []pipeline.FSPStep
}

// DefaultSteps returns the steps pipeline.Default{ACP,DBP,FSP}Steps
// install for a plain node, the configuration every FeedForwardDriver uses
// unless given an explicit Steps.
func DefaultSteps() Steps {
	return Steps{
		ACP: pipeline.DefaultACPSteps(),
		DBP: pipeline.DefaultDBPSteps(),
		FSP: pipeline.DefaultFSPSteps(),
	}
}

// NodeResult is one server's outcome from a feed-forward sweep: its
// aggregate input curve, delay bound, and the flow states it propagated
// onward.
type NodeResult struct {
	Aggregate pipeline.ACPResult
	Delay     pipeline.DBPResult
	Outgoing  []*flowstate.FlowState
}

// Report is the feed-forward driver's output: every server's result, keyed
// by name.
type Report struct {
	Nodes map[string]NodeResult
}
