package xtfa

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/adfeel220/saihu/flowstate"
	"github.com/adfeel220/saihu/netmodel"
	"github.com/adfeel220/saihu/saihulog"
	"github.com/adfeel220/saihu/xtfa/pipeline"
)

// FeedForwardDriver schedules one sweep-until-done pass of the three
// per-node pipelines over an acyclic flow-induced graph. Workers bounds how
// many ready nodes may run concurrently within a sweep; 0 or 1 runs
// sequentially.
type FeedForwardDriver struct {
	Network *netmodel.Network
	Flows   map[pipeline.FlowKey]*flowstate.Flow
	Cfg     pipeline.Config
	Steps   Steps
	Workers int
}

// Run schedules every server in Network until none remain unfinished, or
// returns ErrDeadlock if a sweep makes no progress.
func (d FeedForwardDriver) Run() (Report, error) {
	e := newFFEngine(d)
	return e.run()
}

// ffEngine carries the mutable scheduling state of one FeedForwardDriver
// run: per-server readiness counters, accumulated incoming flow states, and
// results. A dedicated engine struct (rather than closures over Run's
// locals) keeps this state inspectable and the scheduling loop testable in
// isolation from pipeline execution.
type ffEngine struct {
	driver FeedForwardDriver

	status    map[string]nodeStatus
	remaining map[string]int
	incoming  map[string][]*flowstate.FlowState
	results   map[string]NodeResult
}

func newFFEngine(d FeedForwardDriver) *ffEngine {
	e := &ffEngine{
		driver:    d,
		status:    make(map[string]nodeStatus),
		remaining: make(map[string]int),
		incoming:  make(map[string][]*flowstate.FlowState),
		results:   make(map[string]NodeResult),
	}
	for _, s := range d.Network.Servers {
		preds := d.Network.Predecessors(s.Name)
		e.remaining[s.Name] = len(preds)
		e.status[s.Name] = statusPending
	}
	return e
}

func (e *ffEngine) unfinishedNames() []string {
	var out []string
	for name, st := range e.status {
		if st != statusDone {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (e *ffEngine) readyNames(unfinished []string) []string {
	var out []string
	for _, name := range unfinished {
		if e.remaining[name] == 0 {
			out = append(out, name)
		}
	}
	return out
}

func (e *ffEngine) run() (Report, error) {
	for {
		unfinished := e.unfinishedNames()
		if len(unfinished) == 0 {
			break
		}
		ready := e.readyNames(unfinished)
		if len(ready) == 0 {
			return Report{}, fmt.Errorf("%w: %v", ErrDeadlock, unfinished)
		}

		progressed := e.runSweep(ready)
		if !progressed {
			return Report{}, fmt.Errorf("%w: %v", ErrDeadlock, ready)
		}
	}
	return Report{Nodes: e.results}, nil
}

// runSweep attempts every node in ready, sequentially or over a bounded
// worker pool, and reports whether at least one made it to statusDone.
func (e *ffEngine) runSweep(ready []string) bool {
	type outcome struct {
		name     string
		result   NodeResult
		ok       bool
		postpone bool
	}
	outcomes := make([]outcome, len(ready))

	workers := e.driver.Workers
	if workers <= 1 {
		for i, name := range ready {
			res, ok, postpone := e.processNode(name)
			outcomes[i] = outcome{name: name, result: res, ok: ok, postpone: postpone}
		}
	} else {
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for i, name := range ready {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, name string) {
				defer wg.Done()
				defer func() { <-sem }()
				res, ok, postpone := e.processNode(name)
				outcomes[i] = outcome{name: name, result: res, ok: ok, postpone: postpone}
			}(i, name)
		}
		wg.Wait()
	}

	progressed := false
	for _, o := range outcomes {
		if o.postpone {
			e.status[o.name] = statusPostponed
			saihulog.Logger().WithField("server", o.name).Debug("xtfa: node postponed, curve not yet known")
			continue
		}
		if !o.ok {
			continue
		}
		e.status[o.name] = statusDone
		e.results[o.name] = o.result
		progressed = true
		e.propagate(o.name, o.result.Outgoing)
	}
	return progressed
}

// processNode runs the three pipelines for one server against its
// currently-accumulated incoming flow states. ok is false only on a hard
// error unrelated to postponement.
func (e *ffEngine) processNode(name string) (NodeResult, bool, bool) {
	server, ok := e.driver.Network.Server(name)
	if !ok {
		return NodeResult{}, false, false
	}

	acpCtx := &pipeline.ACPContext{
		Server:  server,
		Network: e.driver.Network,
		Flows:   e.driver.Flows,
		Cfg:     e.driver.Cfg,
		States:  append([]*flowstate.FlowState(nil), e.incoming[name]...),
	}
	acpResult, err := pipeline.RunACP(acpCtx, e.driver.Steps.ACP)
	if isPostpone(err) {
		return NodeResult{}, false, true
	}
	if err != nil {
		return NodeResult{}, false, false
	}

	dbpCtx := &pipeline.DBPContext{Server: server, Cfg: e.driver.Cfg, Aggregate: acpResult.Aggregate}
	delay, err := pipeline.RunDBP(dbpCtx, e.driver.Steps.DBP)
	if isPostpone(err) {
		return NodeResult{}, false, true
	}
	if err != nil {
		return NodeResult{}, false, false
	}

	outgoing := make([]*flowstate.FlowState, 0, len(acpResult.States))
	for _, fs := range acpResult.States {
		out := fs.Copy()
		fspCtx := &pipeline.FSPContext{Server: server, Cfg: e.driver.Cfg, Delay: delay, State: out, AtEdge: name}
		if err := pipeline.RunFSP(fspCtx, e.driver.Steps.FSP); err != nil {
			if isPostpone(err) {
				return NodeResult{}, false, true
			}
			return NodeResult{}, false, false
		}
		out.AtEdge = name
		outgoing = append(outgoing, out)
		fl := out.Flow
		if fl != nil {
			fl.RegisterFlowState(name, out)
		}
	}

	return NodeResult{Aggregate: acpResult, Delay: delay, Outgoing: outgoing}, true, false
}

func isPostpone(err error) bool {
	return errors.Is(err, pipeline.ErrCurveNotKnown) ||
		errors.Is(err, flowstate.ErrCurveNotKnown) ||
		errors.Is(err, flowstate.ErrAtsCurveNotKnown)
}

// propagate appends a copy of each outgoing flow state onto every successor
// edge and decrements that successor's remaining-predecessor counter.
func (e *ffEngine) propagate(name string, outgoing []*flowstate.FlowState) {
	for _, succ := range e.driver.Network.Successors(name) {
		for _, fs := range outgoing {
			e.incoming[succ] = append(e.incoming[succ], fs.Copy())
		}
		e.remaining[succ]--
	}
}
