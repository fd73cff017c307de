package result_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/lp"
	"github.com/adfeel220/saihu/netmodel"
	"github.com/adfeel220/saihu/result"
	"github.com/adfeel220/saihu/xtfa"
	"github.com/adfeel220/saihu/xtfa/pipeline"
)

func tandemNetwork(t *testing.T) *netmodel.Network {
	t.Helper()
	s1 := &netmodel.Server{Name: "s1", Service: curve.NewRateLatency(10, 1), Capacity: 10, MaxPacketLength: 1}
	s2 := &netmodel.Server{Name: "s2", Service: curve.NewRateLatency(10, 1), Capacity: 10, MaxPacketLength: 1}
	f1 := &netmodel.Flow{Name: "f1", Path: []string{"s1", "s2"}, Arrival: curve.NewLeakyBucket(1, 2)}
	net, err := netmodel.NewNetwork([]*netmodel.Server{s1, s2}, []*netmodel.Flow{f1})
	require.NoError(t, err)
	return net
}

func TestFromXTFA(t *testing.T) {
	net := tandemNetwork(t)
	report := xtfa.Report{
		Nodes: map[string]xtfa.NodeResult{
			"s1": {Delay: pipeline.DBPResult{Min: 0, Max: 1.5}},
			"s2": {Delay: pipeline.DBPResult{Min: 0, Max: 2.5}},
		},
	}

	mr, err := result.FromXTFA(net, "xtfa", report, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "xtfa", mr.Method)
	assert.InDelta(t, 1.5, mr.PerServerDelay["s1"], 1e-9)
	assert.InDelta(t, 2.5, mr.PerServerDelay["s2"], 1e-9)
	assert.InDelta(t, 4.0, mr.PerFlowDelay["f1"], 1e-9)
}

func TestFromXTFA_UnknownServer(t *testing.T) {
	net := tandemNetwork(t)
	report := xtfa.Report{Nodes: map[string]xtfa.NodeResult{
		"s1": {Delay: pipeline.DBPResult{Max: 1}},
	}}
	_, err := result.FromXTFA(net, "xtfa", report, 0)
	require.ErrorIs(t, err, result.ErrUnknownServer)
}

func TestFromTFA(t *testing.T) {
	net := tandemNetwork(t)
	sol := lp.Solution{Values: map[string]float64{
		lp.ServerDelayVar("s1"): 0.5,
		lp.ServerDelayVar("s2"): 0.75,
	}}

	mr, err := result.FromTFA(net, "tfa", sol, 5*time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mr.PerServerDelay["s1"], 1e-9)
	assert.InDelta(t, 0.75, mr.PerServerDelay["s2"], 1e-9)
	assert.InDelta(t, 1.25, mr.PerFlowDelay["f1"], 1e-9)
}

func TestFromTFA_Unsolved(t *testing.T) {
	net := tandemNetwork(t)
	sol := lp.Solution{Unsolved: true}

	mr, err := result.FromTFA(net, "tfa", sol, 0)
	require.NoError(t, err)
	assert.True(t, mr.PerFlowDelay["f1"] > 1e300)
}

func TestFromFlowOfInterest(t *testing.T) {
	sol := lp.Solution{Values: map[string]float64{
		lp.SFADelayVar("f1"): 3.25,
	}}
	mr := result.FromFlowOfInterest("sfa", "f1", lp.SFADelayVar("f1"), sol, time.Second)
	assert.Equal(t, "sfa", mr.Method)
	assert.InDelta(t, 3.25, mr.PerFlowDelay["f1"], 1e-9)
	assert.Equal(t, time.Second, mr.ExecTime)
}

func TestAggregator_MergesAcrossMethodsAndSumsExecTime(t *testing.T) {
	agg := result.NewAggregator()
	agg.Add(result.MethodResult{
		Method:         "tfa",
		PerFlowDelay:   map[string]float64{"f1": 2.0},
		PerServerDelay: map[string]float64{"s1": 1.0, "s2": 1.0},
		ExecTime:       10 * time.Millisecond,
	})
	agg.Add(result.MethodResult{
		Method:       "sfa",
		PerFlowDelay: map[string]float64{"f1": 1.5},
		ExecTime:     3 * time.Millisecond,
	})
	// Simulates a second flow-of-interest run under the same LP method.
	agg.Add(result.MethodResult{
		Method:       "sfa",
		PerFlowDelay: map[string]float64{"f2": 9.0},
		ExecTime:     4 * time.Millisecond,
	})

	rep := agg.Report()

	require.Contains(t, rep.Flows, "f1")
	assert.Equal(t, map[string]float64{"tfa": 2.0, "sfa": 1.5}, rep.Flows["f1"].ByMethod)
	assert.Equal(t, "sfa", rep.Flows["f1"].BestMethod)
	assert.InDelta(t, 1.5, rep.Flows["f1"].Best, 1e-9)

	require.Contains(t, rep.Flows, "f2")
	assert.InDelta(t, 9.0, rep.Flows["f2"].Best, 1e-9)

	require.Contains(t, rep.Servers, "s1")
	assert.Equal(t, map[string]float64{"tfa": 1.0}, rep.Servers["s1"].ByMethod)

	assert.Equal(t, 10*time.Millisecond, rep.ExecTimes["tfa"])
	assert.Equal(t, 7*time.Millisecond, rep.ExecTimes["sfa"])
}

func TestDecideMultiplier(t *testing.T) {
	cases := []struct {
		in       float64
		wantVal  float64
		wantUnit string
	}{
		{1000, 1.0, "k"},
		{0.01, 10.0, "m"},
		{0, 0, ""},
		{5, 5, ""},
		{1e30, 1e12, "E"},
		{1e-30, 1e-12, "a"},
	}
	for _, c := range cases {
		v, mul := result.DecideMultiplier(c.in)
		assert.InDelta(t, c.wantVal, v, 1e-9, "input %v", c.in)
		assert.Equal(t, c.wantUnit, mul, "input %v", c.in)
	}
}

func TestDecideMinMultiplier(t *testing.T) {
	assert.Equal(t, "m", result.DecideMinMultiplier([]float64{10, 0.1, 200}))
	assert.Equal(t, "k", result.DecideMinMultiplier([]float64{2e3, 5e3, 1e8}))
	assert.Equal(t, "", result.DecideMinMultiplier([]float64{}))
}
