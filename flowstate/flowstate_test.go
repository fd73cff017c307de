package flowstate_test

import (
	"testing"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/flowstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tandemFlow(t *testing.T) *flowstate.Flow {
	t.Helper()
	f, err := flowstate.NewFlow("f1", curve.NewLeakyBucket(1, 100), 1500, 64, "0",
		map[string][]string{"": {"s1", "s2", "s3"}})
	require.NoError(t, err)
	return f
}

func TestNewFlow_ValidatesPaths(t *testing.T) {
	t.Run("empty path rejected", func(t *testing.T) {
		_, err := flowstate.NewFlow("f1", curve.NoCurve{}, 1500, 64, "0", map[string][]string{"": {}})
		assert.ErrorIs(t, err, flowstate.ErrEmptyPath)
	})

	t.Run("repeated port rejected", func(t *testing.T) {
		_, err := flowstate.NewFlow("f1", curve.NoCurve{}, 1500, 64, "0",
			map[string][]string{"": {"s1", "s2", "s1"}})
		assert.ErrorIs(t, err, flowstate.ErrRepeatedPort)
	})

	t.Run("nil arrival curve defaults to NoCurve", func(t *testing.T) {
		f, err := flowstate.NewFlow("f1", nil, 1500, 64, "0", map[string][]string{"": {"s1"}})
		require.NoError(t, err)
		assert.True(t, f.SourceArrivalCurve.IsNoCurve())
	})
}

func TestFlow_GraphAndLeafPorts(t *testing.T) {
	f := tandemFlow(t)
	g := f.Graph()
	assert.True(t, g.HasEdge("s1", "s2"))
	assert.True(t, g.HasEdge("s2", "s3"))
	assert.Equal(t, []string{"s3"}, f.LeafPorts())
}

func TestFlow_ArrivalCurveAtReference(t *testing.T) {
	f := tandemFlow(t)

	t.Run("source sentinel", func(t *testing.T) {
		c, err := f.ArrivalCurveAtReference("source")
		require.NoError(t, err)
		assert.Equal(t, f.SourceArrivalCurve, c)
	})

	t.Run("unknown port before any flow state is recorded", func(t *testing.T) {
		_, err := f.ArrivalCurveAtReference("s2")
		assert.ErrorIs(t, err, flowstate.ErrCurveNotKnown)
	})

	t.Run("unknown ats curve", func(t *testing.T) {
		_, err := f.ArrivalCurveAtReference("ats:s2")
		assert.ErrorIs(t, err, flowstate.ErrAtsCurveNotKnown)
	})

	t.Run("sums multiple flow states recorded at the same port", func(t *testing.T) {
		fs1 := flowstate.NewFlowState(f)
		fs1.ArrivalCurve = curve.NewLeakyBucket(1, 100)
		fs2 := flowstate.NewFlowState(f)
		fs2.ArrivalCurve = curve.NewLeakyBucket(2, 50)
		f.RegisterFlowState("s2", fs1)
		f.RegisterFlowState("s2", fs2)

		c, err := f.ArrivalCurveAtReference("s2")
		require.NoError(t, err)
		assert.Equal(t, curve.Add(fs1.ArrivalCurve, fs2.ArrivalCurve), c)
	})

	t.Run("registered ats curve is returned", func(t *testing.T) {
		atsCurve := curve.NewLeakyBucket(5, 5)
		f.RegisterAtsCurve("s2", atsCurve)
		c, err := f.ArrivalCurveAtReference("ats:s2")
		require.NoError(t, err)
		assert.Equal(t, atsCurve, c)
	})
}

func TestFlowState_InitialInvariants(t *testing.T) {
	f := tandemFlow(t)
	fs := flowstate.NewFlowState(f)

	assert.Equal(t, 0.0, fs.MinDelayFrom["source"])
	assert.Equal(t, 0.0, fs.MaxDelayFrom["source"])
	assert.Equal(t, 0.0, fs.RtoFrom["source"])
	assert.True(t, fs.ArrivalCurve.IsNoCurve())
}

func TestFlowState_AddSufferedDelay(t *testing.T) {
	t.Run("FIFO jitter only grows RTO once already positive", func(t *testing.T) {
		f := tandemFlow(t)
		fs := flowstate.NewFlowState(f)
		fs.AddDelayFromEntry("s1")

		fs.AddSufferedDelay(5, 2, true)
		assert.Equal(t, 5.0, fs.MaxDelayFrom["source"])
		assert.Equal(t, 2.0, fs.MinDelayFrom["source"])
		assert.Equal(t, 0.0, fs.RtoFrom["source"])

		fs.AddSufferedDelay(5, 2, true)
		assert.Equal(t, 10.0, fs.MaxDelayFrom["source"])
		assert.Equal(t, 4.0, fs.MinDelayFrom["source"])
		assert.Equal(t, 0.0, fs.RtoFrom["source"])
	})

	t.Run("non-FIFO jitter grows RTO immediately", func(t *testing.T) {
		f := tandemFlow(t)
		fs := flowstate.NewFlowState(f)

		fs.AddSufferedDelay(5, 2, false)
		assert.Equal(t, 3.0, fs.RtoFrom["source"])
	})
}

func TestFlowState_Copy(t *testing.T) {
	f := tandemFlow(t)
	fs := flowstate.NewFlowState(f)
	fs.AddSufferedDelay(5, 2, false)

	cp := fs.Copy()
	cp.MaxDelayFrom["source"] = 99
	assert.NotEqual(t, fs.MaxDelayFrom["source"], cp.MaxDelayFrom["source"])
	assert.Same(t, fs.Flow, cp.Flow)
}

func TestFlowState_ChangeClock(t *testing.T) {
	t.Run("perfect clock config never worsens", func(t *testing.T) {
		f := tandemFlow(t)
		fs := flowstate.NewFlowState(f)
		fs.MaxDelayFrom["source"] = 10
		fs.ArrivalCurve = curve.NewLeakyBucket(1, 100)

		cfg := curve.ClockConfig{Perfect: true}
		fs.ChangeClock(flowstate.NewClock("TAI"), cfg)

		assert.Equal(t, 10.0, fs.MaxDelayFrom["source"])
		assert.Equal(t, curve.NewLeakyBucket(1, 100), fs.ArrivalCurve)
		assert.True(t, fs.Clock.IsTAI)
	})

	t.Run("repeated change to the same non-TAI clock is idempotent", func(t *testing.T) {
		f := tandemFlow(t)
		fs := flowstate.NewFlowState(f)
		fs.MaxDelayFrom["source"] = 10
		cfg := curve.ClockConfig{Rho: 1.1, Eta: 1, Sync: false}

		fs.ChangeClock(flowstate.NewClock("remote"), cfg)
		worsenedOnce := fs.MaxDelayFrom["source"]

		fs.ChangeClock(flowstate.NewClock("remote"), cfg)
		assert.Equal(t, worsenedOnce, fs.MaxDelayFrom["source"])
	})

	t.Run("moving to a distinct clock worsens bounds", func(t *testing.T) {
		f := tandemFlow(t)
		fs := flowstate.NewFlowState(f)
		fs.MaxDelayFrom["source"] = 10
		fs.MinDelayFrom["source"] = 10
		cfg := curve.ClockConfig{Rho: 1.1, Eta: 1, Sync: false}

		fs.ChangeClock(flowstate.NewClock("remote"), cfg)

		assert.Greater(t, fs.MaxDelayFrom["source"], 10.0)
		assert.Less(t, fs.MinDelayFrom["source"], 10.0)
	})
}
