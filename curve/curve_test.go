package curve_test

import (
	"testing"

	"github.com/adfeel220/saihu/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentities(t *testing.T) {
	t.Parallel()

	lb := curve.NewLeakyBucket(2, 3)

	assert.True(t, curve.Conv(lb, curve.NoCurve{}).IsNoCurve())
	assert.Equal(t, lb, curve.Conv(lb, curve.InfiniteCurve{}))
	assert.Equal(t, lb, curve.Add(lb, curve.NoCurve{}))
}

func TestConvCommutative(t *testing.T) {
	t.Parallel()

	a := curve.NewLeakyBucket(2, 3)
	b := curve.NewLeakyBucket(4, 1)

	ab := curve.Conv(a, b)
	ba := curve.Conv(b, a)
	for _, tt := range []float64{0, 0.5, 1, 2, 5} {
		assert.InDelta(t, ab.Value(tt), ba.Value(tt), 1e-9)
	}
}

func TestAddCommutative(t *testing.T) {
	t.Parallel()

	a := curve.NewLeakyBucket(2, 3)
	b := curve.NewLeakyBucket(4, 1)

	assert.Equal(t, curve.Add(a, b), curve.Add(b, a))
}

// S5 — Curve algebra sanity: LB(2,3)⊗LB(4,1) = GVBR with two segments
// {LB(4,1), LB(2,3)} active at intersection abscissa 1.0.
func TestConv_LeakyBucketPair_S5(t *testing.T) {
	t.Parallel()

	a := curve.NewLeakyBucket(2, 3)
	b := curve.NewLeakyBucket(4, 1)

	result := curve.Conv(a, b)
	g, ok := result.(curve.GVBR)
	require.True(t, ok, "expected a GVBR result, got %T", result)

	require.Len(t, g.Segments, 2)
	assert.Equal(t, curve.NewLeakyBucket(4, 1), g.Segments[0])
	assert.Equal(t, curve.NewLeakyBucket(2, 3), g.Segments[1])
	require.Len(t, g.Breakpoints, 1)
	assert.InDelta(t, 1.0, g.Breakpoints[0], 1e-9)
}

// Property 3: for LB(rho,sigma) and RL(R,T) with rho<R, LB%RL = T + sigma/R.
func TestHDist_LeakyBucketRateLatency_Property3(t *testing.T) {
	t.Parallel()

	lb := curve.NewLeakyBucket(1, 2)
	rl := curve.NewRateLatency(4, 1)

	d, err := curve.HDist(lb, rl)
	require.NoError(t, err)
	assert.InDelta(t, 1.0+2.0/4.0, d, 1e-9)
}

func TestHDist_Unstable(t *testing.T) {
	t.Parallel()

	lb := curve.NewLeakyBucket(5, 1)
	rl := curve.NewRateLatency(4, 1)

	_, err := curve.HDist(lb, rl)
	assert.ErrorIs(t, err, curve.ErrLocallyUnstable)
}

// S6 — GVBR vs RL delay: GVBR([(8,1),(4,3)]) vs RL(5,2): delay = 2 + 3/5 = 2.6.
func TestHDist_GVBRvsRL_S6(t *testing.T) {
	t.Parallel()

	g := curve.NewGVBR(curve.NewLeakyBucket(8, 1), curve.NewLeakyBucket(4, 3))
	rl := curve.NewRateLatency(5, 2)

	d, err := curve.HDist(g, rl)
	require.NoError(t, err)
	assert.InDelta(t, 2.6, d, 1e-9)
}

func TestGVBR_CanonicalizationIdempotent(t *testing.T) {
	t.Parallel()

	g := curve.NewGVBR(curve.NewLeakyBucket(8, 1), curve.NewLeakyBucket(4, 3), curve.NewLeakyBucket(6, 2))
	g2 := curve.NewGVBR(g.Segments...)

	assert.Equal(t, g.Segments, g2.Segments)
	assert.Equal(t, g.Breakpoints, g2.Breakpoints)
}

func TestGVBR_DroppedDominatedSegment(t *testing.T) {
	t.Parallel()

	// LB(1,1) dominates LB(2,2) everywhere (smaller rate, smaller burst).
	g := curve.NewGVBR(curve.NewLeakyBucket(1, 1), curve.NewLeakyBucket(2, 2))
	require.Len(t, g.Segments, 1)
	assert.Equal(t, curve.NewLeakyBucket(1, 1), g.Segments[0])
}

func TestDeconv_LeakyBucketBoundedDelay(t *testing.T) {
	t.Parallel()

	lb := curve.NewLeakyBucket(2, 3)
	bd := curve.NewBoundedDelay(1)

	result := curve.Deconv(lb, bd)
	got, ok := result.(curve.LeakyBucket)
	require.True(t, ok)
	assert.Equal(t, curve.NewLeakyBucket(2, 3+2*1), got)
}

func TestHDist_LeakyBucketBoundedDelay(t *testing.T) {
	t.Parallel()

	lb := curve.NewLeakyBucket(2, 3)
	bd := curve.NewBoundedDelay(4)

	d, err := curve.HDist(lb, bd)
	require.NoError(t, err)
	assert.Equal(t, 4.0, d)
}

func TestWorsenArrival_Perfect_Identity(t *testing.T) {
	t.Parallel()

	cfg := curve.DefaultClockConfig()
	cfg.Perfect = true
	lb := curve.NewLeakyBucket(2, 3)

	assert.Equal(t, curve.Curve(lb), curve.WorsenArrival(lb, cfg))
}

func TestWorsenArrival_Async_WorsensRateAndBurst(t *testing.T) {
	t.Parallel()

	cfg := curve.DefaultClockConfig()
	lb := curve.NewLeakyBucket(2, 3)

	w := curve.WorsenArrival(lb, cfg)
	wlb, ok := w.(curve.LeakyBucket)
	require.True(t, ok)
	assert.Greater(t, wlb.Rate, lb.Rate)
	assert.Greater(t, wlb.Burst, lb.Burst)
}

func TestMaxOfRateLatencies_DomainOrder(t *testing.T) {
	t.Parallel()

	m := curve.NewMaxOfRateLatencies(curve.NewRateLatency(2, 1), curve.NewRateLatency(4, 3))
	require.Len(t, m.Segments, 2)
	assert.Less(t, m.Segments[0].Latency, m.Segments[1].Latency)
	assert.Less(t, m.Segments[0].Rate, m.Segments[1].Rate)
}
