package lp_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfeel220/saihu/curve"
	"github.com/adfeel220/saihu/lp"
	"github.com/adfeel220/saihu/netmodel"
)

// fakeSolver evaluates a trivially-small closed set of lp_solve problems by
// table lookup rather than invoking a real binary, so these tests do not
// depend on lp_solve being installed.
type fakeSolver struct {
	stdout string
	err    error
}

func (f fakeSolver) Solve(string) (string, error) {
	return f.stdout, f.err
}

func lpSolveStdout(values map[string]float64) string {
	var sb strings.Builder
	sb.WriteString("header line 1\nheader line 2\nheader line 3\nheader line 4\n")
	for name, v := range values {
		fmt.Fprintf(&sb, "%s %g\n", name, v)
	}
	sb.WriteString("\n")
	return sb.String()
}

func TestParseSolution(t *testing.T) {
	out := lpSolveStdout(map[string]float64{"x": 2, "y": 3})
	sol := lp.ParseSolution(out)
	require.False(t, sol.Unsolved)
	x, err := sol.Value("x")
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	_, err = sol.Value("z")
	assert.Error(t, err)
}

func TestParseSolution_Unsolved(t *testing.T) {
	sol := lp.ParseSolution("This problem is infeasible\n")
	assert.True(t, sol.Unsolved)
	_, err := sol.Value("x")
	assert.ErrorIs(t, err, lp.ErrUnsolved)
}

func TestProbeSolver(t *testing.T) {
	ok := fakeSolver{stdout: lpSolveStdout(map[string]float64{"x": 2, "y": 3})}
	assert.NoError(t, lp.ProbeSolver(ok))

	bad := fakeSolver{stdout: lpSolveStdout(map[string]float64{"x": 1, "y": 1})}
	assert.ErrorIs(t, lp.ProbeSolver(bad), lp.ErrSolverMisbehaved)
}

func tandemNetwork(t *testing.T) *netmodel.Network {
	t.Helper()
	s0 := &netmodel.Server{Name: "s0", Service: curve.NewRateLatency(4, 1), Capacity: 4}
	s1 := &netmodel.Server{Name: "s1", Service: curve.NewRateLatency(4, 1), Capacity: 4}
	f0 := &netmodel.Flow{Name: "f0", Path: []string{"s0", "s1"}, Arrival: curve.NewLeakyBucket(1, 1)}
	f1 := &netmodel.Flow{Name: "f1", Path: []string{"s0"}, Arrival: curve.NewLeakyBucket(1, 1)}
	f2 := &netmodel.Flow{Name: "f2", Path: []string{"s1"}, Arrival: curve.NewLeakyBucket(1, 1)}
	net, err := netmodel.NewNetwork([]*netmodel.Server{s0, s1}, []*netmodel.Flow{f0, f1, f2})
	require.NoError(t, err)
	return net
}

func TestBuildTFA_Tandem(t *testing.T) {
	net := tandemNetwork(t)
	prob, err := lp.BuildTFA(net, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"d_s0", "d_s1"}, prob.ObjectiveVars)
	assert.True(t, prob.Maximize)
	assert.NotEmpty(t, prob.Constraints)

	var sb strings.Builder
	_, err = prob.WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "max:")
	assert.Contains(t, sb.String(), "d_s0")
}

func TestBuildTFAPlusPlus_AddsShapingConstraints(t *testing.T) {
	net := tandemNetwork(t)
	base, err := lp.BuildTFA(net, false)
	require.NoError(t, err)
	shaped, err := lp.BuildTFAPlusPlus(net)
	require.NoError(t, err)
	assert.Greater(t, len(shaped.Constraints), len(base.Constraints))
}

func TestBuildSFA(t *testing.T) {
	net := tandemNetwork(t)
	prob, err := lp.BuildSFA(net, "f0")
	require.NoError(t, err)
	assert.Equal(t, []string{"delay_f0"}, prob.ObjectiveVars)
	assert.NotEmpty(t, prob.Constraints)
}

func TestBuildSFA_UnknownFlow(t *testing.T) {
	net := tandemNetwork(t)
	_, err := lp.BuildSFA(net, "nope")
	assert.Error(t, err)
}

func TestBuildPLPAndELP(t *testing.T) {
	net := tandemNetwork(t)
	plpProb, err := lp.BuildPLP(net, "f0")
	require.NoError(t, err)
	assert.Equal(t, []string{"delay_plp_f0"}, plpProb.ObjectiveVars)

	elpProb, err := lp.BuildELP(net, "f0")
	require.NoError(t, err)
	assert.Equal(t, []string{"delay_elp_f0"}, elpProb.ObjectiveVars)
}

func TestBuildTFA_MissingServiceCurve(t *testing.T) {
	s0 := &netmodel.Server{Name: "s0", Service: curve.NoCurve{}}
	f0 := &netmodel.Flow{Name: "f0", Path: []string{"s0"}, Arrival: curve.NewLeakyBucket(1, 1)}
	net, err := netmodel.NewNetwork([]*netmodel.Server{s0}, []*netmodel.Flow{f0})
	require.NoError(t, err)

	_, err = lp.BuildTFA(net, false)
	assert.ErrorIs(t, err, lp.ErrNoServiceCurve)
}
