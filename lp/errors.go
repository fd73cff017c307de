package lp

import "errors"

var (
	// ErrNoServiceCurve indicates a server on a flow's path has no usable
	// RateLatency (or MaxOfRateLatencies) service curve to linearize.
	ErrNoServiceCurve = errors.New("lp: server has no rate-latency service curve")

	// ErrNoArrivalCurve indicates a flow has no usable LeakyBucket (or
	// GVBR) arrival curve to linearize.
	ErrNoArrivalCurve = errors.New("lp: flow has no leaky-bucket arrival curve")

	// ErrEmptyPath indicates a flow's path (or named multicast branch) is
	// empty, so it contributes no constraints.
	ErrEmptyPath = errors.New("lp: flow path is empty")

	// ErrUnsolved is returned by Solution.Value when ParseSolution found no
	// value lines in the solver output and marked the Solution Unsolved.
	ErrUnsolved = errors.New("lp: problem is infeasible or unbounded")

	// ErrSolverNotFound is returned by ProbeSolver when no lp_solve binary
	// can be located on PATH or at the given path.
	ErrSolverNotFound = errors.New("lp: lp_solve binary not found")

	// ErrSolverMisbehaved is returned by ProbeSolver when lp_solve runs
	// but does not solve the self-test problem to the expected values.
	ErrSolverMisbehaved = errors.New("lp: lp_solve did not solve the self-test problem correctly")

	// ErrUnknownVariable is returned when a caller asks Solution for a
	// variable name the solve never produced a value for.
	ErrUnknownVariable = errors.New("lp: variable not present in solution")
)
