package lp

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Solver runs lpText (already in lp_solve's dialect) to completion and
// returns its raw "-S2" stdout.
type Solver interface {
	Solve(lpText string) (string, error)
}

// LPSolveSolver shells out to a local lp_solve binary. Path defaults to
// "lp_solve" (resolved via PATH) when empty.
type LPSolveSolver struct {
	Path string
}

// Solve writes lpText to a temporary file and runs "lp_solve -S2 <file>",
// returning its stdout.
func (s LPSolveSolver) Solve(lpText string) (string, error) {
	path := s.Path
	if path == "" {
		path = "lp_solve"
	}

	f, err := os.CreateTemp("", "saihu-*.lp")
	if err != nil {
		return "", fmt.Errorf("lp: creating temp file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(lpText); err != nil {
		f.Close()
		return "", fmt.Errorf("lp: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("lp: closing temp file: %w", err)
	}

	cmd := exec.Command(path, "-S2", f.Name())
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("lp: running %s: %w", path, err)
	}
	return out.String(), nil
}

// Solve renders prob and runs it through solver, returning the parsed
// Solution.
func Solve(prob *Problem, solver Solver) (Solution, error) {
	var buf bytes.Buffer
	if _, err := prob.WriteTo(&buf); err != nil {
		return Solution{}, err
	}
	out, err := solver.Solve(buf.String())
	if err != nil {
		return Solution{}, err
	}
	return ParseSolution(out), nil
}

// ParseSolution implements lp_solve's "-S2" output contract exactly as
// original_source/src/saihu/panco/lpSolvePath.py:_parse_lp_values: skip the
// first four header lines and the trailing blank line, then read "name
// value" pairs separated by runs of spaces. A stdout with no parseable
// value lines (solver reported infeasible/unbounded, or crashed and
// produced no table) is reported as Unsolved, matching the spec's "LP
// solver returned no values -> all delays of that method = +∞".
func ParseSolution(stdout string) Solution {
	lines := strings.Split(stdout, "\n")
	values := make(map[string]float64)
	if len(lines) > 5 {
		for _, line := range lines[4 : len(lines)-1] {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				continue
			}
			values[fields[0]] = v
		}
	}
	if len(values) == 0 {
		return Solution{Values: values, Unsolved: true}
	}
	return Solution{Values: values}
}

// probeProblem is the one-variable(ish) self-test LP
// original_source/src/saihu/panco/lpSolvePath.py's _is_valid_path runs
// against a solver to confirm it is usable: its unique optimal vertex is
// x=2, y=3.
func probeProblem() *Problem {
	return &Problem{
		Maximize:      true,
		ObjectiveVars: []string{"2 x", "3 y"},
		Constraints: []string{
			"x + y <= 5",
			"x <= 2",
			"y <= 3",
		},
	}
}

// ProbeSolver confirms solver is a working lp_solve by running it against
// probeProblem and checking its reported optimum is x=2, y=3, exactly the
// presence test the teacher's tooling runs before trusting a resolved
// lp_solve path. Returns ErrSolverMisbehaved if the solve succeeds but
// disagrees; a Solve error is returned wrapped as ErrSolverNotFound.
func ProbeSolver(solver Solver) error {
	sol, err := Solve(probeProblem(), solver)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSolverNotFound, err)
	}
	x, errX := sol.Value("x")
	y, errY := sol.Value("y")
	if errX != nil || errY != nil || x != 2 || y != 3 {
		return ErrSolverMisbehaved
	}
	return nil
}
