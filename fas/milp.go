package fas

import (
	"fmt"

	"github.com/adfeel220/saihu/matrix"
	"gonum.org/v1/gonum/optimize"
)

// MILPSolver abstracts the cycle-cover minimization Baharev's algorithm
// drives: given the cover matrix (row i, column j set iff edge j belongs to
// cycle i), non-negative edge costs, and an optional warm-start decision
// vector, return a 0/1 selection covering every row at minimum cost.
// Spec.md §4.2: "any backend satisfying this contract suffices."
type MILPSolver interface {
	Solve(cover *matrix.Dense, costs []float64, warmStart []int) ([]int, error)
}

// DefaultMILPSolver solves the cover problem's continuous relaxation with
// gonum/optimize (a quadratic penalty for unmet rows, box-clamped to
// [0,1]), rounds the result, and repairs any row the rounding left uncovered
// by greedily adding its cheapest column. It does not guarantee a globally
// cost-optimal integer cover the way an external MILP backend would; callers
// needing certified optimality should supply their own MILPSolver.
type DefaultMILPSolver struct{}

// Solve implements MILPSolver.
func (DefaultMILPSolver) Solve(cover *matrix.Dense, costs []float64, warmStart []int) ([]int, error) {
	m := len(costs)
	if m == 0 {
		return nil, nil
	}
	rows := cover.Rows()

	init := make([]float64, m)
	for j := range init {
		if j < len(warmStart) && warmStart[j] == 1 {
			init[j] = 1
		} else {
			init[j] = 0.25
		}
	}

	var totalCost float64
	for _, c := range costs {
		totalCost += c
	}
	penalty := 10*totalCost + 10

	objective := func(y []float64) float64 {
		total := 0.0
		for j, c := range costs {
			total += c * clamp01(y[j])
		}
		for i := 0; i < rows; i++ {
			var rowSum float64
			for j := 0; j < m; j++ {
				a, _ := cover.At(i, j)
				rowSum += a * clamp01(y[j])
			}
			if deficit := 1 - rowSum; deficit > 0 {
				total += penalty * deficit * deficit
			}
		}
		return total
	}

	problem := optimize.Problem{Func: objective}
	result, err := optimize.Minimize(problem, init, nil, &optimize.NelderMead{})
	if result == nil {
		return nil, fmt.Errorf("fas: milp relaxation: %w", err)
	}

	decision := make([]int, m)
	for j, v := range result.X {
		if clamp01(v) >= 0.5 {
			decision[j] = 1
		}
	}

	repairCover(cover, costs, decision)
	return decision, nil
}

// repairCover greedily sets decision[j]=1 for the cheapest column covering
// any row left unsatisfied, guaranteeing the returned vector is a valid
// cover of every row in cover.
func repairCover(cover *matrix.Dense, costs []float64, decision []int) {
	m := len(costs)
	rows := cover.Rows()
	for i := 0; i < rows; i++ {
		covered := false
		for j := 0; j < m; j++ {
			a, _ := cover.At(i, j)
			if a != 0 && decision[j] == 1 {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		bestJ, bestCost := -1, 0.0
		for j := 0; j < m; j++ {
			a, _ := cover.At(i, j)
			if a == 0 {
				continue
			}
			if bestJ == -1 || costs[j] < bestCost {
				bestJ, bestCost = j, costs[j]
			}
		}
		if bestJ >= 0 {
			decision[bestJ] = 1
		}
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
