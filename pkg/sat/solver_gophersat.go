package sat

import (
	"context"
	"slices"

	"github.com/crillab/gophersat/solver"
)

type gophersatEngine struct{}

// NewGophersatSolver returns an in-process solver; no external binary is needed.
func NewGophersatSolver() Solver {
	return &pbSolver{engine: gophersatEngine{}}
}

type gophersatResult struct {
	status     solver.Status
	assignment []bool
}

// run minimizes the cost by linear descent: every improving model tightens the cost bound by one and
// the instance is solved again until it becomes unsatisfiable. The context is checked between steps;
// a step in flight runs to its end in the background and its result is discarded. When interrupted,
// the last improving model is returned with outcomeSatisfiable along with the context error.
func (gophersatEngine) run(ctx context.Context, pb PB) (outcome, []bool, error) {
	constraints := slices.Clone(pb.Constraints)
	var best []bool
	interrupted := func(err error) (outcome, []bool, error) {
		if best == nil {
			return outcomeUnknown, nil, err
		}
		return outcomeSatisfiable, best, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return interrupted(err)
		}

		results := make(chan gophersatResult, 1)
		go func(problem *solver.Problem) {
			s := solver.New(problem)
			if s.Solve() != solver.Sat {
				results <- gophersatResult{status: solver.Unsat}
				return
			}
			results <- gophersatResult{status: solver.Sat, assignment: s.Model()}
		}(solver.ParsePBConstrs(constraints))

		var result gophersatResult
		select {
		case <-ctx.Done():
			return interrupted(ctx.Err())
		case result = <-results:
		}

		if result.status != solver.Sat {
			if best == nil {
				return outcomeUnsatisfiable, nil, nil
			}
			return outcomeOptimum, best, nil
		}
		best = result.assignment
		if len(pb.CostLits) == 0 {
			return outcomeSatisfiable, best, nil
		}

		cost := costOf(pb, best)
		if cost == 0 {
			return outcomeOptimum, best, nil
		}
		constraints = append(constraints, solver.LtEq(slices.Clone(pb.CostLits), slices.Clone(pb.CostWeights), cost-1))
	}
}

func costOf(pb PB, assignment []bool) int {
	cost := 0
	for i, lit := range pb.CostLits {
		if satisfied(assignment, lit) {
			cost += pb.CostWeights[i]
		}
	}
	return cost
}
