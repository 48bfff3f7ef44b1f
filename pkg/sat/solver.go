package sat

import (
	"context"
	"fmt"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

type Parameters struct {
	// MaxSolutions caps the number of reported solutions; values below 2 request a single solve.
	MaxSolutions int
	// OnSolution is called for every solution, returning false stops the enumeration.
	OnSolution func(solution cp.Solution) bool
	// Decisions are the variables telling solutions apart: successive solutions differ on at least
	// one of them. Every model variable counts when empty.
	Decisions []cp.IntVar
}

type Response struct {
	Status    cp.Status
	Solutions []cp.Solution
	// Size of the pseudo-boolean instance handed to the engine
	Variables   int
	Constraints int
}

type Solver interface {
	Solve(ctx context.Context, model *cp.Model, params Parameters) (Response, error)
}

type outcome int

const (
	outcomeUnknown outcome = iota
	outcomeSatisfiable
	outcomeOptimum
	outcomeUnsatisfiable
)

// engine solves a single PB instance, minimizing its cost function when there is one.
type engine interface {
	run(ctx context.Context, pb PB) (outcome, []bool, error)
}

type pbSolver struct {
	engine engine
}

func (s *pbSolver) Solve(ctx context.Context, model *cp.Model, params Parameters) (Response, error) {
	encoding, err := Encode(model)
	if err != nil {
		return Response{Status: cp.ModelInvalid}, err
	}
	pb := encoding.Instance()

	response := Response{
		Status:      cp.Unknown,
		Variables:   pb.Variables,
		Constraints: len(pb.Constraints),
	}
	if encoding.Unsat() {
		response.Status = cp.Infeasible
		return response, nil
	}

	result, assignment, err := s.engine.run(ctx, pb)
	if err != nil {
		// An interrupted search may still hand back its best assignment so far
		if assignment == nil || ctx.Err() == nil {
			return response, err
		}
		solution, decodeErr := decodeSolution(model, encoding, assignment)
		if decodeErr != nil {
			return response, decodeErr
		}
		response.Status = cp.Feasible
		response.Solutions = append(response.Solutions, solution)
		return response, err
	}
	switch result {
	case outcomeUnknown:
		return response, nil
	case outcomeUnsatisfiable:
		response.Status = cp.Infeasible
		return response, nil
	case outcomeOptimum:
		response.Status = cp.Optimal
	case outcomeSatisfiable:
		// A satisfaction problem has no better solution to look for
		response.Status = cp.Optimal
		if model.HasObjective() {
			response.Status = cp.Feasible
		}
	}

	solution, err := decodeSolution(model, encoding, assignment)
	if err != nil {
		return response, err
	}
	response.Solutions = append(response.Solutions, solution)
	if !accept(params, solution) || params.MaxSolutions <= 1 {
		return response, nil
	}

	//** Enumerate further assignments, keeping the objective at its optimum
	if model.HasObjective() {
		if response.Status != cp.Optimal {
			return response, nil
		}
		pb.Constraints = append(pb.Constraints, encoding.CostAtMost(encoding.Cost(assignment))...)
	}
	pb.CostLits, pb.CostWeights = nil, nil
	decisions := lo.Map(params.Decisions, func(v cp.IntVar, _ int) int { return v.Index() })

	for len(response.Solutions) < params.MaxSolutions {
		if err := ctx.Err(); err != nil {
			return response, err
		}

		block, ok := encoding.Block(assignment, decisions)
		if !ok {
			break
		}
		pb.Constraints = append(pb.Constraints, block)

		result, assignment, err = s.engine.run(ctx, pb)
		if err != nil {
			// The solutions found so far stay in the response
			return response, err
		} else if result != outcomeSatisfiable && result != outcomeOptimum {
			break
		}

		solution, err := decodeSolution(model, encoding, assignment)
		if err != nil {
			return response, err
		}
		response.Solutions = append(response.Solutions, solution)
		if !accept(params, solution) {
			break
		}
	}
	return response, nil
}

func accept(params Parameters, solution cp.Solution) bool {
	return params.OnSolution == nil || params.OnSolution(solution)
}

func decodeSolution(model *cp.Model, encoding *Encoding, assignment []bool) (cp.Solution, error) {
	values := encoding.Decode(assignment)
	if err := model.Check(values); err != nil {
		return cp.Solution{}, fmt.Errorf("solver returned an assignment violating the model: %w", err)
	}
	return cp.NewSolution(model, values), nil
}
