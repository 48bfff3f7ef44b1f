package model

import (
	"context"
	"fmt"
	"time"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/limaJavier/floorplan/pkg/sat"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type standardPlanner struct {
	solver sat.Solver
	logger *zap.Logger
}

func NewPlanner(solver sat.Solver, logger *zap.Logger) Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &standardPlanner{
		solver: solver,
		logger: logger,
	}
}

// Constraint functions, applied in order
var constraints = []func(state *constraintState) error{
	roomAdjacencyConstraints,
	sunRoomConstraints,
	entranceConstraints,
	corridorConnectivityConstraints,
	circulationConnectivityConstraints,
	openAreaConstraints,
	symmetryConstraints,
	equalAreaConstraints,
	goldenRatioConstraints,
	elevatorDistanceConstraints,
	hardDistanceConstraints,
}

func (planner *standardPlanner) Build(ctx context.Context, building Building, options Options) (Result, error) {
	start := time.Now()

	//** Validate input
	if err := building.Validate(); err != nil {
		return Result{}, err
	}
	apartmentSpecs, sharedSpecs, err := building.Specs()
	if err != nil {
		return Result{}, err
	}

	//** Build domain: background, apartment rooms, then building-wide rooms
	domain := NewDomain()
	for _, spec := range append(lo.Flatten(apartmentSpecs), sharedSpecs...) {
		if _, err := domain.Add(spec.Label); err != nil {
			return Result{}, err
		}
	}

	//** Define rooms
	b := cp.NewCpModelBuilder()
	grid := NewGrid(b, building.Width, building.Length, domain.Size())
	define := func(spec RoomSpec) *Room {
		return DefineRoom(b, spec, grid, domain.Index(spec.Label))
	}

	shared := lo.Map(sharedSpecs, func(spec RoomSpec, _ int) *Room { return define(spec) })
	apartments := lo.Map(apartmentSpecs, func(specs []RoomSpec, _ int) []*Room {
		return lo.Map(specs, func(spec RoomSpec, _ int) *Room { return define(spec) })
	})

	adjacency := Adjacency(IsAdjacent)
	if building.ExactAdjacency {
		adjacency = IsEdgeAdjacent
	}

	state := &constraintState{
		builder:    b,
		building:   building,
		grid:       grid,
		domain:     domain,
		evaluator:  newPredicateEvaluator(nil),
		adjacency:  adjacency,
		logger:     planner.logger,
		apartments: apartments,
		hallways:   shared[:len(shared)-2],
		elevator:   shared[len(shared)-2],
		stairwell:  shared[len(shared)-1],
	}

	//** Apply constraints
	for _, constraint := range constraints {
		if err := constraint(state); err != nil {
			return Result{}, err
		}
	}

	//** Objective
	terms := objectiveTerms(state)
	b.Maximize(terms.Expr())

	model, err := b.Model()
	if err != nil {
		return Result{}, fmt.Errorf("cannot build floor model: %w", err)
	}
	planner.logger.Info("floor model built",
		zap.Int("rows", grid.Rows),
		zap.Int("cols", grid.Cols),
		zap.Int("labels", domain.Size()),
		zap.Int("variables", b.NumVars()),
		zap.Int("constraints", b.NumConstraints()),
	)
	planner.logger.Debug("cell domain", zap.Strings("labels", lo.Map(domain.Labels(), func(label Label, _ int) string {
		return label.String()
	})))

	//** Solve
	// Layouts differ by their cells; every other variable follows from them
	response, err := planner.solver.Solve(ctx, model, sat.Parameters{
		MaxSolutions: max(options.MaxSolutions, 1),
		Decisions:    grid.Cells(),
	})
	result := Result{
		Status:        response.Status,
		Variables:     b.NumVars(),
		Constraints:   b.NumConstraints(),
		PBVariables:   response.Variables,
		PBConstraints: response.Constraints,
	}
	if err != nil && len(response.Solutions) == 0 && ctx.Err() == nil {
		return result, fmt.Errorf("cannot solve floor model: %w", err)
	} else if err != nil {
		// Layouts found before the interruption or the failing step are still reported
		planner.logger.Warn("search stopped early", zap.Error(err), zap.Int("layouts", len(response.Solutions)))
	}

	rooms := append(lo.Flatten(apartments), shared...)
	for _, solution := range response.Solutions {
		result.Layouts = append(result.Layouts, decodeLayout(solution, grid, domain, rooms, terms))
	}
	result.Duration = time.Since(start)

	planner.logger.Info("floor model solved",
		zap.Stringer("status", result.Status),
		zap.Int("layouts", len(result.Layouts)),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (planner *standardPlanner) Verify(layout Layout, building Building) bool {
	if err := verify(layout, building); err != nil {
		planner.logger.Warn("layout rejected", zap.Error(err))
		return false
	}
	return true
}
