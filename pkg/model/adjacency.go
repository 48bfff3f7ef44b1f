package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// EnforceRoomAdjacency requires, for every rule of the room, one cell of the room's band to hold a
// label that fulfills the rule. A rule without any candidate label makes the model infeasible.
func EnforceRoomAdjacency(b *cp.Builder, room *Room, grid *Grid, domain *Domain, evaluator predicateEvaluator, logger *zap.Logger) {
	generator := newPermutationGenerator(grid.Rows, grid.Cols, domain.Size())

	for _, req := range evaluator.Requirements(room.Label) {
		permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
			func(permutation []int) bool {
				candidate := permutation[2]

				return candidate == -1 ||

					// Actual predicate
					(candidate != room.Index && evaluator.Satisfies(domain.Label(candidate), room.Label, req))
			},
		})

		if len(permutations) == 0 {
			logger.Warn("no label can fulfill adjacency rule",
				zap.Stringer("room", room.Label),
				zap.Stringer("requires", req.category),
			)
		}
		b.AddBoolOr(touching(b, room, grid, permutations)...)
	}
}

// EnforceEntrance requires one of the given apartment rooms to touch a building hallway.
func EnforceEntrance(b *cp.Builder, rooms []*Room, hallways []*Room, grid *Grid) {
	indices := lo.Map(hallways, func(hallway *Room, _ int) int { return hallway.Index })
	generator := newPermutationGenerator(grid.Rows, grid.Cols, lo.Max(indices)+1)
	permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
		func(permutation []int) bool {
			return permutation[2] == -1 || lo.Contains(indices, permutation[2])
		},
	})

	options := []cp.BoolVar{}
	for _, room := range rooms {
		options = append(options, touching(b, room, grid, permutations)...)
	}
	b.AddBoolOr(options...)
}

// touching returns one literal per (row, column, candidate) permutation, true when the cell is on the
// room's band and holds the candidate.
func touching(b *cp.Builder, room *Room, grid *Grid, permutations [][3]int) []cp.BoolVar {
	band := Band(b, room, grid)
	return lo.Map(permutations, func(permutation [3]int, _ int) cp.BoolVar {
		x, y, candidate := permutation[0], permutation[1], permutation[2]
		return And(b, band[x][y], grid.Is(b, x, y, candidate))
	})
}

// EnforceOpenArea requires one room of the apartment to lie on one of the enabled building edges.
// It adds nothing when no edge is enabled.
func EnforceOpenArea(b *cp.Builder, apartment []*Room, edges []Edge, grid *Grid) {
	if len(edges) == 0 {
		return
	}
	options := []cp.BoolVar{}
	for _, room := range apartment {
		for _, edge := range edges {
			options = append(options, OnEdge(b, edge, room, grid))
		}
	}
	b.AddBoolOr(options...)
}

// EnforceSunRoom requires the room to touch a building border.
func EnforceSunRoom(b *cp.Builder, room *Room, grid *Grid) {
	b.AddBoolAnd(IsSunlit(b, room, grid))
}
