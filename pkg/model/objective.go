package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

// ObjectiveTerms holds the variables the objective is made of.
type ObjectiveTerms struct {
	Sunlit           cp.IntVar // apartment rooms touching a building border
	LessThan         cp.IntVar // soft distance upper bounds that hold
	GreaterThan      cp.IntVar // soft distance lower bounds that hold
	BedroomDistance  cp.IntVar
	BathroomDistance cp.IntVar
}

// Expr returns sunlit + lessThan + greaterThan - bedroomDistance - bathroomDistance.
func (terms ObjectiveTerms) Expr() *cp.LinearExpr {
	return cp.NewLinearExpr().
		AddSum(terms.Sunlit, terms.LessThan, terms.GreaterThan).
		AddTerm(terms.BedroomDistance, -1).
		AddTerm(terms.BathroomDistance, -1)
}

func objectiveTerms(state *constraintState) ObjectiveTerms {
	b, grid := state.builder, state.grid

	sunlit := lo.Map(state.rooms(), func(room *Room, _ int) cp.BoolVar { return IsSunlit(b, room, grid) })

	soft := func(specs []DistanceSpec, compare func(b *cp.Builder, roomA, roomB *Room, threshold int, grid *Grid) cp.BoolVar) []cp.BoolVar {
		literals := []cp.BoolVar{}
		for _, spec := range specs {
			if spec.Hard {
				continue
			}
			roomA, roomB := state.distancePair(spec)
			literals = append(literals, compare(b, roomA, roomB, spec.Bound, grid))
		}
		return literals
	}

	bedrooms := lo.Map(state.apartments, func(apartment []*Room, _ int) cp.LinearArgument {
		return BedroomDistance(b, apartment, grid)
	})
	bathrooms := lo.Map(state.apartments, func(apartment []*Room, _ int) cp.LinearArgument {
		return BathroomDistance(b, apartment, grid)
	})
	bound := lo.SumBy(state.apartments, func(apartment []*Room) int64 {
		n := int64(len(apartment))
		return 2 * n * n * grid.MaxDistance()
	})

	return ObjectiveTerms{
		Sunlit:           Count(b, sunlit),
		LessThan:         Count(b, soft(state.building.DistanceLessThan, IsDistanceLessThan)),
		GreaterThan:      Count(b, soft(state.building.DistanceGreaterThan, IsDistanceGreaterThan)),
		BedroomDistance:  Sum(b, bedrooms, bound),
		BathroomDistance: Sum(b, bathrooms, bound),
	}
}
