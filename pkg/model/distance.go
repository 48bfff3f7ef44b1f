package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
)

// Midpoint returns floor((lo + hi) / 2) for coordinates in [0, extent).
func Midpoint(b *cp.Builder, lo, hi cp.IntVar, extent int) cp.IntVar {
	sum := b.NewIntVar(0, int64(2*(extent-1)))
	b.AddEquality(sum, cp.NewLinearExpr().AddSum(lo, hi))
	mid := b.NewIntVar(0, int64(extent-1))
	b.AddDivisionEquality(mid, sum, 2)
	return mid
}

// Center returns the room's (row, column) midpoint, created on first use.
func Center(b *cp.Builder, room *Room, grid *Grid) (cp.IntVar, cp.IntVar) {
	if room.center == nil {
		room.center = &[2]cp.IntVar{
			Midpoint(b, room.AX, room.BX, grid.Rows),
			Midpoint(b, room.AY, room.BY, grid.Cols),
		}
	}
	return room.center[0], room.center[1]
}

// Distance returns the Manhattan distance between the centers of two rooms.
func Distance(b *cp.Builder, roomA, roomB *Room, grid *Grid) cp.IntVar {
	maxDistance := grid.MaxDistance()
	ax, ay := Center(b, roomA, grid)
	bx, by := Center(b, roomB, grid)

	absX := b.NewIntVar(0, maxDistance)
	absY := b.NewIntVar(0, maxDistance)
	b.AddAbsEquality(absX, cp.Difference(ax, bx))
	b.AddAbsEquality(absY, cp.Difference(ay, by))

	d := b.NewIntVar(0, maxDistance)
	b.AddEquality(d, cp.NewLinearExpr().AddSum(absX, absY))
	return d
}

func IsDistanceLessThan(b *cp.Builder, roomA, roomB *Room, threshold int, grid *Grid) cp.BoolVar {
	return LessThan(b, Distance(b, roomA, roomB, grid), constant(threshold))
}

func IsDistanceGreaterThan(b *cp.Builder, roomA, roomB *Room, threshold int, grid *Grid) cp.BoolVar {
	return GreaterThan(b, Distance(b, roomA, roomB, grid), constant(threshold))
}

// runningSum chains partial sums, each bounded by bound.
func runningSum(b *cp.Builder, terms []cp.LinearArgument, bound int64) cp.IntVar {
	sum := b.NewIntVar(0, 0)
	for _, term := range terms {
		next := b.NewIntVar(0, bound)
		b.AddEquality(next, cp.NewLinearExpr().Add(sum).Add(term))
		sum = next
	}
	return sum
}

// BedroomDistance sums the distance of every unordered pair of bedrooms of an apartment.
func BedroomDistance(b *cp.Builder, apartment []*Room, grid *Grid) cp.IntVar {
	n := int64(len(apartment))
	terms := []cp.LinearArgument{}
	for i, roomA := range apartment {
		if roomA.Label.Category != Bedroom {
			continue
		}
		for _, roomB := range apartment[i+1:] {
			if roomB.Label.Category == Bedroom {
				terms = append(terms, Distance(b, roomA, roomB, grid))
			}
		}
	}
	return runningSum(b, terms, n*n*grid.MaxDistance())
}

// BathroomDistance sums the distance from every main bathroom to every other room of an apartment,
// counting living rooms twice.
func BathroomDistance(b *cp.Builder, apartment []*Room, grid *Grid) cp.IntVar {
	n := int64(len(apartment))
	terms := []cp.LinearArgument{}
	for _, bathroom := range apartment {
		if bathroom.Label.Category != MainBathroom {
			continue
		}
		for _, room := range apartment {
			if room.Label.Category == MainBathroom {
				continue
			}
			factor := int64(1)
			if room.Label.Category == LivingRoom {
				factor = 2
			}
			terms = append(terms, cp.NewLinearExpr().AddTerm(Distance(b, bathroom, room, grid), factor))
		}
	}
	return runningSum(b, terms, 2*n*n*grid.MaxDistance())
}

// EnsureGoldenRatio approximates the golden ratio on the room's sides: 10 * longest == 16 * shortest.
func EnsureGoldenRatio(b *cp.Builder, room *Room, grid *Grid) {
	side := int64(max(grid.Rows, grid.Cols))
	shortest, longest := b.NewIntVar(0, side), b.NewIntVar(0, side)
	b.AddMinEquality(shortest, room.Width, room.Height)
	b.AddMaxEquality(longest, room.Width, room.Height)
	b.AddEquality(cp.NewLinearExpr().AddTerm(longest, 10), cp.NewLinearExpr().AddTerm(shortest, 16))
}

// EnsureEqualElevatorDistance makes the distance from the elevator to the closest room of every
// apartment the same. Distances are capped at the grid's maximum distance.
func EnsureEqualElevatorDistance(b *cp.Builder, apartments [][]*Room, elevator *Room, grid *Grid) []cp.IntVar {
	maxDistance := grid.MaxDistance()
	closest := make([]cp.IntVar, 0, len(apartments))
	for _, apartment := range apartments {
		distances := []cp.LinearArgument{cp.NewConstantExpr(maxDistance)}
		for _, room := range apartment {
			distances = append(distances, Distance(b, room, elevator, grid))
		}
		minimum := b.NewIntVar(0, maxDistance)
		b.AddMinEquality(minimum, distances...)
		if len(closest) > 0 {
			b.AddEquality(closest[0], minimum)
		}
		closest = append(closest, minimum)
	}
	return closest
}
