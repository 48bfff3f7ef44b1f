package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type constraintState struct {
	builder   *cp.Builder
	building  Building
	grid      *Grid
	domain    *Domain
	evaluator predicateEvaluator
	adjacency Adjacency
	logger    *zap.Logger

	apartments [][]*Room
	hallways   []*Room
	elevator   *Room
	stairwell  *Room
}

// circulation returns the building-wide rooms people walk through.
func (state *constraintState) circulation() []*Room {
	return append(append([]*Room{}, state.hallways...), state.elevator, state.stairwell)
}

func (state *constraintState) rooms() []*Room {
	return lo.Flatten(state.apartments)
}

func roomAdjacencyConstraints(state *constraintState) error {
	for _, room := range state.rooms() {
		if room.Label.Category == Corridor {
			continue
		}
		EnforceRoomAdjacency(state.builder, room, state.grid, state.domain, state.evaluator, state.logger)
	}
	return nil
}

func sunRoomConstraints(state *constraintState) error {
	for _, room := range state.rooms() {
		if room.Sunlit {
			EnforceSunRoom(state.builder, room, state.grid)
		}
	}
	return nil
}

func entranceConstraints(state *constraintState) error {
	for i, apartment := range state.apartments {
		scope := apartment
		if state.building.EntranceScope != EntranceScopeRooms {
			scope = lo.Filter(apartment, func(room *Room, _ int) bool { return room.Label.Category == Corridor })
		}
		if len(scope) == 0 {
			state.logger.Warn("apartment has no room that may open on a hallway, entrance skipped",
				zap.Int("apartment", i+1),
				zap.String("scope", lo.CoalesceOrEmpty(state.building.EntranceScope, EntranceScopeCorridors)),
			)
			continue
		}
		EnforceEntrance(state.builder, scope, state.hallways, state.grid)
	}
	return nil
}

func corridorConnectivityConstraints(state *constraintState) error {
	for _, apartment := range state.apartments {
		corridors := lo.Filter(apartment, func(room *Room, _ int) bool { return room.Label.Category == Corridor })
		EnforceConnected(state.builder, corridors, state.adjacency)
	}
	return nil
}

func circulationConnectivityConstraints(state *constraintState) error {
	EnforceConnected(state.builder, state.circulation(), state.adjacency)
	return nil
}

func openAreaConstraints(state *constraintState) error {
	if !state.building.FaceOpenArea {
		return nil
	}
	edges := state.building.OpenArea.Edges()
	if len(edges) == 0 {
		state.logger.Warn("open area requested without any enabled border")
	}
	for _, apartment := range state.apartments {
		EnforceOpenArea(state.builder, apartment, edges, state.grid)
	}
	return nil
}

func symmetryConstraints(state *constraintState) error {
	if !state.building.SymmetricApartments {
		return nil
	}
	axis := (state.grid.Cols - 1) / 2
	if state.building.SymmetryAxis != nil {
		axis = *state.building.SymmetryAxis
	}
	pairs := state.building.SymmetricPairs
	if len(pairs) == 0 {
		pairs = [][]int{{0, 1}}
	}
	for _, pair := range pairs {
		if err := EnsureApartmentSymmetry(state.builder, state.apartments[pair[0]], state.apartments[pair[1]], axis); err != nil {
			return err
		}
	}
	return nil
}

func equalAreaConstraints(state *constraintState) error {
	for _, group := range state.building.SameTypeApartments {
		apartments := lo.Map(group, func(index int, _ int) []*Room { return state.apartments[index] })
		if err := EnsureEqualAreas(state.builder, apartments); err != nil {
			return err
		}
	}
	return nil
}

func goldenRatioConstraints(state *constraintState) error {
	for _, room := range state.rooms() {
		if room.GoldenRatio {
			EnsureGoldenRatio(state.builder, room, state.grid)
		}
	}
	return nil
}

func elevatorDistanceConstraints(state *constraintState) error {
	if state.building.EqualElevatorDistance {
		EnsureEqualElevatorDistance(state.builder, state.apartments, state.elevator, state.grid)
	}
	return nil
}

func hardDistanceConstraints(state *constraintState) error {
	for _, spec := range state.building.DistanceLessThan {
		if spec.Hard {
			roomA, roomB := state.distancePair(spec)
			state.builder.AddBoolAnd(IsDistanceLessThan(state.builder, roomA, roomB, spec.Bound, state.grid))
		}
	}
	for _, spec := range state.building.DistanceGreaterThan {
		if spec.Hard {
			roomA, roomB := state.distancePair(spec)
			state.builder.AddBoolAnd(IsDistanceGreaterThan(state.builder, roomA, roomB, spec.Bound, state.grid))
		}
	}
	return nil
}

func (state *constraintState) distancePair(spec DistanceSpec) (*Room, *Room) {
	apartment := state.apartments[spec.Apartment]
	return apartment[spec.RoomA], apartment[spec.RoomB]
}
