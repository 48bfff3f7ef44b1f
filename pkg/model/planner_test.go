package model

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/limaJavier/floorplan/pkg/sat"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A 2x3 floor where only the hallway is free: it has to join the corridor, the stairwell and the
// elevator, which leaves a single layout.
func smallBuilding() Building {
	return Building{
		Width:  2,
		Length: 3,
		Apartments: []RawApartment{{Rooms: []RawRoom{
			{Category: "CR", Pin: &Rect{0, 0, 0, 0}},
		}}},
		Stairwell: &Rect{1, 0, 1, 0},
		Elevator:  &Rect{1, 2, 1, 2},
	}
}

func TestPlannerBuild(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())
	building := smallBuilding()

	//** Act
	result, err := planner.Build(context.Background(), building, Options{MaxSolutions: 3})

	//** Assert
	require.NoError(t, err)
	require.Equal(t, cp.Optimal, result.Status)
	require.Len(t, result.Layouts, 1)
	layout := result.Layouts[0]
	assert.Equal(t, [][]string{
		{"CR_AP1_1", "HW_1", "D"},
		{"SW", "HW_1", "ELR"},
	}, layout.Grid)
	assert.Equal(t, Rect{0, 1, 1, 1}, layout.Rooms[1].Rect)
	assert.Equal(t, 2, layout.Rooms[1].Area)
	assert.Equal(t, ObjectiveValues{Sunlit: 1, Total: 1}, layout.Objective)
	assert.Positive(t, result.Variables)
	assert.Positive(t, result.PBConstraints)
	assert.True(t, planner.Verify(layout, building))
}

func TestPlannerVerifyRejectsTamperedLayout(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), nil)
	building := smallBuilding()
	result, err := planner.Build(context.Background(), building, Options{})
	require.NoError(t, err)
	require.Len(t, result.Layouts, 1)
	layout := cloneLayout(result.Layouts[0])

	//** Act
	layout.Grid[0][2] = "HW_1"

	//** Assert
	assert.False(t, planner.Verify(layout, building))
}

func TestPlannerInfeasible(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())
	// Four rooms do not fit in two cells
	building := Building{
		Width:      1,
		Length:     2,
		Apartments: []RawApartment{{Rooms: []RawRoom{{Category: "CR"}}}},
	}

	//** Act
	result, err := planner.Build(context.Background(), building, Options{})

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, cp.Infeasible, result.Status)
	assert.Empty(t, result.Layouts)
}

func TestPlannerRejectsInvalidBuilding(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())

	//** Act
	_, err := planner.Build(context.Background(), Building{Width: 2, Length: 2}, Options{})

	//** Assert
	var inputError InputError
	assert.ErrorAs(t, err, &inputError)
}

func TestPlannerKitchenAndDiningNook(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())
	building := Building{
		Width:  6,
		Length: 6,
		Apartments: []RawApartment{{Rooms: []RawRoom{
			{Category: "DN", MinArea: 2},
			{Category: "K", MinArea: 2},
			{Category: "CR"},
		}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	//** Act
	result, err := planner.Build(ctx, building, Options{MaxSolutions: 3})

	//** Assert
	require.NoError(t, err)
	require.Equal(t, cp.Optimal, result.Status)
	require.Len(t, result.Layouts, 3)
	grids := lo.Map(result.Layouts, func(layout Layout, _ int) string { return fmt.Sprint(layout.Grid) })
	assert.Len(t, lo.Uniq(grids), 3)
	for _, layout := range result.Layouts {
		assert.True(t, planner.Verify(layout, building))
		dining := layout.Rooms[0]
		require.Equal(t, Dining, dining.Label.Category)
		assert.True(t, lo.SomeBy(bandCells(dining.Rect, building.Width, building.Length), func(cell [2]int) bool {
			return layout.Grid[cell[0]][cell[1]] == "K_AP1_1"
		}))
	}
}

func TestPlannerBuildsTestdata(t *testing.T) {
	if testing.Short() {
		t.Skip("solves full buildings")
	}

	for _, file := range []string{"testdata/building.json", "testdata/building.yaml"} {
		t.Run(file, func(t *testing.T) {
			//** Arrange
			building, err := InputFromFile(file)
			require.NoError(t, err)
			planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
			defer cancel()

			//** Act
			result, err := planner.Build(ctx, building, Options{MaxSolutions: 2})

			//** Assert
			require.NoError(t, err)
			require.True(t, result.Status.Solved())
			require.NotEmpty(t, result.Layouts)
			grids := lo.Map(result.Layouts, func(layout Layout, _ int) string { return fmt.Sprint(layout.Grid) })
			assert.Len(t, lo.Uniq(grids), len(result.Layouts))
			for _, layout := range result.Layouts {
				assert.True(t, planner.Verify(layout, building))
			}
		})
	}
}

// failingEnumeration finds one solution and then fails, like an engine crashing mid-enumeration.
type failingEnumeration struct {
	sat.Solver
}

func (solver failingEnumeration) Solve(ctx context.Context, model *cp.Model, params sat.Parameters) (sat.Response, error) {
	params.MaxSolutions = 1
	response, err := solver.Solver.Solve(ctx, model, params)
	if err != nil {
		return response, err
	}
	return response, errors.New("engine stopped responding")
}

func TestPlannerKeepsLayoutsWhenEnumerationFails(t *testing.T) {
	//** Arrange
	planner := NewPlanner(failingEnumeration{sat.NewGophersatSolver()}, zap.NewNop())
	building := smallBuilding()

	//** Act
	result, err := planner.Build(context.Background(), building, Options{MaxSolutions: 3})

	//** Assert
	require.NoError(t, err)
	require.Len(t, result.Layouts, 1)
	assert.True(t, planner.Verify(result.Layouts[0], building))
}

func TestPlannerCancelledBeforeSearch(t *testing.T) {
	//** Arrange
	planner := NewPlanner(sat.NewGophersatSolver(), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	//** Act
	result, err := planner.Build(ctx, smallBuilding(), Options{})

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, cp.Unknown, result.Status)
	assert.Empty(t, result.Layouts)
}
