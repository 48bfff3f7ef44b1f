package model

import (
	"testing"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureApartmentSymmetry(t *testing.T) {
	t.Run("Mirrored apartments", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		apartmentA := []*Room{pinnedRoom(b, Rect{0, 0, 1, 1}), pinnedRoom(b, Rect{2, 0, 2, 0})}
		apartmentB := []*Room{pinnedRoom(b, Rect{0, 3, 1, 4}), pinnedRoom(b, Rect{2, 4, 2, 4})}

		//** Act
		err := EnsureApartmentSymmetry(b, apartmentA, apartmentB, 2)
		response := solve(t, b)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, cp.Optimal, response.Status)
	})

	t.Run("Mirror is placed freely", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		apartmentA := []*Room{pinnedRoom(b, Rect{1, 0, 2, 1})}
		free := &Room{AX: b.NewIntVar(0, 3), AY: b.NewIntVar(0, 4), BX: b.NewIntVar(0, 3), BY: b.NewIntVar(0, 4)}

		//** Act
		err := EnsureApartmentSymmetry(b, apartmentA, []*Room{free}, 2)
		response := solve(t, b)

		//** Assert
		require.NoError(t, err)
		require.True(t, response.Status.Solved())
		solution := response.Solutions[0]
		assert.Equal(t, []int64{1, 3, 2, 4}, []int64{
			solution.Value(free.AX), solution.Value(free.AY), solution.Value(free.BX), solution.Value(free.BY),
		})
	})

	t.Run("Rooms off the mirror", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		apartmentA := []*Room{pinnedRoom(b, Rect{0, 0, 1, 1})}
		apartmentB := []*Room{pinnedRoom(b, Rect{0, 2, 1, 3})}

		//** Act
		err := EnsureApartmentSymmetry(b, apartmentA, apartmentB, 2)
		response := solve(t, b)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, cp.Infeasible, response.Status)
	})

	t.Run("Different room counts", func(t *testing.T) {
		b := cp.NewCpModelBuilder()

		err := EnsureApartmentSymmetry(b, []*Room{pinnedRoom(b, Rect{0, 0, 0, 0})}, nil, 2)

		assert.Error(t, err)
	})
}

func TestEnsureEqualAreas(t *testing.T) {
	t.Run("Free rooms follow the first apartment", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		first := []*Room{pinnedRoom(b, Rect{0, 0, 1, 2}), pinnedRoom(b, Rect{2, 0, 2, 0})}
		second := []*Room{{Area: b.NewIntVar(1, 9)}, {Area: b.NewIntVar(1, 9)}}

		//** Act
		err := EnsureEqualAreas(b, [][]*Room{first, second})
		response := solve(t, b)

		//** Assert
		require.NoError(t, err)
		require.True(t, response.Status.Solved())
		assert.Equal(t, int64(6), response.Solutions[0].Value(second[0].Area))
		assert.Equal(t, int64(1), response.Solutions[0].Value(second[1].Area))
	})

	t.Run("Different room counts", func(t *testing.T) {
		b := cp.NewCpModelBuilder()

		err := EnsureEqualAreas(b, [][]*Room{{pinnedRoom(b, Rect{0, 0, 0, 0})}, {}})

		assert.Error(t, err)
	})
}
