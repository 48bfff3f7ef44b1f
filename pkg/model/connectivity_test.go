package model

import (
	"testing"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosure(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	// Three rooms in a row and a detached one
	rooms := []*Room{
		pinnedRoom(b, Rect{0, 0, 0, 0}),
		pinnedRoom(b, Rect{0, 1, 0, 1}),
		pinnedRoom(b, Rect{0, 2, 1, 2}),
		pinnedRoom(b, Rect{3, 0, 3, 0}),
	}

	//** Act
	path := Closure(b, rooms, IsAdjacent)
	response := solve(t, b)

	//** Assert
	require.True(t, response.Status.Solved())
	solution := response.Solutions[0]
	for u := range 3 {
		for v := range 3 {
			assert.True(t, solution.BooleanValue(path[u][v]), "path %d -> %d", u, v)
		}
		assert.False(t, solution.BooleanValue(path[u][3]), "path %d -> 3", u)
		assert.False(t, solution.BooleanValue(path[3][u]), "path 3 -> %d", u)
	}
	assert.True(t, solution.BooleanValue(path[3][3]))
}

func TestEnforceConnected(t *testing.T) {
	t.Run("Connected rooms", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		rooms := []*Room{
			pinnedRoom(b, Rect{0, 0, 1, 0}),
			pinnedRoom(b, Rect{1, 1, 1, 2}),
			pinnedRoom(b, Rect{0, 3, 1, 3}),
		}

		//** Act
		EnforceConnected(b, rooms, IsEdgeAdjacent)
		response := solve(t, b)

		//** Assert
		assert.Equal(t, cp.Optimal, response.Status)
	})

	t.Run("Detached rooms", func(t *testing.T) {
		//** Arrange
		b := cp.NewCpModelBuilder()
		rooms := []*Room{
			pinnedRoom(b, Rect{0, 0, 1, 0}),
			pinnedRoom(b, Rect{0, 2, 1, 2}),
		}

		//** Act
		EnforceConnected(b, rooms, IsAdjacent)
		response := solve(t, b)

		//** Assert
		assert.Equal(t, cp.Infeasible, response.Status)
	})

	t.Run("No rooms", func(t *testing.T) {
		b := cp.NewCpModelBuilder()

		path := EnforceConnected(b, nil, IsAdjacent)
		response := solve(t, b)

		assert.Empty(t, path)
		assert.Equal(t, cp.Optimal, response.Status)
	})
}
