package model

import (
	"context"
	"testing"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/limaJavier/floorplan/pkg/sat"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, b *cp.Builder) sat.Response {
	t.Helper()
	model, err := b.Model()
	require.NoError(t, err)
	response, err := sat.NewGophersatSolver().Solve(context.Background(), model, sat.Parameters{})
	require.NoError(t, err)
	return response
}

// pinnedRoom builds a room with constant corners and no grid binding.
func pinnedRoom(b *cp.Builder, rect Rect) *Room {
	room := &Room{
		AX:     b.NewConstant(int64(rect.AX)),
		AY:     b.NewConstant(int64(rect.AY)),
		BX:     b.NewConstant(int64(rect.BX)),
		BY:     b.NewConstant(int64(rect.BY)),
		Width:  b.NewConstant(int64(rect.Width())),
		Height: b.NewConstant(int64(rect.Height())),
	}
	room.Area = b.NewConstant(int64(rect.Width() * rect.Height()))
	room.Pin = &rect
	return room
}

func label(category Category, apartment, instance int) Label {
	return Label{Category: category, Apartment: apartment, Instance: instance}
}
