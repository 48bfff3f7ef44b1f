package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
)

type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

func (edge Edge) String() string {
	return [...]string{"top", "bottom", "left", "right"}[edge]
}

// IsOnBorder checks the room against a building border line. A horizontal border is a row (top or
// bottom edge, compared with ax and bx); otherwise it is a column (left or right, ay and by).
func IsOnBorder(b *cp.Builder, border int, horizontal bool, room *Room) cp.BoolVar {
	if horizontal {
		return Or(b, Equal(b, room.AX, constant(border)), Equal(b, room.BX, constant(border)))
	}
	return Or(b, Equal(b, room.AY, constant(border)), Equal(b, room.BY, constant(border)))
}

func OnEdge(b *cp.Builder, edge Edge, room *Room, grid *Grid) cp.BoolVar {
	switch edge {
	case Top:
		return IsOnBorder(b, 0, true, room)
	case Bottom:
		return IsOnBorder(b, grid.Rows-1, true, room)
	case Left:
		return IsOnBorder(b, 0, false, room)
	default:
		return IsOnBorder(b, grid.Cols-1, false, room)
	}
}

// IsSunlit reports whether the room touches any of the four building borders.
func IsSunlit(b *cp.Builder, room *Room, grid *Grid) cp.BoolVar {
	return Or(b,
		OnEdge(b, Top, room, grid),
		OnEdge(b, Left, room, grid),
		OnEdge(b, Bottom, room, grid),
		OnEdge(b, Right, room, grid),
	)
}

// InBand reports whether (px, py) lies in the room's rectangle grown by one cell on every side.
func InBand(b *cp.Builder, px, py cp.LinearArgument, room *Room) cp.BoolVar {
	return And(b,
		LessOrEqual(b, px, offset(room.BX, 1)),
		LessOrEqual(b, offset(room.AX, -1), px),
		LessOrEqual(b, py, offset(room.BY, 1)),
		LessOrEqual(b, offset(room.AY, -1), py),
	)
}

// isBelowRight reports whether point q is exactly one row down and one column right of point p.
func isBelowRight(b *cp.Builder, px, py, qx, qy cp.LinearArgument) cp.BoolVar {
	return And(b, Equal(b, px, offset(qx, -1)), Equal(b, py, offset(qy, -1)))
}

// isBelowLeft reports whether point q is exactly one row down and one column left of point p.
func isBelowLeft(b *cp.Builder, px, py, qx, qy cp.LinearArgument) cp.BoolVar {
	return And(b, Equal(b, px, offset(qx, -1)), Equal(b, py, offset(qy, 1)))
}

// IsDiagonal reports whether the rooms only meet at a corner.
func IsDiagonal(b *cp.Builder, roomA, roomB *Room) cp.BoolVar {
	return Or(b,
		// B starts right below A's bottom-right corner
		isBelowRight(b, roomA.BX, roomA.BY, roomB.AX, roomB.AY),
		// B's top-right corner sits below-left of A's bottom-left one
		isBelowLeft(b, roomA.BX, roomA.AY, roomB.AX, roomB.BY),
		isBelowRight(b, roomB.BX, roomB.BY, roomA.AX, roomA.AY),
		isBelowLeft(b, roomB.BX, roomB.AY, roomA.AX, roomA.BY),
	)
}

// cornerInBand reports whether roomA's top-left or bottom-right corner is in roomB's band.
func cornerInBand(b *cp.Builder, roomA, roomB *Room) cp.BoolVar {
	return Or(b,
		InBand(b, roomA.AX, roomA.AY, roomB),
		InBand(b, roomA.BX, roomA.BY, roomB),
	)
}

// IsAdjacent reports whether the rooms share a wall, testing the corners of each room against the
// band of the other. A room is adjacent to itself.
func IsAdjacent(b *cp.Builder, roomA, roomB *Room) cp.BoolVar {
	if roomA == roomB {
		return b.TrueVar()
	}
	touching := Or(b, cornerInBand(b, roomA, roomB), cornerInBand(b, roomB, roomA))
	return And(b, touching, IsDiagonal(b, roomA, roomB).Not())
}

// IsEdgeAdjacent is the exact shared-wall test: the row ranges overlap and the column ranges are
// contiguous, or the other way round.
func IsEdgeAdjacent(b *cp.Builder, roomA, roomB *Room) cp.BoolVar {
	if roomA == roomB {
		return b.TrueVar()
	}
	rowsOverlap := And(b, LessOrEqual(b, roomA.AX, roomB.BX), LessOrEqual(b, roomB.AX, roomA.BX))
	colsOverlap := And(b, LessOrEqual(b, roomA.AY, roomB.BY), LessOrEqual(b, roomB.AY, roomA.BY))
	rowsContiguous := Or(b, Equal(b, offset(roomA.BX, 1), roomB.AX), Equal(b, offset(roomB.BX, 1), roomA.AX))
	colsContiguous := Or(b, Equal(b, offset(roomA.BY, 1), roomB.AY), Equal(b, offset(roomB.BY, 1), roomA.AY))
	return Or(b, And(b, rowsOverlap, colsContiguous), And(b, colsOverlap, rowsContiguous))
}

// Band returns, for every cell, a literal telling whether the cell is on the ring around the room:
// the rows right above and below it or the columns right left and right of it, corners excluded.
func Band(b *cp.Builder, room *Room, grid *Grid) [][]cp.BoolVar {
	if room.band != nil {
		return room.band
	}
	upper, lower := offset(room.AX, -1), offset(room.BX, 1)
	left, right := offset(room.AY, -1), offset(room.BY, 1)

	room.band = make([][]cp.BoolVar, grid.Rows)
	for x := range grid.Rows {
		room.band[x] = make([]cp.BoolVar, grid.Cols)
		for y := range grid.Cols {
			rowIsLower := Equal(b, constant(x), lower)
			rowIsUpper := Equal(b, constant(x), upper)
			colIsLeft := Equal(b, constant(y), left)
			colIsRight := Equal(b, constant(y), right)
			room.band[x][y] = Or(b,
				And(b, Or(b, rowIsLower, rowIsUpper), Between(b, constant(y), room.AY, room.BY)),
				And(b, Or(b, colIsLeft, colIsRight), Between(b, constant(x), room.AX, room.BX)),
			)
		}
	}
	return room.band
}
