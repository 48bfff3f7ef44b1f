package model

import (
	"fmt"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

// Grid is the fixed rows x cols matrix of cells; each cell holds a domain index.
type Grid struct {
	Rows, Cols int
	cells      [][]cp.IntVar
	// Literals standing for cell(x, y) == index, shared by every constraint asking for them
	literals map[[3]int]cp.BoolVar
}

func NewGrid(b *cp.Builder, rows, cols, domainSize int) *Grid {
	grid := &Grid{
		Rows:     rows,
		Cols:     cols,
		cells:    make([][]cp.IntVar, rows),
		literals: make(map[[3]int]cp.BoolVar),
	}
	for x := range rows {
		grid.cells[x] = make([]cp.IntVar, cols)
		for y := range cols {
			grid.cells[x][y] = b.NewIntVar(0, int64(domainSize-1))
			b.SetName(grid.cells[x][y], fmt.Sprintf("(%d,%d)", x, y))
		}
	}
	return grid
}

func (grid *Grid) Cell(x, y int) cp.IntVar {
	return grid.cells[x][y]
}

// Cells returns every cell variable, row by row.
func (grid *Grid) Cells() []cp.IntVar {
	return lo.Flatten(grid.cells)
}

// Is returns a literal equal to cell(x, y) == index.
func (grid *Grid) Is(b *cp.Builder, x, y, index int) cp.BoolVar {
	key := [3]int{x, y, index}
	if literal, ok := grid.literals[key]; ok {
		return literal
	}
	literal := Equal(b, grid.cells[x][y], constant(index))
	grid.literals[key] = literal
	return literal
}

func (grid *Grid) remember(x, y, index int, literal cp.BoolVar) {
	key := [3]int{x, y, index}
	if _, ok := grid.literals[key]; !ok {
		grid.literals[key] = literal
	}
}

// MaxDistance bounds the Manhattan distance between any two cells.
func (grid *Grid) MaxDistance() int64 {
	return int64(grid.Rows + grid.Cols)
}
