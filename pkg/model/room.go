package model

import (
	"fmt"

	"github.com/limaJavier/floorplan/pkg/cp"
)

type Category int

const (
	Duct Category = iota // background: every cell no room claims
	Kitchen
	Bedroom
	Corridor
	Dining
	Dressing
	MinorBathroom
	MainBathroom
	LivingRoom
	SunRoom
	Hallway
	Elevator
	Stairwell
)

var categoryCodes = []string{"D", "K", "BD", "CR", "DN", "DR", "MNB", "MSB", "LR", "SN", "HW", "ELR", "SW"}

func (category Category) String() string {
	return categoryCodes[category]
}

// Shared reports whether rooms of this category belong to the building rather than to an apartment.
func (category Category) Shared() bool {
	return category == Duct || category == Hallway || category == Elevator || category == Stairwell
}

func ParseCategory(code string) (Category, error) {
	for i, c := range categoryCodes {
		if c == code {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown room category %q", code)
}

// Label identifies a room. Apartment is 1-based and 0 for shared rooms; Instance numbers the rooms of
// a category inside an apartment.
type Label struct {
	Category  Category
	Apartment int
	Instance  int
	// Bedroom instance a dressing room or a private bathroom belongs to
	PairedWith int
	// A common bathroom opens on a corridor instead of a bedroom
	Common bool
}

var Background = Label{Category: Duct}

func (label Label) String() string {
	switch label.Category {
	case Duct:
		return label.Category.String()
	case Elevator, Stairwell:
		if label.Instance <= 1 {
			return label.Category.String()
		}
		return fmt.Sprintf("%v_%d", label.Category, label.Instance)
	case Hallway:
		return fmt.Sprintf("%v_%d", label.Category, label.Instance)
	}
	marker := ""
	if label.Common {
		marker = "#"
	}
	return fmt.Sprintf("%v_AP%d_%v%d", label.Category, label.Apartment, marker, label.Instance)
}

// Rect is an axis-aligned rectangle: (AX, AY) is the top-left cell, (BX, BY) the bottom-right one.
// X indexes rows and Y columns.
type Rect struct {
	AX int `json:"ax"`
	AY int `json:"ay"`
	BX int `json:"bx"`
	BY int `json:"by"`
}

func (rect Rect) Height() int {
	return rect.BY - rect.AY + 1
}

func (rect Rect) Width() int {
	return rect.BX - rect.AX + 1
}

func (rect Rect) Contains(x, y int) bool {
	return rect.AX <= x && x <= rect.BX && rect.AY <= y && y <= rect.BY
}

func (rect Rect) Overlaps(other Rect) bool {
	return rect.AX <= other.BX && other.AX <= rect.BX && rect.AY <= other.BY && other.AY <= rect.BY
}

type RoomSpec struct {
	Label       Label
	MinArea     int
	MinHeight   int
	MinWidth    int
	Sunlit      bool
	GoldenRatio bool
	// Fixed position, nil when the solver places the room
	Pin *Rect
}

// Room is a RoomSpec materialized in a model.
type Room struct {
	RoomSpec
	Index int // position in the domain

	AX, AY, BX, BY cp.IntVar
	Height         cp.IntVar
	Width          cp.IntVar
	Area           cp.IntVar

	center *[2]cp.IntVar
	band   [][]cp.BoolVar
}

// DefineRoom creates the corner, size and area variables of a room and binds every grid cell to it:
// a cell inside the rectangle takes the room's domain index, a cell outside takes any other value.
func DefineRoom(b *cp.Builder, spec RoomSpec, grid *Grid, index int) *Room {
	room := &Room{RoomSpec: spec, Index: index}
	rows, cols := int64(grid.Rows), int64(grid.Cols)

	if spec.Pin != nil {
		room.AX = b.NewIntVar(int64(spec.Pin.AX), int64(spec.Pin.AX))
		room.AY = b.NewIntVar(int64(spec.Pin.AY), int64(spec.Pin.AY))
		room.BX = b.NewIntVar(int64(spec.Pin.BX), int64(spec.Pin.BX))
		room.BY = b.NewIntVar(int64(spec.Pin.BY), int64(spec.Pin.BY))
	} else {
		room.AX = b.NewIntVar(0, rows-1)
		room.AY = b.NewIntVar(0, cols-1)
		room.BX = b.NewIntVar(0, rows-1)
		room.BY = b.NewIntVar(0, cols-1)
	}
	name := spec.Label.String()
	b.SetName(room.AX, name+"_ax")
	b.SetName(room.AY, name+"_ay")
	b.SetName(room.BX, name+"_bx")
	b.SetName(room.BY, name+"_by")

	// Every room owns at least one cell
	room.Height = b.NewIntVar(int64(max(spec.MinHeight, 1)), cols)
	room.Width = b.NewIntVar(int64(max(spec.MinWidth, 1)), rows)
	room.Area = b.NewIntVar(int64(max(spec.MinArea, 1)), rows*cols)
	b.SetName(room.Area, name+"_area")

	b.AddEquality(room.Height, span(room.AY, room.BY))
	b.AddEquality(room.Width, span(room.AX, room.BX))
	b.AddMultiplicationEquality(room.Area, room.Width, room.Height)

	for x := range grid.Rows {
		for y := range grid.Cols {
			matchCellToRoom(b, grid, room, x, y)
		}
	}
	return room
}

func matchCellToRoom(b *cp.Builder, grid *Grid, room *Room, x, y int) {
	inRoom := And(b,
		Between(b, constant(x), room.AX, room.BX),
		Between(b, constant(y), room.AY, room.BY),
	)
	cell, index := grid.Cell(x, y), constant(room.Index)
	b.AddEquality(cell, index).OnlyEnforceIf(inRoom)
	b.AddNotEqual(cell, index).OnlyEnforceIf(inRoom.Not())
	// inRoom is now exactly cell == index
	grid.remember(x, y, room.Index, inRoom)
}

// span returns hi - lo + 1.
func span(lo, hi cp.IntVar) *cp.LinearExpr {
	return cp.NewLinearExpr().Add(hi).AddTerm(lo, -1).AddConstant(1)
}

func constant(value int) *cp.LinearExpr {
	return cp.NewConstantExpr(int64(value))
}

// offset returns v + delta.
func offset(v cp.LinearArgument, delta int) *cp.LinearExpr {
	return cp.NewLinearExpr().Add(v).AddConstant(int64(delta))
}
