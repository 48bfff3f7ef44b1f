package model

import (
	"time"

	"github.com/limaJavier/floorplan/pkg/cp"
)

type PlacedRoom struct {
	Label Label `json:"label"`
	Rect  Rect  `json:"rect"`
	Area  int   `json:"area"`
}

type ObjectiveValues struct {
	Sunlit           int64 `json:"sunlit"`
	LessThan         int64 `json:"lessThan"`
	GreaterThan      int64 `json:"greaterThan"`
	BedroomDistance  int64 `json:"bedroomDistance"`
	BathroomDistance int64 `json:"bathroomDistance"`
	Total            int64 `json:"total"`
}

// Layout is one solution: the label of every cell and the resolved rectangle of every room.
type Layout struct {
	Grid      [][]string      `json:"grid"`
	Rooms     []PlacedRoom    `json:"rooms"`
	Objective ObjectiveValues `json:"objective"`
}

type Result struct {
	Status  cp.Status
	Layouts []Layout
	// Size of the model and of the instance the solver received
	Variables     int
	Constraints   int
	PBVariables   int
	PBConstraints int
	Duration      time.Duration
}

func (label Label) MarshalText() ([]byte, error) {
	return []byte(label.String()), nil
}

func decodeLayout(solution cp.Solution, grid *Grid, domain *Domain, rooms []*Room, terms ObjectiveTerms) Layout {
	layout := Layout{
		Grid:  make([][]string, grid.Rows),
		Rooms: make([]PlacedRoom, 0, len(rooms)),
	}
	for x := range grid.Rows {
		layout.Grid[x] = make([]string, grid.Cols)
		for y := range grid.Cols {
			layout.Grid[x][y] = domain.Label(int(solution.Value(grid.Cell(x, y)))).String()
		}
	}
	for _, room := range rooms {
		layout.Rooms = append(layout.Rooms, PlacedRoom{
			Label: room.Label,
			Rect: Rect{
				AX: int(solution.Value(room.AX)),
				AY: int(solution.Value(room.AY)),
				BX: int(solution.Value(room.BX)),
				BY: int(solution.Value(room.BY)),
			},
			Area: int(solution.Value(room.Area)),
		})
	}
	layout.Objective = ObjectiveValues{
		Sunlit:           solution.Value(terms.Sunlit),
		LessThan:         solution.Value(terms.LessThan),
		GreaterThan:      solution.Value(terms.GreaterThan),
		BedroomDistance:  solution.Value(terms.BedroomDistance),
		BathroomDistance: solution.Value(terms.BathroomDistance),
		Total:            solution.Value(terms.Expr()),
	}
	return layout
}
