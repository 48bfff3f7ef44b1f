package model

import (
	"fmt"

	"github.com/samber/lo"
)

// verify checks a layout against the building on plain integers, independently of the model that
// produced it.
func verify(layout Layout, building Building) error {
	apartmentSpecs, sharedSpecs, err := building.Specs()
	if err != nil {
		return err
	}
	specs := append(lo.Flatten(apartmentSpecs), sharedSpecs...)

	//** Grid shape
	if len(layout.Grid) != building.Width {
		return fmt.Errorf("grid has %d rows, want %d", len(layout.Grid), building.Width)
	}
	for x, row := range layout.Grid {
		if len(row) != building.Length {
			return fmt.Errorf("grid row %d has %d columns, want %d", x, len(row), building.Length)
		}
	}

	//** Rooms
	placed := lo.KeyBy(layout.Rooms, func(room PlacedRoom) string { return room.Label.String() })
	labels := map[string]Label{Background.String(): Background}
	rects := make(map[string]Rect, len(specs))
	for _, spec := range specs {
		name := spec.Label.String()
		room, ok := placed[name]
		if !ok {
			return fmt.Errorf("room %v is missing", name)
		}
		if err := verifyRoom(spec, room, building); err != nil {
			return err
		}
		labels[name] = spec.Label
		rects[name] = room.Rect
	}

	//** Overlap
	for i, specA := range specs {
		for _, specB := range specs[i+1:] {
			if rects[specA.Label.String()].Overlaps(rects[specB.Label.String()]) {
				return fmt.Errorf("rooms %v and %v overlap", specA.Label, specB.Label)
			}
		}
	}

	//** Cells
	for x, row := range layout.Grid {
		for y, cell := range row {
			owners := lo.Filter(specs, func(spec RoomSpec, _ int) bool {
				return rects[spec.Label.String()].Contains(x, y)
			})
			want := Background.String()
			if len(owners) == 1 {
				want = owners[0].Label.String()
			}
			if cell != want {
				return fmt.Errorf("cell (%d,%d) holds %v, want %v", x, y, cell, want)
			}
		}
	}

	neighbors := func(name string) []Label {
		return lo.FilterMap(bandCells(rects[name], building.Width, building.Length), func(cell [2]int, _ int) (Label, bool) {
			label, ok := labels[layout.Grid[cell[0]][cell[1]]]
			return label, ok
		})
	}

	//** Adjacency rules
	evaluator := newPredicateEvaluator(nil)
	for _, spec := range lo.Flatten(apartmentSpecs) {
		if spec.Label.Category == Corridor {
			continue
		}
		around := neighbors(spec.Label.String())
		for _, req := range evaluator.Requirements(spec.Label) {
			if !lo.ContainsBy(around, func(label Label) bool {
				return label != spec.Label && evaluator.Satisfies(label, spec.Label, req)
			}) {
				return fmt.Errorf("room %v does not touch a %v", spec.Label, req.category)
			}
		}
	}

	//** Circulation
	hallways := lo.Filter(sharedSpecs, func(spec RoomSpec, _ int) bool { return spec.Label.Category == Hallway })
	if !connected(lo.Map(sharedSpecs, func(spec RoomSpec, _ int) Rect { return rects[spec.Label.String()] })) {
		return fmt.Errorf("building circulation is not connected")
	}
	for i, apartment := range apartmentSpecs {
		corridors := lo.Filter(apartment, func(spec RoomSpec, _ int) bool { return spec.Label.Category == Corridor })
		if !connected(lo.Map(corridors, func(spec RoomSpec, _ int) Rect { return rects[spec.Label.String()] })) {
			return fmt.Errorf("corridors of apartment %d are not connected", i+1)
		}

		scope := corridors
		if building.EntranceScope == EntranceScopeRooms {
			scope = apartment
		}
		if len(scope) > 0 && !lo.SomeBy(scope, func(spec RoomSpec) bool {
			return lo.SomeBy(neighbors(spec.Label.String()), func(label Label) bool {
				return lo.ContainsBy(hallways, func(hallway RoomSpec) bool { return hallway.Label == label })
			})
		}) {
			return fmt.Errorf("apartment %d has no entrance", i+1)
		}

		if edges := building.OpenArea.Edges(); building.FaceOpenArea && len(edges) > 0 && !lo.SomeBy(apartment, func(spec RoomSpec) bool {
			return lo.SomeBy(edges, func(edge Edge) bool { return onEdge(rects[spec.Label.String()], edge, building) })
		}) {
			return fmt.Errorf("apartment %d does not face the open area", i+1)
		}
	}

	//** Apartment relations
	if building.SymmetricApartments {
		axis := (building.Length - 1) / 2
		if building.SymmetryAxis != nil {
			axis = *building.SymmetryAxis
		}
		pairs := building.SymmetricPairs
		if len(pairs) == 0 {
			pairs = [][]int{{0, 1}}
		}
		for _, pair := range pairs {
			for j, specA := range apartmentSpecs[pair[0]] {
				a, c := rects[specA.Label.String()], rects[apartmentSpecs[pair[1]][j].Label.String()]
				if c.AY+a.BY != 2*axis || a.AY+c.BY != 2*axis || a.AX != c.AX || a.BX != c.BX {
					return fmt.Errorf("apartments %d and %d are not mirrored across column %d", pair[0]+1, pair[1]+1, axis)
				}
			}
		}
	}
	for _, group := range building.SameTypeApartments {
		for j, spec := range apartmentSpecs[group[0]] {
			area := placed[spec.Label.String()].Area
			for _, other := range group[1:] {
				if placed[apartmentSpecs[other][j].Label.String()].Area != area {
					return fmt.Errorf("apartments %v do not share room areas", group)
				}
			}
		}
	}

	if building.EqualElevatorDistance {
		elevator := rects[Label{Category: Elevator, Instance: 1}.String()]
		closest := lo.Map(apartmentSpecs, func(apartment []RoomSpec, _ int) int {
			return lo.Min(append(
				lo.Map(apartment, func(spec RoomSpec, _ int) int { return manhattan(rects[spec.Label.String()], elevator) }),
				building.Width+building.Length,
			))
		})
		if len(lo.Uniq(closest)) > 1 {
			return fmt.Errorf("apartments are at different distances from the elevator: %v", closest)
		}
	}

	//** Hard distances
	distance := func(spec DistanceSpec) int {
		apartment := apartmentSpecs[spec.Apartment]
		return manhattan(rects[apartment[spec.RoomA].Label.String()], rects[apartment[spec.RoomB].Label.String()])
	}
	for _, spec := range building.DistanceLessThan {
		if spec.Hard && distance(spec) >= spec.Bound {
			return fmt.Errorf("distance %+v is not below its bound", spec)
		}
	}
	for _, spec := range building.DistanceGreaterThan {
		if spec.Hard && distance(spec) <= spec.Bound {
			return fmt.Errorf("distance %+v is not above its bound", spec)
		}
	}
	return nil
}

func verifyRoom(spec RoomSpec, room PlacedRoom, building Building) error {
	rect := room.Rect
	name := spec.Label.String()
	if rect.AX < 0 || rect.AY < 0 || rect.BX >= building.Width || rect.BY >= building.Length || rect.AX > rect.BX || rect.AY > rect.BY {
		return fmt.Errorf("room %v has an invalid rectangle %+v", name, rect)
	}
	if spec.Pin != nil && *spec.Pin != rect {
		return fmt.Errorf("room %v left its pin %+v", name, *spec.Pin)
	}
	if rect.Width() < spec.MinWidth || rect.Height() < spec.MinHeight {
		return fmt.Errorf("room %v is %dx%d, below its minimum %dx%d", name, rect.Width(), rect.Height(), spec.MinWidth, spec.MinHeight)
	}
	if room.Area != rect.Width()*rect.Height() || room.Area < spec.MinArea {
		return fmt.Errorf("room %v has area %d, want %d and at least %d", name, room.Area, rect.Width()*rect.Height(), spec.MinArea)
	}
	if spec.Sunlit && !lo.SomeBy([]Edge{Top, Bottom, Left, Right}, func(edge Edge) bool { return onEdge(rect, edge, building) }) {
		return fmt.Errorf("room %v is not sunlit", name)
	}
	if spec.GoldenRatio && 10*max(rect.Width(), rect.Height()) != 16*min(rect.Width(), rect.Height()) {
		return fmt.Errorf("room %v is %dx%d, not golden", name, rect.Width(), rect.Height())
	}
	return nil
}

// bandCells returns the in-grid cells right outside the rectangle's sides, corners excluded.
func bandCells(rect Rect, rows, cols int) [][2]int {
	cells := [][2]int{}
	for y := rect.AY; y <= rect.BY; y++ {
		cells = append(cells, [2]int{rect.AX - 1, y}, [2]int{rect.BX + 1, y})
	}
	for x := rect.AX; x <= rect.BX; x++ {
		cells = append(cells, [2]int{x, rect.AY - 1}, [2]int{x, rect.BY + 1})
	}
	return lo.Filter(cells, func(cell [2]int, _ int) bool {
		return cell[0] >= 0 && cell[0] < rows && cell[1] >= 0 && cell[1] < cols
	})
}

func onEdge(rect Rect, edge Edge, building Building) bool {
	switch edge {
	case Top:
		return rect.AX == 0
	case Bottom:
		return rect.BX == building.Width-1
	case Left:
		return rect.AY == 0
	default:
		return rect.BY == building.Length-1
	}
}

func sharesWall(a, c Rect) bool {
	rowsOverlap := a.AX <= c.BX && c.AX <= a.BX
	colsOverlap := a.AY <= c.BY && c.AY <= a.BY
	rowsContiguous := a.BX+1 == c.AX || c.BX+1 == a.AX
	colsContiguous := a.BY+1 == c.AY || c.BY+1 == a.AY
	return (rowsOverlap && colsContiguous) || (colsOverlap && rowsContiguous)
}

// connected reports whether the rectangles form one component under wall sharing.
func connected(rects []Rect) bool {
	if len(rects) == 0 {
		return true
	}
	reached := map[int]bool{0: true}
	queue := []int{0}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for next := range rects {
			if !reached[next] && sharesWall(rects[current], rects[next]) {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(reached) == len(rects)
}

func manhattan(a, c Rect) int {
	ax, ay := (a.AX+a.BX)/2, (a.AY+a.BY)/2
	cx, cy := (c.AX+c.BX)/2, (c.AY+c.BY)/2
	return abs(ax-cx) + abs(ay-cy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
