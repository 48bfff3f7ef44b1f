package model

import (
	"fmt"

	"github.com/limaJavier/floorplan/pkg/cp"
)

// EnsureApartmentSymmetry mirrors apartmentB onto apartmentA across the vertical line y = axis.
// Rooms are matched by position, so both apartments must list their rooms in the same order.
func EnsureApartmentSymmetry(b *cp.Builder, apartmentA, apartmentB []*Room, axis int) error {
	if len(apartmentA) != len(apartmentB) {
		return fmt.Errorf("symmetric apartments must have the same number of rooms: %d != %d", len(apartmentA), len(apartmentB))
	}
	for i, roomA := range apartmentA {
		roomB := apartmentB[i]
		b.AddEquality(cp.NewLinearExpr().AddSum(roomB.AY, roomA.BY), constant(2*axis))
		b.AddEquality(cp.NewLinearExpr().AddSum(roomA.AY, roomB.BY), constant(2*axis))
		b.AddEquality(roomB.AX, roomA.AX)
		b.AddEquality(roomB.BX, roomA.BX)
	}
	return nil
}

// EnsureEqualAreas gives the i-th room of every apartment the area of the i-th room of the first one.
func EnsureEqualAreas(b *cp.Builder, apartments [][]*Room) error {
	if len(apartments) == 0 {
		return nil
	}
	first := apartments[0]
	for _, apartment := range apartments[1:] {
		if len(apartment) != len(first) {
			return fmt.Errorf("apartments of the same type must have the same number of rooms: %d != %d", len(first), len(apartment))
		}
		for i, room := range apartment {
			b.AddEquality(room.Area, first[i].Area)
		}
	}
	return nil
}
