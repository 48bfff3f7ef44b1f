package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "testdata/"

func TestInputFromJson(t *testing.T) {
	//** Act
	building, err := InputFromJson(testDirectory + "building.json")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 6, building.Width)
	assert.Equal(t, 9, building.Length)
	assert.Equal(t, &Rect{AX: 0, AY: 4, BX: 0, BY: 4}, building.Elevator)
	assert.Equal(t, OpenArea{Top: true}, building.OpenArea)
	assert.Equal(t, []Edge{Top}, building.OpenArea.Edges())
	assert.Equal(t, 4, *building.SymmetryAxis)
	require.Len(t, building.Apartments, 2)
	assert.Len(t, building.Apartments[1].Rooms, 5)
	assert.Equal(t, DistanceSpec{Apartment: 1, RoomA: 0, RoomB: 2, Bound: 6}, building.DistanceLessThan[1])

	apartments, shared, err := building.Specs()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"K_AP1_1", "CR_AP1_1", "BD_AP1_1", "MNB_AP1_1", "MNB_AP1_#2"},
		lo.Map(apartments[0], func(spec RoomSpec, _ int) string { return spec.Label.String() }),
	)
	assert.Equal(t,
		[]string{"HW_1", "ELR", "SW"},
		lo.Map(shared, func(spec RoomSpec, _ int) string { return spec.Label.String() }),
	)
	assert.Equal(t, 1, apartments[1][3].Label.PairedWith)
	assert.Equal(t, 0, apartments[1][4].Label.PairedWith)
	assert.Equal(t, building.Elevator, shared[1].Pin)
}

func TestInputFromYaml(t *testing.T) {
	//** Act
	building, err := InputFromFile(testDirectory + "building.yaml")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, 4, building.Width)
	assert.Equal(t, EntranceScopeRooms, building.EntranceScope)
	assert.True(t, building.ExactAdjacency)
	assert.True(t, building.DistanceGreaterThan[0].Hard)

	apartments, shared, err := building.Specs()
	require.NoError(t, err)
	// One hallway per apartment by default
	assert.Len(t, shared, 3)
	room := apartments[0][1]
	assert.Equal(t, Kitchen, room.Label.Category)
	assert.Equal(t, 2, room.MinHeight)
	assert.True(t, apartments[0][4].Sunlit)
	assert.False(t, apartments[0][0].Sunlit)
}

func TestInputErrors(t *testing.T) {
	scenarios := map[string]string{
		"unknown field":          `{"width": 2, "length": 2, "floors": 3, "apartments": [{"rooms": [{"category": "CR"}]}]}`,
		"bad dimensions":         `{"width": 0, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}]}`,
		"no apartments":          `{"width": 2, "length": 2}`,
		"empty apartment":        `{"width": 2, "length": 2, "apartments": [{"rooms": []}]}`,
		"unknown category":       `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "XX"}]}]}`,
		"shared category":        `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "HW"}]}]}`,
		"pin out of the grid":    `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR", "pin": {"ax": 0, "ay": 0, "bx": 2, "by": 0}}]}]}`,
		"missing bedroom":        `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "DR"}]}]}`,
		"duplicate room":         `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR", "instance": 1}, {"category": "CR", "instance": 1}]}]}`,
		"apartment out of range": `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}], "distanceLessThan": [{"apartment": 1, "roomA": 0, "roomB": 0, "bound": 1}]}`,
		"room out of range":      `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}], "distanceGreaterThan": [{"apartment": 0, "roomA": 0, "roomB": 3, "bound": 1}]}`,
		"uneven mirror":          `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}, {"rooms": []}], "symmetricPairs": [[0, 1]]}`,
		"axis out of range":      `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}], "symmetryAxis": 2}`,
		"unknown scope":          `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "CR"}]}], "entranceScope": "kitchens"}`,
		"negative instance":      `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "BD", "instance": -1}]}]}`,
		"negative pairing":       `{"width": 2, "length": 2, "apartments": [{"rooms": [{"category": "BD"}, {"category": "DR", "pairedWith": -1}]}]}`,
	}

	for name, document := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			file := filepath.Join(t.TempDir(), "building.json")
			require.NoError(t, os.WriteFile(file, []byte(document), 0666))

			//** Act
			_, err := InputFromJson(file)

			//** Assert
			assert.Error(t, err)
		})
	}
}

func TestInputErrorIsTyped(t *testing.T) {
	//** Act
	err := Building{Width: 1, Length: 1}.Validate()

	//** Assert
	var inputError InputError
	require.ErrorAs(t, err, &inputError)
	assert.Equal(t, "apartments", inputError.Field)
}

func TestNegativeInstanceNumbers(t *testing.T) {
	scenarios := map[string]RawRoom{
		"instance":   {Category: "BD", Instance: -1},
		"pairedWith": {Category: "DR", PairedWith: -1},
	}

	for name, room := range scenarios {
		t.Run(name, func(t *testing.T) {
			//** Arrange
			building := Building{
				Width:      2,
				Length:     2,
				Apartments: []RawApartment{{Rooms: []RawRoom{{Category: "BD"}, room}}},
			}

			//** Act
			err := building.Validate()

			//** Assert
			var inputError InputError
			require.ErrorAs(t, err, &inputError)
			assert.Equal(t, "apartments[0].rooms[1]", inputError.Field)
			assert.Contains(t, inputError.Reason, "must not be negative")
		})
	}
}
