package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	EntranceScopeCorridors = "corridors"
	EntranceScopeRooms     = "rooms"
)

type RawRoom struct {
	Category  string
	MinArea   int
	MinHeight int
	MinWidth  int
	// Instance number, assigned in order of appearance per category when 0
	Instance int
	// Bedroom instance a dressing room or a private bathroom belongs to, its own instance when 0
	PairedWith  int
	Common      bool
	Sunlit      bool
	GoldenRatio bool
	Pin         *Rect
}

type RawApartment struct {
	Rooms []RawRoom
}

type OpenArea struct {
	Left, Right, Top, Bottom bool
}

// Edges returns the enabled borders.
func (area OpenArea) Edges() []Edge {
	edges := []Edge{}
	if area.Top {
		edges = append(edges, Top)
	}
	if area.Bottom {
		edges = append(edges, Bottom)
	}
	if area.Left {
		edges = append(edges, Left)
	}
	if area.Right {
		edges = append(edges, Right)
	}
	return edges
}

// DistanceSpec compares the distance between two rooms of an apartment with a bound. Indices are 0-based
// positions in the building's apartment and room lists. Soft specs are rewarded by the objective, hard
// ones must hold.
type DistanceSpec struct {
	Apartment int
	RoomA     int
	RoomB     int
	Bound     int
	Hard      bool
}

// Building is the declarative description of a floor.
type Building struct {
	Width  int // rows
	Length int // columns

	Apartments []RawApartment
	// Number of building hallways, one per apartment when 0
	Hallways  int
	Elevator  *Rect
	Stairwell *Rect

	OpenArea              OpenArea
	FaceOpenArea          bool
	EqualElevatorDistance bool

	SymmetricApartments bool
	// Pairs of apartment indices mirrored across the symmetry axis
	SymmetricPairs [][]int
	// Column of the symmetry axis, (Length-1)/2 when nil
	SymmetryAxis *int
	// Groups of apartment indices whose rooms share their areas
	SameTypeApartments [][]int

	DistanceLessThan    []DistanceSpec
	DistanceGreaterThan []DistanceSpec

	// Rooms that may open on a hallway: corridors (default) or every room of the apartment
	EntranceScope  string
	ExactAdjacency bool
}

type InputError struct {
	Field  string
	Reason string
}

func (err InputError) Error() string {
	return fmt.Sprintf("invalid building: %v: %v", err.Field, err.Reason)
}

func InputFromJson(file string) (Building, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Building{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Building{}, err
	}
	return ProcessRawInput(inputJson)
}

func InputFromYaml(file string) (Building, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Building{}, err
	}
	var inputYaml map[string]any
	if err := yaml.Unmarshal(bytes, &inputYaml); err != nil {
		return Building{}, err
	}
	return ProcessRawInput(inputYaml)
}

// InputFromFile picks the decoder from the file extension.
func InputFromFile(file string) (Building, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return InputFromYaml(file)
	default:
		return InputFromJson(file)
	}
}

// ProcessRawInput decodes a generic document into a Building and validates it.
func ProcessRawInput(raw map[string]any) (Building, error) {
	var building Building
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &building,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Building{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Building{}, fmt.Errorf("cannot decode building: %w", err)
	}
	if err := building.Validate(); err != nil {
		return Building{}, err
	}
	return building, nil
}

func (building Building) Validate() error {
	if building.Width < 1 || building.Length < 1 {
		return InputError{"width/length", fmt.Sprintf("building must be at least 1x1, got %dx%d", building.Width, building.Length)}
	}
	if len(building.Apartments) == 0 {
		return InputError{"apartments", "at least one apartment is required"}
	}
	if building.Hallways < 0 {
		return InputError{"hallways", "must not be negative"}
	}

	apartments, _, err := building.Specs()
	if err != nil {
		return err
	}

	for _, pin := range []*Rect{building.Elevator, building.Stairwell} {
		if err := building.validatePin("shared", pin); err != nil {
			return err
		}
	}

	apartmentIndex := func(field string, index int) error {
		if index < 0 || index >= len(apartments) {
			return InputError{field, fmt.Sprintf("apartment %d out of range [0, %d)", index, len(apartments))}
		}
		return nil
	}

	for i, pair := range building.SymmetricPairs {
		field := fmt.Sprintf("symmetricPairs[%d]", i)
		if len(pair) != 2 {
			return InputError{field, "a pair has exactly two apartments"}
		}
		for _, index := range pair {
			if err := apartmentIndex(field, index); err != nil {
				return err
			}
		}
		if len(apartments[pair[0]]) != len(apartments[pair[1]]) {
			return InputError{field, "mirrored apartments must have the same number of rooms"}
		}
	}
	if building.SymmetricApartments && len(building.SymmetricPairs) == 0 && len(apartments) < 2 {
		return InputError{"symmetricApartments", "needs at least two apartments"}
	}
	if axis := building.SymmetryAxis; axis != nil && (*axis < 0 || *axis >= building.Length) {
		return InputError{"symmetryAxis", fmt.Sprintf("column %d out of range [0, %d)", *axis, building.Length)}
	}

	for i, group := range building.SameTypeApartments {
		field := fmt.Sprintf("sameTypeApartments[%d]", i)
		for _, index := range group {
			if err := apartmentIndex(field, index); err != nil {
				return err
			}
			if len(apartments[index]) != len(apartments[group[0]]) {
				return InputError{field, "apartments of the same type must have the same number of rooms"}
			}
		}
	}

	distances := map[string][]DistanceSpec{
		"distanceLessThan":    building.DistanceLessThan,
		"distanceGreaterThan": building.DistanceGreaterThan,
	}
	for name, specs := range distances {
		for i, spec := range specs {
			field := fmt.Sprintf("%v[%d]", name, i)
			if err := apartmentIndex(field, spec.Apartment); err != nil {
				return err
			}
			rooms := len(apartments[spec.Apartment])
			if spec.RoomA < 0 || spec.RoomA >= rooms || spec.RoomB < 0 || spec.RoomB >= rooms {
				return InputError{field, fmt.Sprintf("room out of range [0, %d)", rooms)}
			}
			if spec.Bound < 0 {
				return InputError{field, "bound must not be negative"}
			}
		}
	}

	if !lo.Contains([]string{"", EntranceScopeCorridors, EntranceScopeRooms}, building.EntranceScope) {
		return InputError{"entranceScope", fmt.Sprintf("unknown scope %q", building.EntranceScope)}
	}
	return nil
}

func (building Building) validatePin(field string, pin *Rect) error {
	if pin == nil {
		return nil
	}
	if pin.AX < 0 || pin.AY < 0 || pin.BX >= building.Width || pin.BY >= building.Length || pin.AX > pin.BX || pin.AY > pin.BY {
		return InputError{field, fmt.Sprintf("pin %+v does not fit a %dx%d building", *pin, building.Width, building.Length)}
	}
	return nil
}

// Specs resolves the raw rooms into labeled specs: the rooms of every apartment in input order, then the
// building-wide rooms (hallways, elevator and stairwell).
func (building Building) Specs() ([][]RoomSpec, []RoomSpec, error) {
	apartments := make([][]RoomSpec, 0, len(building.Apartments))
	for i, rawApartment := range building.Apartments {
		apartment, err := building.apartmentSpecs(i+1, rawApartment)
		if err != nil {
			return nil, nil, err
		}
		apartments = append(apartments, apartment)
	}

	hallways := building.Hallways
	if hallways == 0 {
		hallways = len(building.Apartments)
	}
	shared := make([]RoomSpec, 0, hallways+2)
	for i := range hallways {
		shared = append(shared, RoomSpec{Label: Label{Category: Hallway, Instance: i + 1}})
	}
	shared = append(shared,
		RoomSpec{Label: Label{Category: Elevator, Instance: 1}, Pin: building.Elevator},
		RoomSpec{Label: Label{Category: Stairwell, Instance: 1}, Pin: building.Stairwell},
	)
	return apartments, shared, nil
}

func (building Building) apartmentSpecs(apartment int, rawApartment RawApartment) ([]RoomSpec, error) {
	if len(rawApartment.Rooms) == 0 {
		return nil, InputError{fmt.Sprintf("apartments[%d]", apartment-1), "an apartment needs at least one room"}
	}

	instances := make(map[Category]int)
	seen := make(map[string]bool)
	specs := make([]RoomSpec, 0, len(rawApartment.Rooms))
	for j, raw := range rawApartment.Rooms {
		field := fmt.Sprintf("apartments[%d].rooms[%d]", apartment-1, j)

		category, err := ParseCategory(raw.Category)
		if err != nil {
			return nil, InputError{field, err.Error()}
		}
		if category.Shared() {
			return nil, InputError{field, fmt.Sprintf("%v is a building-wide room", category)}
		}
		if raw.MinArea < 0 || raw.MinHeight < 0 || raw.MinWidth < 0 {
			return nil, InputError{field, "minimums must not be negative"}
		}
		if raw.Instance < 0 || raw.PairedWith < 0 {
			return nil, InputError{field, "instance and pairedWith must not be negative"}
		}
		if err := building.validatePin(field, raw.Pin); err != nil {
			return nil, err
		}

		instance := raw.Instance
		if instance == 0 {
			instances[category]++
			instance = instances[category]
		}
		label := Label{
			Category:  category,
			Apartment: apartment,
			Instance:  instance,
			Common:    raw.Common && category == MinorBathroom,
		}
		if category == Dressing || (category == MinorBathroom && !label.Common) {
			label.PairedWith = instance
			if raw.PairedWith != 0 {
				label.PairedWith = raw.PairedWith
			}
		}
		if seen[label.String()] {
			return nil, InputError{field, fmt.Sprintf("duplicate room %v", label)}
		}
		seen[label.String()] = true

		specs = append(specs, RoomSpec{
			Label:       label,
			MinArea:     raw.MinArea,
			MinHeight:   raw.MinHeight,
			MinWidth:    raw.MinWidth,
			Sunlit:      raw.Sunlit || category == SunRoom,
			GoldenRatio: raw.GoldenRatio,
			Pin:         raw.Pin,
		})
	}

	// A paired room needs its bedroom
	for j, spec := range specs {
		if spec.Label.PairedWith == 0 {
			continue
		}
		if !lo.ContainsBy(specs, func(other RoomSpec) bool {
			return other.Label.Category == Bedroom && other.Label.Instance == spec.Label.PairedWith
		}) {
			field := fmt.Sprintf("apartments[%d].rooms[%d]", apartment-1, j)
			return nil, InputError{field, fmt.Sprintf("%v is paired with missing bedroom %d", spec.Label, spec.Label.PairedWith)}
		}
	}
	return specs, nil
}
