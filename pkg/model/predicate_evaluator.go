package model

// requirement names a room category some room must share a wall with
type requirement struct {
	category Category
	// Instance the neighbor must carry, 0 when any instance does
	pairedWith int
}

type predicateEvaluator interface {
	// Returns the categories the room must touch, in rule order
	Requirements(room Label) []requirement

	// Checks whether the candidate label can fulfill the room's requirement: same category, same apartment
	// (or a building-wide label) and, for paired requirements, the paired instance
	Satisfies(candidate, room Label, req requirement) bool

	// Checks whether two labels belong to the same apartment
	SameApartment(label1, label2 Label) bool
}
