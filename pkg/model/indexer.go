package model

// indexer gives a unique integer to every room label and vice versa; the integer is the value a grid
// cell takes when the room covers it
type indexer interface {
	// Returns the label's index, or -1 when the label is unknown
	Index(label Label) int
	// Returns the label behind an index
	Label(index int) Label
	// Returns every label in index order
	Labels() []Label
	// Returns the number of labels
	Size() int
}

func newIndexer() *Domain {
	return &Domain{
		labels: []Label{Background},
		index:  map[string]int{Background.String(): 0},
	}
}
