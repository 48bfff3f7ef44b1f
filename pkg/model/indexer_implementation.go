package model

import "fmt"

// Domain is the ordered list of labels a grid cell ranges over. The background always comes first
// and insertion order fixes the integer encoding.
type Domain struct {
	labels []Label
	index  map[string]int
}

func NewDomain() *Domain {
	return newIndexer()
}

func (domain *Domain) Add(label Label) (int, error) {
	key := label.String()
	if _, ok := domain.index[key]; ok {
		return 0, fmt.Errorf("duplicate label %v", key)
	}
	domain.labels = append(domain.labels, label)
	domain.index[key] = len(domain.labels) - 1
	return len(domain.labels) - 1, nil
}

func (domain *Domain) Index(label Label) int {
	if i, ok := domain.index[label.String()]; ok {
		return i
	}
	return -1
}

func (domain *Domain) Label(index int) Label {
	return domain.labels[index]
}

func (domain *Domain) Labels() []Label {
	return domain.labels
}

func (domain *Domain) Size() int {
	return len(domain.labels)
}

var _ indexer = (*Domain)(nil)
