package model

import (
	"slices"

	"github.com/samber/lo"
)

// Wall-sharing rules per room category. Paired categories must touch the bedroom they belong to.
var defaultRules = map[Category][]Category{
	Dining:        {Kitchen},
	Kitchen:       {Duct},
	MainBathroom:  {Duct},
	Dressing:      {Bedroom},
	MinorBathroom: {Bedroom, Duct},
}

var pairedCategories = []Category{Dressing, MinorBathroom}

type predicateEvaluatorStandard struct {
	rules map[Category][]Category
}

func newPredicateEvaluator(rules map[Category][]Category) predicateEvaluator {
	if rules == nil {
		rules = defaultRules
	}
	return &predicateEvaluatorStandard{rules: rules}
}

func (evaluator *predicateEvaluatorStandard) Requirements(room Label) []requirement {
	// Circulation and building-wide rooms are free of rules
	if room.Category == Corridor || room.Category.Shared() {
		return nil
	}

	categories := slices.Clone(evaluator.rules[room.Category])

	// Private bathrooms and dressing rooms open on their bedroom, everything else on a corridor
	private := room.Category == Dressing || (room.Category == MinorBathroom && !room.Common)
	if !private {
		categories = append(categories, Corridor)
	}
	if room.Common {
		categories = lo.Without(categories, Bedroom)
	}

	return lo.Map(categories, func(category Category, _ int) requirement {
		req := requirement{category: category}
		if category == Bedroom && slices.Contains(pairedCategories, room.Category) {
			req.pairedWith = room.PairedWith
		}
		return req
	})
}

func (evaluator *predicateEvaluatorStandard) Satisfies(candidate, room Label, req requirement) bool {
	return candidate.Category == req.category &&
		(candidate.Apartment == 0 || evaluator.SameApartment(candidate, room)) &&
		(req.pairedWith == 0 || candidate.Instance == req.pairedWith)
}

func (evaluator *predicateEvaluatorStandard) SameApartment(label1, label2 Label) bool {
	return label1.Apartment == label2.Apartment
}
