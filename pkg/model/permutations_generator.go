package model

type permutationGenerator interface {
	// Attributes' order in the permutation parameter is the following: Row, Column, Candidate (a domain index).
	// A constraint must accept a permutation whose attribute it depends on is still unset (-1): the generator
	// evaluates constraints on every prefix to prune the search early
	//
	// Example:
	//
	//	generator := newPermutationGenerator(rows, cols, domain.Size())
	//
	//	permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
	//		func(permutation []int) bool {
	//			// Check "permutation[2] == -1", since the predicate relies on the candidate
	//			return permutation[2] == -1 || permutation[2] != 0
	//		},
	//	})
	ConstrainedPermutations(constraints []func(permutation []int) bool) [][3]int
}

func newPermutationGenerator(rows, cols, candidates int) permutationGenerator {
	return &permutationGeneratorImplementation{rows, cols, candidates}
}

type permutationGeneratorImplementation struct {
	rows, cols, candidates int
}

func (generator permutationGeneratorImplementation) ConstrainedPermutations(constraints []func(permutation []int) bool) [][3]int {
	permutations := make([][3]int, 0, generator.rows*generator.cols)
	generator.constrainedPermutations(
		constraints,
		[]int{generator.rows, generator.cols, generator.candidates},
		0,
		[]int{-1, -1, -1},
		&permutations,
	)
	return permutations
}

func (generator permutationGeneratorImplementation) constrainedPermutations(
	constraints []func(permutation []int) bool,
	domains []int,
	currentDomain int,
	permutation []int,
	permutations *[][3]int) {

	if currentDomain >= len(domains) {
		*permutations = append(*permutations, [3]int{permutation[0], permutation[1], permutation[2]})
		return
	}

	for i := range domains[currentDomain] {
		permutation[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedPermutations(constraints, domains, currentDomain+1, permutation, permutations)
	}

	permutation[currentDomain] = -1
}
