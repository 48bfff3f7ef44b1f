package sat

import (
	"fmt"
	"strings"

	"github.com/crillab/gophersat/solver"
)

// PB is a pseudo-boolean instance: every constraint reads sum(weights[i] * lits[i]) >= atLeast
// with positive weights, literals being 1-based signed variable indices.
type PB struct {
	Variables   int
	Constraints []solver.PBConstr
	CostLits    []int
	CostWeights []int
}

func (pb PB) clone() PB {
	return PB{
		Variables:   pb.Variables,
		Constraints: append([]solver.PBConstr(nil), pb.Constraints...),
		CostLits:    pb.CostLits,
		CostWeights: pb.CostWeights,
	}
}

// ToOPB renders the instance in the OPB format of the pseudo-boolean competitions.
func (pb PB) ToOPB() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", pb.Variables, len(pb.Constraints))
	if len(pb.CostLits) > 0 {
		builder.WriteString("min:")
		writeTerms(&builder, pb.CostLits, pb.CostWeights)
		builder.WriteString(" ;\n")
	}
	for _, constr := range pb.Constraints {
		writeTerms(&builder, constr.Lits, constr.Weights)
		fmt.Fprintf(&builder, " >= %d ;\n", constr.AtLeast)
	}
	return builder.String()
}

func writeTerms(builder *strings.Builder, lits, weights []int) {
	for i, lit := range lits {
		weight := 1
		if weights != nil {
			weight = weights[i]
		}
		if lit < 0 {
			fmt.Fprintf(builder, " +%d ~x%d", weight, -lit)
		} else {
			fmt.Fprintf(builder, " +%d x%d", weight, lit)
		}
	}
}
