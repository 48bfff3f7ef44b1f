package sat

import (
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOPB(t *testing.T) {
	//** Arrange
	pb := PB{
		Variables: 3,
		Constraints: []solver.PBConstr{
			solver.PropClause(1, -2),
			solver.GtEq([]int{1, 2, 3}, []int{2, 1, -3}, 1),
		},
		CostLits:    []int{2, -3},
		CostWeights: []int{4, 1},
	}

	//** Act
	opb := pb.ToOPB()

	//** Assert
	lines := strings.Split(strings.TrimSpace(opb), "\n")
	assert.Equal(t, []string{
		"* #variable= 3 #constraint= 2",
		"min: +4 x2 +1 ~x3 ;",
		" +1 x1 +1 ~x2 >= 1 ;",
		" +2 x1 +1 x2 +3 ~x3 >= 4 ;",
	}, lines)

	problem, err := solver.ParseOPB(strings.NewReader(opb))
	require.NoError(t, err)
	assert.Equal(t, 3, problem.NbVars)
}

func TestEncodedInstanceParses(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(-2, 9)
	y := b.NewIntVar(0, 4)
	flag := b.NewBoolVar()
	b.AddLessThan(x, y).OnlyEnforceIf(flag)
	b.AddMultiplicationEquality(b.NewIntVar(0, 16), y, y)
	b.Maximize(cp.NewLinearExpr().Add(x).AddTerm(flag, 3))
	model, err := b.Model()
	require.NoError(t, err)

	//** Act
	encoding, err := Encode(model)
	require.NoError(t, err)
	_, err = solver.ParseOPB(strings.NewReader(encoding.Instance().ToOPB()))

	//** Assert
	assert.NoError(t, err)
	assert.False(t, encoding.Unsat())
}
