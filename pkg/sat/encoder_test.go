package sat

import (
	"context"
	"testing"

	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, b *cp.Builder, params Parameters) Response {
	t.Helper()
	model, err := b.Model()
	require.NoError(t, err)
	response, err := NewGophersatSolver().Solve(context.Background(), model, params)
	require.NoError(t, err)
	return response
}

func TestLinearSystem(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(0, 5)
	y := b.NewIntVar(0, 5)
	b.AddLinearConstraint(cp.NewLinearExpr().AddSum(x, y), 7, 7)
	b.AddEquality(cp.Difference(x, y), b.NewConstant(1))

	//** Act
	response := solve(t, b, Parameters{})

	//** Assert
	require.Equal(t, cp.Optimal, response.Status)
	require.Len(t, response.Solutions, 1)
	assert.Equal(t, int64(4), response.Solutions[0].Value(x))
	assert.Equal(t, int64(3), response.Solutions[0].Value(y))
}

func TestDomains(t *testing.T) {
	t.Run("Upper bound which is not a power of two", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		x := b.NewIntVar(0, 5)
		b.Maximize(x)

		response := solve(t, b, Parameters{})

		require.Equal(t, cp.Optimal, response.Status)
		assert.Equal(t, int64(5), response.Solutions[0].Value(x))
		assert.Equal(t, int64(5), response.Solutions[0].ObjectiveValue())
	})

	t.Run("Negative lower bound", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		x := b.NewIntVar(-3, 2)
		b.Minimize(x)

		response := solve(t, b, Parameters{})

		require.Equal(t, cp.Optimal, response.Status)
		assert.Equal(t, int64(-3), response.Solutions[0].Value(x))
	})
}

func TestMultiplication(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(0, 6)
	y := b.NewIntVar(0, 6)
	product := b.NewIntVar(0, 36)
	b.AddMultiplicationEquality(product, x, y)
	b.AddLessOrEqual(cp.NewLinearExpr().AddSum(x, y), b.NewConstant(6))
	b.Maximize(product)

	//** Act
	response := solve(t, b, Parameters{})

	//** Assert
	require.Equal(t, cp.Optimal, response.Status)
	assert.Equal(t, int64(9), response.Solutions[0].Value(product))
	assert.Equal(t, int64(3), response.Solutions[0].Value(x))
}

func TestDivision(t *testing.T) {
	for _, tc := range []struct {
		numerator, quotient int64
	}{
		{7, 3},
		{-7, -3},
		{0, 0},
		{6, 3},
	} {
		b := cp.NewCpModelBuilder()
		numerator := b.NewIntVar(-8, 8)
		quotient := b.NewIntVar(-5, 5)
		b.AddEquality(numerator, b.NewConstant(tc.numerator))
		b.AddDivisionEquality(quotient, numerator, 2)

		response := solve(t, b, Parameters{})

		require.Equal(t, cp.Optimal, response.Status)
		assert.Equal(t, tc.quotient, response.Solutions[0].Value(quotient), "%d / 2", tc.numerator)
	}
}

func TestAbsMinMax(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(-4, 4)
	abs := b.NewIntVar(0, 4)
	lowest := b.NewIntVar(-10, 10)
	highest := b.NewIntVar(-10, 10)
	b.AddEquality(x, b.NewConstant(-3))
	b.AddAbsEquality(abs, x)
	b.AddMinEquality(lowest, x, abs, b.NewConstant(2))
	b.AddMaxEquality(highest, x, abs, b.NewConstant(2))

	//** Act
	response := solve(t, b, Parameters{})

	//** Assert
	require.Equal(t, cp.Optimal, response.Status)
	solution := response.Solutions[0]
	assert.Equal(t, int64(3), solution.Value(abs))
	assert.Equal(t, int64(-3), solution.Value(lowest))
	assert.Equal(t, int64(3), solution.Value(highest))
}

func TestNotEqual(t *testing.T) {
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(0, 2)
	b.AddNotEqual(x, b.NewConstant(0))
	b.AddNotEqual(x, b.NewConstant(2))

	response := solve(t, b, Parameters{})

	require.Equal(t, cp.Optimal, response.Status)
	assert.Equal(t, int64(1), response.Solutions[0].Value(x))
}

func TestEnforcement(t *testing.T) {
	//** Arrange
	b := cp.NewCpModelBuilder()
	x := b.NewIntVar(0, 7)
	flag := b.NewBoolVar()
	b.AddGreaterOrEqual(x, b.NewConstant(5)).OnlyEnforceIf(flag)
	b.AddLessOrEqual(x, b.NewConstant(1)).OnlyEnforceIf(flag.Not())
	b.Maximize(cp.NewLinearExpr().AddTerm(flag.Not(), 10).AddTerm(x, -1))

	//** Act
	response := solve(t, b, Parameters{})

	//** Assert
	require.Equal(t, cp.Optimal, response.Status)
	solution := response.Solutions[0]
	assert.False(t, solution.BooleanValue(flag))
	assert.Equal(t, int64(0), solution.Value(x))
	assert.Equal(t, int64(10), solution.ObjectiveValue())
}

func TestInfeasible(t *testing.T) {
	t.Run("Detected while encoding", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		x := b.NewIntVar(0, 3)
		b.AddGreaterOrEqual(x, b.NewConstant(5))

		response := solve(t, b, Parameters{})

		assert.Equal(t, cp.Infeasible, response.Status)
		assert.Empty(t, response.Solutions)
	})

	t.Run("Detected by the engine", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		p, q := b.NewBoolVar(), b.NewBoolVar()
		b.AddBoolOr(p, q)
		b.AddBoolOr(p.Not(), q)
		b.AddBoolOr(p, q.Not())
		b.AddBoolOr(p.Not(), q.Not())

		response := solve(t, b, Parameters{})

		assert.Equal(t, cp.Infeasible, response.Status)
	})
}

func TestEnumeration(t *testing.T) {
	t.Run("Satisfaction problem", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		b.NewIntVar(0, 3)

		response := solve(t, b, Parameters{MaxSolutions: 10})

		assert.Equal(t, cp.Optimal, response.Status)
		assert.Len(t, response.Solutions, 4)
	})

	t.Run("Only optimal solutions", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		x := b.NewIntVar(0, 3)
		b.NewBoolVar()
		b.Maximize(x)

		response := solve(t, b, Parameters{MaxSolutions: 10})

		require.Len(t, response.Solutions, 2)
		for _, solution := range response.Solutions {
			assert.Equal(t, int64(3), solution.Value(x))
		}
	})

	t.Run("Callback stops the enumeration", func(t *testing.T) {
		b := cp.NewCpModelBuilder()
		b.NewIntVar(0, 7)
		seen := 0

		response := solve(t, b, Parameters{
			MaxSolutions: 10,
			OnSolution: func(cp.Solution) bool {
				seen++
				return seen < 2
			},
		})

		assert.Len(t, response.Solutions, 2)
		assert.Equal(t, 2, seen)
	})
}
