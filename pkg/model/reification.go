package model

import (
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

// Every helper below returns a fresh literal equal (in both directions) to its condition.

func And(b *cp.Builder, terms ...cp.BoolVar) cp.BoolVar {
	r := b.NewBoolVar()
	b.AddBoolAnd(terms...).OnlyEnforceIf(r)
	b.AddBoolOr(negations(terms)...).OnlyEnforceIf(r.Not())
	return r
}

func Or(b *cp.Builder, terms ...cp.BoolVar) cp.BoolVar {
	r := b.NewBoolVar()
	b.AddBoolOr(terms...).OnlyEnforceIf(r)
	b.AddBoolAnd(negations(terms)...).OnlyEnforceIf(r.Not())
	return r
}

// Between reifies lo <= x <= hi; it is false whenever lo > hi.
func Between(b *cp.Builder, x, lo, hi cp.LinearArgument) cp.BoolVar {
	return And(b, LessOrEqual(b, lo, x), LessOrEqual(b, x, hi))
}

func Equal(b *cp.Builder, x, y cp.LinearArgument) cp.BoolVar {
	r := b.NewBoolVar()
	b.AddEquality(x, y).OnlyEnforceIf(r)
	b.AddNotEqual(x, y).OnlyEnforceIf(r.Not())
	return r
}

func LessOrEqual(b *cp.Builder, x, y cp.LinearArgument) cp.BoolVar {
	r := b.NewBoolVar()
	b.AddLessOrEqual(x, y).OnlyEnforceIf(r)
	b.AddGreaterThan(x, y).OnlyEnforceIf(r.Not())
	return r
}

func LessThan(b *cp.Builder, x, y cp.LinearArgument) cp.BoolVar {
	r := b.NewBoolVar()
	b.AddLessThan(x, y).OnlyEnforceIf(r)
	b.AddGreaterOrEqual(x, y).OnlyEnforceIf(r.Not())
	return r
}

func GreaterThan(b *cp.Builder, x, y cp.LinearArgument) cp.BoolVar {
	return LessThan(b, y, x)
}

// Sum returns a variable in [0, bound] equal to the sum of the arguments.
func Sum(b *cp.Builder, args []cp.LinearArgument, bound int64) cp.IntVar {
	sum := b.NewIntVar(0, bound)
	b.AddEquality(sum, cp.NewLinearExpr().AddSum(args...))
	return sum
}

// Count returns the number of true literals.
func Count(b *cp.Builder, literals []cp.BoolVar) cp.IntVar {
	return Sum(b, lo.Map(literals, func(l cp.BoolVar, _ int) cp.LinearArgument { return l }), int64(len(literals)))
}

func negations(literals []cp.BoolVar) []cp.BoolVar {
	return lo.Map(literals, func(l cp.BoolVar, _ int) cp.BoolVar { return l.Not() })
}
