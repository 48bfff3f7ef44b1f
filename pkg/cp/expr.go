package cp

import (
	"slices"
)

// LinearArgument is implemented by every value that can take part in a linear expression.
type LinearArgument interface {
	asLinearExpr() *LinearExpr
}

type IntVar struct {
	ind int
}

// Index returns the position of the variable inside its model.
func (v IntVar) Index() int {
	return v.ind
}

func (v IntVar) asLinearExpr() *LinearExpr {
	return &LinearExpr{vars: []int{v.ind}, coeffs: []int64{1}}
}

// BoolVar is a literal: a [0, 1] variable or its negation. Negated literals are stored as -ind-1.
type BoolVar struct {
	ind int
}

func (b BoolVar) Not() BoolVar {
	return BoolVar{ind: -b.ind - 1}
}

// Index returns the position of the underlying variable, regardless of polarity.
func (b BoolVar) Index() int {
	if b.ind < 0 {
		return -b.ind - 1
	}
	return b.ind
}

func (b BoolVar) Negated() bool {
	return b.ind < 0
}

func (b BoolVar) asLinearExpr() *LinearExpr {
	if b.Negated() {
		// not(b) = 1 - b
		return &LinearExpr{vars: []int{b.Index()}, coeffs: []int64{-1}, offset: 1}
	}
	return &LinearExpr{vars: []int{b.ind}, coeffs: []int64{1}}
}

type LinearExpr struct {
	vars   []int
	coeffs []int64
	offset int64
}

type Term struct {
	Var   int
	Coeff int64
}

func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstantExpr returns an expression holding only the given constant.
func NewConstantExpr(c int64) *LinearExpr {
	return &LinearExpr{offset: c}
}

func (e *LinearExpr) asLinearExpr() *LinearExpr {
	return e
}

func (e *LinearExpr) Add(arg LinearArgument) *LinearExpr {
	return e.AddTerm(arg, 1)
}

func (e *LinearExpr) AddTerm(arg LinearArgument, coeff int64) *LinearExpr {
	other := arg.asLinearExpr()
	for i, v := range other.vars {
		e.vars = append(e.vars, v)
		e.coeffs = append(e.coeffs, other.coeffs[i]*coeff)
	}
	e.offset += other.offset * coeff
	return e
}

func (e *LinearExpr) AddSum(args ...LinearArgument) *LinearExpr {
	for _, arg := range args {
		e.AddTerm(arg, 1)
	}
	return e
}

func (e *LinearExpr) AddWeightedSum(args []LinearArgument, coeffs []int64) *LinearExpr {
	for i, arg := range args {
		e.AddTerm(arg, coeffs[i])
	}
	return e
}

func (e *LinearExpr) AddConstant(c int64) *LinearExpr {
	e.offset += c
	return e
}

// Terms returns the expression with duplicated variables merged and null coefficients removed,
// sorted by variable index, together with its constant part.
func (e *LinearExpr) Terms() ([]Term, int64) {
	merged := make(map[int]int64, len(e.vars))
	for i, v := range e.vars {
		merged[v] += e.coeffs[i]
	}
	terms := make([]Term, 0, len(merged))
	for v, c := range merged {
		if c != 0 {
			terms = append(terms, Term{Var: v, Coeff: c})
		}
	}
	slices.SortFunc(terms, func(a, b Term) int { return a.Var - b.Var })
	return terms, e.offset
}

func (e *LinearExpr) evaluate(values []int64) int64 {
	value := e.offset
	for i, v := range e.vars {
		value += e.coeffs[i] * values[v]
	}
	return value
}

func copyExpr(arg LinearArgument) *LinearExpr {
	e := arg.asLinearExpr()
	return &LinearExpr{
		vars:   slices.Clone(e.vars),
		coeffs: slices.Clone(e.coeffs),
		offset: e.offset,
	}
}

// Difference returns a - b as a fresh expression.
func Difference(a, b LinearArgument) *LinearExpr {
	return NewLinearExpr().Add(a).AddTerm(b, -1)
}
