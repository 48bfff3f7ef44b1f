package cp

import (
	"fmt"
	"math"
)

type ConstraintKind int

const (
	LinearConstraint ConstraintKind = iota
	NotEqualConstraint
	BoolOrConstraint
	BoolAndConstraint
	MultiplicationConstraint
	DivisionConstraint
	AbsConstraint
	MinConstraint
	MaxConstraint
)

func (kind ConstraintKind) String() string {
	return [...]string{"linear", "not-equal", "bool-or", "bool-and", "multiplication", "division", "abs", "min", "max"}[kind]
}

type Variable struct {
	Name   string
	Lo, Hi int64
}

// Constraint is an append-only record: once added to a Builder its content never changes,
// only the enforcement literals and the name can be set through the fluent methods.
type Constraint struct {
	name        string
	kind        ConstraintKind
	expr        *LinearExpr   // linear, not-equal, abs argument, division numerator
	lo, hi      int64         // linear bounds
	literals    []BoolVar     // bool-or, bool-and
	target      *LinearExpr   // multiplication, division, abs, min, max
	args        []*LinearExpr // multiplication factors, min/max operands
	divisor     int64
	enforcement []BoolVar
}

// OnlyEnforceIf makes the constraint hold only when all the given literals are true.
func (c *Constraint) OnlyEnforceIf(literals ...BoolVar) *Constraint {
	c.enforcement = append(c.enforcement, literals...)
	return c
}

func (c *Constraint) WithName(name string) *Constraint {
	c.name = name
	return c
}

type objective struct {
	expr     *LinearExpr
	maximize bool
}

// Builder accumulates variables and constraints. Nothing added to it is ever modified or removed.
type Builder struct {
	variables   []Variable
	constraints []*Constraint
	objective   *objective
	constants   map[int64]IntVar
}

func NewCpModelBuilder() *Builder {
	return &Builder{
		constants: make(map[int64]IntVar),
	}
}

func (b *Builder) NewIntVar(lo, hi int64) IntVar {
	b.variables = append(b.variables, Variable{Lo: lo, Hi: hi})
	return IntVar{ind: len(b.variables) - 1}
}

func (b *Builder) NewBoolVar() BoolVar {
	return BoolVar{ind: b.NewIntVar(0, 1).ind}
}

// NewConstant returns a pinned variable, shared between every caller asking for the same value.
func (b *Builder) NewConstant(value int64) IntVar {
	if v, ok := b.constants[value]; ok {
		return v
	}
	v := b.NewIntVar(value, value)
	b.variables[v.ind].Name = fmt.Sprintf("const_%d", value)
	b.constants[value] = v
	return v
}

func (b *Builder) TrueVar() BoolVar {
	return BoolVar{ind: b.NewConstant(1).ind}
}

func (b *Builder) FalseVar() BoolVar {
	return BoolVar{ind: b.NewConstant(0).ind}
}

// SetName labels a variable; names only matter for debugging output.
func (b *Builder) SetName(v LinearArgument, name string) {
	switch v := v.(type) {
	case IntVar:
		b.variables[v.ind].Name = name
	case BoolVar:
		b.variables[v.Index()].Name = name
	}
}

func (b *Builder) NumVars() int {
	return len(b.variables)
}

func (b *Builder) NumConstraints() int {
	return len(b.constraints)
}

func (b *Builder) add(c *Constraint) *Constraint {
	b.constraints = append(b.constraints, c)
	return c
}

// AddLinearConstraint adds lo <= expr <= hi. Use math.MinInt64 or math.MaxInt64 for a missing side.
func (b *Builder) AddLinearConstraint(expr LinearArgument, lo, hi int64) *Constraint {
	return b.add(&Constraint{kind: LinearConstraint, expr: copyExpr(expr), lo: lo, hi: hi})
}

func (b *Builder) AddEquality(left, right LinearArgument) *Constraint {
	return b.AddLinearConstraint(Difference(left, right), 0, 0)
}

func (b *Builder) AddNotEqual(left, right LinearArgument) *Constraint {
	return b.add(&Constraint{kind: NotEqualConstraint, expr: Difference(left, right)})
}

func (b *Builder) AddLessOrEqual(left, right LinearArgument) *Constraint {
	return b.AddLinearConstraint(Difference(left, right), math.MinInt64, 0)
}

func (b *Builder) AddLessThan(left, right LinearArgument) *Constraint {
	return b.AddLinearConstraint(Difference(left, right), math.MinInt64, -1)
}

func (b *Builder) AddGreaterOrEqual(left, right LinearArgument) *Constraint {
	return b.AddLinearConstraint(Difference(left, right), 0, math.MaxInt64)
}

func (b *Builder) AddGreaterThan(left, right LinearArgument) *Constraint {
	return b.AddLinearConstraint(Difference(left, right), 1, math.MaxInt64)
}

// AddBoolOr adds the clause l1 or ... or ln. An empty clause is false.
func (b *Builder) AddBoolOr(literals ...BoolVar) *Constraint {
	return b.add(&Constraint{kind: BoolOrConstraint, literals: append([]BoolVar(nil), literals...)})
}

// AddBoolAnd requires every literal to be true. An empty conjunction is true.
func (b *Builder) AddBoolAnd(literals ...BoolVar) *Constraint {
	return b.add(&Constraint{kind: BoolAndConstraint, literals: append([]BoolVar(nil), literals...)})
}

// AddImplication adds a => c.
func (b *Builder) AddImplication(a, c BoolVar) *Constraint {
	return b.AddBoolOr(a.Not(), c)
}

// AddMultiplicationEquality adds target == left * right.
func (b *Builder) AddMultiplicationEquality(target LinearArgument, left, right IntVar) *Constraint {
	return b.add(&Constraint{
		kind:   MultiplicationConstraint,
		target: copyExpr(target),
		args:   []*LinearExpr{copyExpr(left), copyExpr(right)},
	})
}

// AddDivisionEquality adds target == num / denom, rounding towards zero.
func (b *Builder) AddDivisionEquality(target, num LinearArgument, denom int64) *Constraint {
	return b.add(&Constraint{
		kind:    DivisionConstraint,
		target:  copyExpr(target),
		expr:    copyExpr(num),
		divisor: denom,
	})
}

func (b *Builder) AddAbsEquality(target, expr LinearArgument) *Constraint {
	return b.add(&Constraint{kind: AbsConstraint, target: copyExpr(target), expr: copyExpr(expr)})
}

func (b *Builder) AddMinEquality(target LinearArgument, exprs ...LinearArgument) *Constraint {
	return b.add(&Constraint{kind: MinConstraint, target: copyExpr(target), args: copyExprs(exprs)})
}

func (b *Builder) AddMaxEquality(target LinearArgument, exprs ...LinearArgument) *Constraint {
	return b.add(&Constraint{kind: MaxConstraint, target: copyExpr(target), args: copyExprs(exprs)})
}

func (b *Builder) Minimize(expr LinearArgument) {
	b.objective = &objective{expr: copyExpr(expr)}
}

func (b *Builder) Maximize(expr LinearArgument) {
	b.objective = &objective{expr: copyExpr(expr), maximize: true}
}

func copyExprs(args []LinearArgument) []*LinearExpr {
	exprs := make([]*LinearExpr, len(args))
	for i, arg := range args {
		exprs[i] = copyExpr(arg)
	}
	return exprs
}
