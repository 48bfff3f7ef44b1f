package cp

import (
	"fmt"
	"math"
	"slices"
)

// ModelError reports a structurally invalid model, e.g. a reference to an unknown variable.
type ModelError struct {
	Constraint int
	Reason     string
}

func (err ModelError) Error() string {
	if err.Constraint < 0 {
		return fmt.Sprintf("invalid model: %v", err.Reason)
	}
	return fmt.Sprintf("invalid model: constraint %d: %v", err.Constraint, err.Reason)
}

// Model is a frozen view over a Builder, handed to the solver backends.
type Model struct {
	variables   []Variable
	constraints []*Constraint
	objective   *objective
}

// Model validates the builder and returns a snapshot of it. Constraints added afterwards are not
// visible through the snapshot.
func (b *Builder) Model() (*Model, error) {
	m := &Model{
		variables:   slices.Clone(b.variables),
		constraints: slices.Clone(b.constraints),
		objective:   b.objective,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) NumVars() int {
	return len(m.variables)
}

func (m *Model) Variable(i int) Variable {
	return m.variables[i]
}

func (m *Model) Constraints() []*Constraint {
	return m.constraints
}

func (m *Model) HasObjective() bool {
	return m.objective != nil
}

// Objective returns the objective expression and whether it is maximized.
func (m *Model) Objective() (*LinearExpr, bool) {
	if m.objective == nil {
		return nil, false
	}
	return m.objective.expr, m.objective.maximize
}

func (m *Model) Validate() error {
	for i, v := range m.variables {
		if v.Lo > v.Hi {
			return ModelError{Constraint: -1, Reason: fmt.Sprintf("variable %d has an empty domain [%d, %d]", i, v.Lo, v.Hi)}
		}
	}
	checkExpr := func(ci int, e *LinearExpr) error {
		for _, v := range e.vars {
			if v < 0 || v >= len(m.variables) {
				return ModelError{Constraint: ci, Reason: fmt.Sprintf("unknown variable %d", v)}
			}
		}
		return nil
	}
	checkLiteral := func(ci int, l BoolVar) error {
		v := l.Index()
		if v >= len(m.variables) {
			return ModelError{Constraint: ci, Reason: fmt.Sprintf("unknown literal %d", v)}
		}
		if m.variables[v].Lo < 0 || m.variables[v].Hi > 1 {
			return ModelError{Constraint: ci, Reason: fmt.Sprintf("variable %d is not boolean", v)}
		}
		return nil
	}

	for ci, c := range m.constraints {
		for _, l := range c.enforcement {
			if err := checkLiteral(ci, l); err != nil {
				return err
			}
		}
		exprs := append([]*LinearExpr{}, c.args...)
		if c.expr != nil {
			exprs = append(exprs, c.expr)
		}
		if c.target != nil {
			exprs = append(exprs, c.target)
		}
		for _, e := range exprs {
			if err := checkExpr(ci, e); err != nil {
				return err
			}
		}
		for _, l := range c.literals {
			if err := checkLiteral(ci, l); err != nil {
				return err
			}
		}

		switch c.kind {
		case LinearConstraint:
			if c.lo > c.hi {
				return ModelError{Constraint: ci, Reason: fmt.Sprintf("empty bounds [%d, %d]", c.lo, c.hi)}
			}
		case MultiplicationConstraint:
			if len(c.enforcement) > 0 {
				return ModelError{Constraint: ci, Reason: "multiplication does not support enforcement literals"}
			}
		case DivisionConstraint:
			if c.divisor <= 0 {
				return ModelError{Constraint: ci, Reason: fmt.Sprintf("divisor must be positive: %d", c.divisor)}
			}
			if len(c.enforcement) > 0 {
				return ModelError{Constraint: ci, Reason: "division does not support enforcement literals"}
			}
		case MinConstraint, MaxConstraint:
			if len(c.args) == 0 {
				return ModelError{Constraint: ci, Reason: fmt.Sprintf("%v over an empty list", c.kind)}
			}
		}
	}
	if m.objective != nil {
		if err := checkExpr(-1, m.objective.expr); err != nil {
			return err
		}
	}
	return nil
}

// Check evaluates every constraint against a complete assignment.
func (m *Model) Check(values []int64) error {
	if len(values) != len(m.variables) {
		return fmt.Errorf("expected %d values, got %d", len(m.variables), len(values))
	}
	for i, v := range m.variables {
		if values[i] < v.Lo || values[i] > v.Hi {
			return fmt.Errorf("variable %d (%v) = %d is out of [%d, %d]", i, v.Name, values[i], v.Lo, v.Hi)
		}
	}

	for ci, c := range m.constraints {
		if !c.enforced(values) {
			continue
		}
		if !c.holds(values) {
			name := c.name
			if name == "" {
				name = c.kind.String()
			}
			return fmt.Errorf("constraint %d (%v) is violated", ci, name)
		}
	}
	return nil
}

func literalValue(l BoolVar, values []int64) bool {
	value := values[l.Index()] == 1
	if l.Negated() {
		return !value
	}
	return value
}

func (c *Constraint) enforced(values []int64) bool {
	for _, l := range c.enforcement {
		if !literalValue(l, values) {
			return false
		}
	}
	return true
}

func (c *Constraint) holds(values []int64) bool {
	switch c.kind {
	case LinearConstraint:
		value := c.expr.evaluate(values)
		return (c.lo == math.MinInt64 || value >= c.lo) && (c.hi == math.MaxInt64 || value <= c.hi)
	case NotEqualConstraint:
		return c.expr.evaluate(values) != 0
	case BoolOrConstraint:
		return slices.ContainsFunc(c.literals, func(l BoolVar) bool { return literalValue(l, values) })
	case BoolAndConstraint:
		return !slices.ContainsFunc(c.literals, func(l BoolVar) bool { return !literalValue(l, values) })
	case MultiplicationConstraint:
		return c.target.evaluate(values) == c.args[0].evaluate(values)*c.args[1].evaluate(values)
	case DivisionConstraint:
		return c.target.evaluate(values) == c.expr.evaluate(values)/c.divisor
	case AbsConstraint:
		value := c.expr.evaluate(values)
		if value < 0 {
			value = -value
		}
		return c.target.evaluate(values) == value
	case MinConstraint, MaxConstraint:
		best := c.args[0].evaluate(values)
		for _, arg := range c.args[1:] {
			if c.kind == MinConstraint {
				best = min(best, arg.evaluate(values))
			} else {
				best = max(best, arg.evaluate(values))
			}
		}
		return c.target.evaluate(values) == best
	}
	return false
}

func (c *Constraint) Kind() ConstraintKind {
	return c.kind
}

func (c *Constraint) Name() string {
	return c.name
}

func (c *Constraint) Expr() *LinearExpr {
	return c.expr
}

// Bounds returns the bounds of a linear constraint.
func (c *Constraint) Bounds() (int64, int64) {
	return c.lo, c.hi
}

func (c *Constraint) Literals() []BoolVar {
	return c.literals
}

func (c *Constraint) Target() *LinearExpr {
	return c.target
}

func (c *Constraint) Args() []*LinearExpr {
	return c.args
}

func (c *Constraint) Divisor() int64 {
	return c.divisor
}

func (c *Constraint) Enforcement() []BoolVar {
	return c.enforcement
}
