package sat

import (
	"fmt"
	"maps"
	"math"
	"math/bits"
	"slices"

	"github.com/crillab/gophersat/solver"
	"github.com/limaJavier/floorplan/pkg/cp"
	"github.com/samber/lo"
)

// Variable 1 is pinned to true and stands for every constant literal.
const trueLit = 1

// Encoding translates a cp.Model into a PB instance. Integer variables use a binary encoding
// v = lo + sum(2^j * b_j); enforcement literals relax linear constraints with a big-M term.
type Encoding struct {
	model *cp.Model
	pb    PB
	// PB variables of every model variable, least significant bit first
	bits       [][]int
	unsat      bool
	costOffset int64
	maximize   bool
}

func Encode(model *cp.Model) (*Encoding, error) {
	encoding := &Encoding{
		model: model,
		pb:    PB{Variables: 1},
		bits:  make([][]int, model.NumVars()),
	}
	encoding.pb.Constraints = append(encoding.pb.Constraints, solver.PropClause(trueLit))

	for i := range model.NumVars() {
		variable := model.Variable(i)
		span := uint64(variable.Hi - variable.Lo)
		width := bits.Len64(span)
		encoding.bits[i] = lo.Times(width, func(_ int) int { return encoding.newVar() })
		// Exclude the values above hi when the span is not of the form 2^k - 1
		if width > 0 && span != 1<<width-1 {
			lits, weights := encoding.bitTerms(i, 1)
			encoding.addGreaterOrEqual(lits, negate(weights), -int64(span), nil)
		}
	}

	for ci, constraint := range model.Constraints() {
		if err := encoding.encodeConstraint(constraint); err != nil {
			return nil, fmt.Errorf("cannot encode constraint %d (%v): %w", ci, constraint.Kind(), err)
		}
	}

	if expr, maximize := model.Objective(); expr != nil {
		encoding.encodeObjective(expr, maximize)
	}
	return encoding, nil
}

// Instance returns a copy of the encoded instance which callers may extend.
func (e *Encoding) Instance() PB {
	return e.pb.clone()
}

// Unsat reports whether a constraint was found unsatisfiable while encoding.
func (e *Encoding) Unsat() bool {
	return e.unsat
}

func (e *Encoding) newVar() int {
	e.pb.Variables++
	return e.pb.Variables
}

func (e *Encoding) literal(l cp.BoolVar) int {
	v := l.Index()
	lit := trueLit
	if len(e.bits[v]) == 0 {
		if e.model.Variable(v).Lo == 0 {
			lit = -trueLit
		}
	} else {
		lit = e.bits[v][0]
	}
	if l.Negated() {
		return -lit
	}
	return lit
}

func (e *Encoding) literals(ls []cp.BoolVar) []int {
	return lo.Map(ls, func(l cp.BoolVar, _ int) int { return e.literal(l) })
}

func (e *Encoding) bitTerms(v int, coeff int64) ([]int, []int64) {
	weights := make([]int64, len(e.bits[v]))
	for j := range e.bits[v] {
		weights[j] = coeff << j
	}
	return slices.Clone(e.bits[v]), weights
}

// linear expands an expression over the bits of its variables.
func (e *Encoding) linear(expr *cp.LinearExpr) ([]int, []int64, int64) {
	terms, constant := expr.Terms()
	lits, weights := []int{}, []int64{}
	for _, term := range terms {
		constant += term.Coeff * e.model.Variable(term.Var).Lo
		l, w := e.bitTerms(term.Var, term.Coeff)
		lits = append(lits, l...)
		weights = append(weights, w...)
	}
	return lits, weights, constant
}

func negate(weights []int64) []int64 {
	return lo.Map(weights, func(w int64, _ int) int64 { return -w })
}

// addLinear adds lower <= sum(weights * lits) + constant <= upper when every enforcement literal holds.
func (e *Encoding) addLinear(lits []int, weights []int64, constant, lower, upper int64, enforcement []int) {
	if lower != math.MinInt64 {
		e.addGreaterOrEqual(lits, weights, lower-constant, enforcement)
	}
	if upper != math.MaxInt64 {
		e.addGreaterOrEqual(lits, negate(weights), constant-upper, enforcement)
	}
}

func (e *Encoding) addGreaterOrEqual(lits []int, weights []int64, atLeast int64, enforcement []int) {
	minSum := lo.SumBy(weights, func(w int64) int64 { return min(w, 0) })
	bigM := atLeast - minSum
	if bigM <= 0 {
		return
	}
	lits, weights = slices.Clone(lits), slices.Clone(weights)
	for _, l := range enforcement {
		lits = append(lits, -l)
		weights = append(weights, bigM)
	}
	e.emit(lits, weights, atLeast)
}

func (e *Encoding) addClause(lits ...int) {
	e.emit(lits, lo.Times(len(lits), func(_ int) int64 { return 1 }), 1)
}

// emit merges repeated variables, folds the constant literal and normalizes the constraint
// into positive weights before appending it.
func (e *Encoding) emit(lits []int, weights []int64, atLeast int64) {
	coeffs := make(map[int]int64, len(lits))
	for i, l := range lits {
		if l > 0 {
			coeffs[l] += weights[i]
		} else {
			// w * not(x) = w - w * x
			atLeast -= weights[i]
			coeffs[-l] -= weights[i]
		}
	}
	atLeast -= coeffs[trueLit]
	delete(coeffs, trueLit)

	vars := slices.Sorted(maps.Keys(coeffs))
	normalizedLits := make([]int, 0, len(vars))
	normalizedWeights := make([]int, 0, len(vars))
	for _, v := range vars {
		if coeffs[v] != 0 {
			normalizedLits = append(normalizedLits, v)
			normalizedWeights = append(normalizedWeights, int(coeffs[v]))
		}
	}
	constr := solver.GtEq(normalizedLits, normalizedWeights, int(atLeast))
	if constr.AtLeast <= 0 {
		return
	}
	for i := range constr.Weights {
		constr.Weights[i] = min(constr.Weights[i], constr.AtLeast)
	}
	if constr.WeightSum() < constr.AtLeast {
		e.unsat = true
		return
	}
	e.pb.Constraints = append(e.pb.Constraints, constr)
}

func (e *Encoding) encodeConstraint(constraint *cp.Constraint) error {
	enforcement := e.literals(constraint.Enforcement())

	switch constraint.Kind() {
	case cp.LinearConstraint:
		lits, weights, constant := e.linear(constraint.Expr())
		lower, upper := constraint.Bounds()
		e.addLinear(lits, weights, constant, lower, upper, enforcement)

	case cp.NotEqualConstraint:
		// expr <= -1 or expr >= 1, the side being picked by a fresh literal
		lits, weights, constant := e.linear(constraint.Expr())
		side := e.newVar()
		e.addLinear(lits, weights, constant, math.MinInt64, -1, append(slices.Clone(enforcement), side))
		e.addLinear(lits, weights, constant, 1, math.MaxInt64, append(slices.Clone(enforcement), -side))

	case cp.BoolOrConstraint:
		clause := e.literals(constraint.Literals())
		for _, l := range enforcement {
			clause = append(clause, -l)
		}
		e.addClause(clause...)

	case cp.BoolAndConstraint:
		for _, l := range e.literals(constraint.Literals()) {
			clause := []int{l}
			for _, en := range enforcement {
				clause = append(clause, -en)
			}
			e.addClause(clause...)
		}

	case cp.MultiplicationConstraint:
		e.encodeMultiplication(constraint)

	case cp.DivisionConstraint:
		e.encodeDivision(constraint)

	case cp.AbsConstraint:
		lits, weights, constant := e.linear(constraint.Expr())
		targetLits, targetWeights, targetConstant := e.linear(constraint.Target())
		positive := e.newVar()
		// positive => expr >= 0 and target = expr
		e.addLinear(lits, weights, constant, 0, math.MaxInt64, append(slices.Clone(enforcement), positive))
		e.addLinear(
			append(slices.Clone(targetLits), lits...),
			append(slices.Clone(targetWeights), negate(weights)...),
			targetConstant-constant, 0, 0,
			append(slices.Clone(enforcement), positive),
		)
		// not(positive) => expr <= -1 and target = -expr
		e.addLinear(lits, weights, constant, math.MinInt64, -1, append(slices.Clone(enforcement), -positive))
		e.addLinear(
			append(slices.Clone(targetLits), lits...),
			append(slices.Clone(targetWeights), weights...),
			targetConstant+constant, 0, 0,
			append(slices.Clone(enforcement), -positive),
		)

	case cp.MinConstraint, cp.MaxConstraint:
		e.encodeMinMax(constraint, enforcement)

	default:
		return fmt.Errorf("unsupported constraint kind %v", constraint.Kind())
	}
	return nil
}

// encodeMultiplication expands (ca + sum(a_i)) * (cb + sum(b_j)) where a_i and b_j are weighted
// bits, introducing one literal per a_i and b_j conjunction.
func (e *Encoding) encodeMultiplication(constraint *cp.Constraint) {
	args := constraint.Args()
	leftLits, leftWeights, leftConstant := e.linear(args[0])
	rightLits, rightWeights, rightConstant := e.linear(args[1])
	targetLits, targetWeights, targetConstant := e.linear(constraint.Target())

	lits, weights := []int{}, []int64{}
	for i, l := range leftLits {
		lits = append(lits, l)
		weights = append(weights, leftWeights[i]*rightConstant)
	}
	for j, r := range rightLits {
		lits = append(lits, r)
		weights = append(weights, rightWeights[j]*leftConstant)
	}
	for i, l := range leftLits {
		for j, r := range rightLits {
			lits = append(lits, e.conjunction(l, r))
			weights = append(weights, leftWeights[i]*rightWeights[j])
		}
	}
	// product - target == 0
	lits = append(lits, targetLits...)
	weights = append(weights, negate(targetWeights)...)
	e.addLinear(lits, weights, leftConstant*rightConstant-targetConstant, 0, 0, nil)
}

func (e *Encoding) conjunction(a, b int) int {
	if a == b {
		return a
	}
	c := e.newVar()
	e.addClause(-c, a)
	e.addClause(-c, b)
	e.addClause(c, -a, -b)
	return c
}

// encodeDivision bounds the remainder num - d*target, whose sign follows the numerator.
func (e *Encoding) encodeDivision(constraint *cp.Constraint) {
	divisor := constraint.Divisor()
	numLits, numWeights, numConstant := e.linear(constraint.Expr())
	targetLits, targetWeights, targetConstant := e.linear(constraint.Target())

	remainderLits := append(slices.Clone(numLits), targetLits...)
	remainderWeights := append(slices.Clone(numWeights), lo.Map(targetWeights, func(w int64, _ int) int64 { return -w * divisor })...)
	remainderConstant := numConstant - targetConstant*divisor

	numMin := numConstant + lo.SumBy(numWeights, func(w int64) int64 { return min(w, 0) })
	numMax := numConstant + lo.SumBy(numWeights, func(w int64) int64 { return max(w, 0) })

	switch {
	case numMin >= 0:
		e.addLinear(remainderLits, remainderWeights, remainderConstant, 0, divisor-1, nil)
	case numMax <= 0:
		e.addLinear(remainderLits, remainderWeights, remainderConstant, -(divisor - 1), 0, nil)
	default:
		positive := e.newVar()
		e.addLinear(numLits, numWeights, numConstant, 0, math.MaxInt64, []int{positive})
		e.addLinear(numLits, numWeights, numConstant, math.MinInt64, -1, []int{-positive})
		e.addLinear(remainderLits, remainderWeights, remainderConstant, 0, divisor-1, []int{positive})
		e.addLinear(remainderLits, remainderWeights, remainderConstant, -(divisor - 1), 0, []int{-positive})
	}
}

func (e *Encoding) encodeMinMax(constraint *cp.Constraint, enforcement []int) {
	targetLits, targetWeights, targetConstant := e.linear(constraint.Target())
	selectors := make([]int, 0, len(constraint.Args()))
	for _, arg := range constraint.Args() {
		lits, weights, constant := e.linear(arg)
		// target - arg
		diffLits := append(slices.Clone(targetLits), lits...)
		diffWeights := append(slices.Clone(targetWeights), negate(weights)...)
		diffConstant := targetConstant - constant

		selector := e.newVar()
		selectors = append(selectors, selector)
		if constraint.Kind() == cp.MaxConstraint {
			e.addLinear(diffLits, diffWeights, diffConstant, 0, math.MaxInt64, enforcement)
			e.addLinear(diffLits, diffWeights, diffConstant, math.MinInt64, 0, append(slices.Clone(enforcement), selector))
		} else {
			e.addLinear(diffLits, diffWeights, diffConstant, math.MinInt64, 0, enforcement)
			e.addLinear(diffLits, diffWeights, diffConstant, 0, math.MaxInt64, append(slices.Clone(enforcement), selector))
		}
	}
	for _, l := range enforcement {
		selectors = append(selectors, -l)
	}
	e.addClause(selectors...)
}

// encodeObjective turns the objective into a positive-weight cost to minimize:
// objective = sign * (cost + costOffset).
func (e *Encoding) encodeObjective(expr *cp.LinearExpr, maximize bool) {
	lits, weights, constant := e.linear(expr)
	e.maximize = maximize
	if maximize {
		weights = negate(weights)
		constant = -constant
	}
	e.costOffset = constant
	e.pb.CostLits = []int{}
	e.pb.CostWeights = []int{}
	for i, l := range lits {
		w := weights[i]
		if w < 0 {
			// w * x = w + |w| * not(x)
			e.costOffset += w
			l, w = -l, -w
		}
		e.pb.CostLits = append(e.pb.CostLits, l)
		e.pb.CostWeights = append(e.pb.CostWeights, int(w))
	}
}

func satisfied(assignment []bool, lit int) bool {
	v := lit
	if v < 0 {
		v = -v
	}
	value := v-1 < len(assignment) && assignment[v-1]
	return value == (lit > 0)
}

// Decode maps a PB assignment, indexed from variable 1, back to model values.
func (e *Encoding) Decode(assignment []bool) []int64 {
	values := make([]int64, len(e.bits))
	for v, vbits := range e.bits {
		values[v] = e.model.Variable(v).Lo
		for j, bit := range vbits {
			if satisfied(assignment, bit) {
				values[v] += 1 << j
			}
		}
	}
	return values
}

// Cost returns the cost of an assignment, 0 without objective.
func (e *Encoding) Cost(assignment []bool) int {
	return costOf(e.pb, assignment)
}

// ObjectiveValue converts a cost into the objective value of the model.
func (e *Encoding) ObjectiveValue(cost int) int64 {
	value := int64(cost) + e.costOffset
	if e.maximize {
		return -value
	}
	return value
}

// CostAtMost returns the constraints restricting the cost to at most the given value.
func (e *Encoding) CostAtMost(cost int) []solver.PBConstr {
	constr := solver.LtEq(slices.Clone(e.pb.CostLits), slices.Clone(e.pb.CostWeights), cost)
	if constr.AtLeast <= 0 {
		return nil
	}
	return []solver.PBConstr{constr}
}

// Block returns a clause excluding the values the assignment gives to the listed model variables,
// every variable when none is listed. It reports false when none of them has a bit left to flip.
func (e *Encoding) Block(assignment []bool, variables []int) (solver.PBConstr, bool) {
	if len(variables) == 0 {
		variables = lo.Range(len(e.bits))
	}
	lits := []int{}
	for _, v := range variables {
		for _, bit := range e.bits[v] {
			if satisfied(assignment, bit) {
				lits = append(lits, -bit)
			} else {
				lits = append(lits, bit)
			}
		}
	}
	return solver.PropClause(lits...), len(lits) > 0
}
