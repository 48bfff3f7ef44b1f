package cp

type Status int

const (
	Unknown Status = iota
	ModelInvalid
	Feasible
	Infeasible
	Optimal
)

func (status Status) String() string {
	return [...]string{"UNKNOWN", "MODEL_INVALID", "FEASIBLE", "INFEASIBLE", "OPTIMAL"}[status]
}

// Solved reports whether the status carries an assignment.
func (status Status) Solved() bool {
	return status == Feasible || status == Optimal
}

// Solution is a complete assignment of a model's variables.
type Solution struct {
	values    []int64
	objective int64
}

func NewSolution(m *Model, values []int64) Solution {
	solution := Solution{values: values}
	if expr, _ := m.Objective(); expr != nil {
		solution.objective = expr.evaluate(values)
	}
	return solution
}

func (s Solution) Value(arg LinearArgument) int64 {
	return arg.asLinearExpr().evaluate(s.values)
}

func (s Solution) BooleanValue(b BoolVar) bool {
	return literalValue(b, s.values)
}

// ObjectiveValue returns the objective evaluated on the assignment, 0 without objective.
func (s Solution) ObjectiveValue() int64 {
	return s.objective
}

func (s Solution) Values() []int64 {
	return s.values
}
