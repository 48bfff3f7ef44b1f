package sat

import "context"

type minisatpEngine struct{}

// NewMinisatpSolver wraps MiniSat+, which answers optimization instances through sorting networks.
func NewMinisatpSolver() Solver {
	return &pbSolver{engine: minisatpEngine{}}
}

func (minisatpEngine) run(ctx context.Context, pb PB) (outcome, []bool, error) {
	return runOPBSolver(ctx, "minisatpPath", []string{"-v0"}, pb)
}
