package sat

import "context"

type roundingsatEngine struct{}

func NewRoundingsatSolver() Solver {
	return &pbSolver{engine: roundingsatEngine{}}
}

func (roundingsatEngine) run(ctx context.Context, pb PB) (outcome, []bool, error) {
	return runOPBSolver(ctx, "roundingsatPath", []string{"--print-sol=1", "--verbosity=0"}, pb)
}
