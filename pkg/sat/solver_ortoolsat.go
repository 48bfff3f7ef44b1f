package sat

import "context"

type ortoolsatEngine struct{}

// NewOrtoolsatSolver wraps the OR-tools sat_runner, which reads OPB files natively.
func NewOrtoolsatSolver() Solver {
	return &pbSolver{engine: ortoolsatEngine{}}
}

func (ortoolsatEngine) run(ctx context.Context, pb PB) (outcome, []bool, error) {
	return runOPBSolver(ctx, "ortoolsatPath", []string{"--competition_mode", "--input"}, pb)
}
