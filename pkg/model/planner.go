package model

import "context"

type Options struct {
	// Maximum number of layouts to report, 1 when not positive
	MaxSolutions int
}

type Planner interface {
	Build(
		ctx context.Context,
		building Building,
		options Options,
	) (Result, error)

	Verify(
		layout Layout,
		building Building,
	) bool
}
