package core

import "errors"

// Sentinel errors shared across the motion-planning pipeline.
//
// Packages downstream of core (scurve, blend, schedule, collate, trajectory,
// planner) wrap these with fmt.Errorf("%w: ...", ErrX) or
// github.com/pkg/errors.Wrapf when they need to attach which move or corner
// triggered the failure.
var (
	// ErrInvalidLimits indicates a global velocity/acceleration/jerk limit
	// has a zero component. Non-positive per-move scalars are reported as
	// ErrZeroMoveScalar instead.
	ErrInvalidLimits = errors.New("core: invalid limits")

	// ErrDegenerateMove indicates a move whose src equals dst (after chaining
	// to the previous move's dst), or whose direction is otherwise ill-defined.
	ErrDegenerateMove = errors.New("core: degenerate move")

	// ErrZeroMoveScalar indicates a move's vel, acc, or jerk scalar is zero
	// or negative.
	ErrZeroMoveScalar = errors.New("core: move vel/acc/jerk must be positive")
)
