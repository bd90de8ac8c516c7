package planner

import (
	"fmt"

	"github.com/katalvlaran/scv/core"
)

// ErrInvalidConfig wraps core.ErrInvalidLimits for callers that only import
// planner: returned by Calculate when a global limit has a zero component.
var ErrInvalidConfig = fmt.Errorf("planner: invalid global limits: %w", core.ErrInvalidLimits)
