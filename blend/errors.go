package blend

import "errors"

// Sentinel errors for corner blending (spec.md §4.5).
var (
	// ErrNotBlendable indicates one of the two adjacent moves is not in
	// 5- or 7-segment form (already blended, or never synthesized), so
	// Corner leaves both moves untouched.
	ErrNotBlendable = errors.New("blend: move not in blendable segment form")

	// ErrInfeasible indicates the corner geometry (a near-reversal turn,
	// or insufficient overlap between the two moves' cruise extents)
	// cannot accommodate a blend curve within the available length.
	ErrInfeasible = errors.New("blend: corner geometry does not allow a blend curve")
)
