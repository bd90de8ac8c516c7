// Package collate concatenates the surviving segments of a move list into
// a single ordered trajectory and tags each with scalar-channel bookkeeping
// (spec.md §4.7, component C7).
package collate

import "github.com/katalvlaran/scv/core"

// Flatten concatenates all moves' surviving segments (Duration > 0 and not
// ToDelete) in move order, assigning each a monotonic ConsecutiveNumber and
// MoveOwner, and propagating the scalar channel: each segment inherits its
// owning move's Scaler delta and the cumulative ScalerStart carried over
// from prior moves' total scalar advance.
//
// The reference implementation computes this tagging in two separate
// passes over the same segment list (one assigning moveOwner/positions, a
// second re-deriving the scalar fields) — an artifact of incremental
// development rather than a semantic requirement. Flatten does it in one.
func Flatten(moves []*core.Move) []core.Segment {
	var out []core.Segment

	var scalerCursor float64
	consecutive := 0

	for moveIdx, m := range moves {
		moveScalerStart := scalerCursor
		for i := range m.Segments {
			s := m.Segments[i]
			if s.ToDelete || s.Duration <= 0 {
				continue
			}

			s.MoveOwner = moveIdx
			s.ConsecutiveNumber = consecutive
			s.StartPos = m.Src
			s.EndPos = m.Dst
			s.Scaler = m.Scaler
			s.ScalerStart = moveScalerStart

			out = append(out, s)
			consecutive++
		}
		scalerCursor = moveScalerStart + m.Scaler
	}

	return out
}
