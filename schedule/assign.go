// Package schedule assigns each move a ScheduledTime in interpolated-moves
// mode (spec.md §4.6, component C6): adjacent blendable moves overlap in
// time instead of having their segments mutated the way blend.Corner does.
package schedule

import (
	"math"

	"github.com/katalvlaran/scv/core"
)

// Options configures Assign.
//
// MaxOverlapFraction – global cap, applied to both sides of every blended
// pair, on how much of a move's duration the overlap may consume. Must be
// in [0, 1]. Default is 0.28 (spec.md §6).
type Options struct {
	MaxOverlapFraction float64
}

// Option is a functional option for Assign.
type Option func(*Options)

// WithMaxOverlapFraction overrides the default overlap cap. Panics if frac
// is outside [0, 1].
func WithMaxOverlapFraction(frac float64) Option {
	return func(o *Options) {
		if frac < 0 || frac > 1 {
			panic("schedule: MaxOverlapFraction must be in [0, 1]")
		}
		o.MaxOverlapFraction = frac
	}
}

// DefaultOptions returns the default configuration (spec.md §6).
func DefaultOptions() Options {
	return Options{MaxOverlapFraction: 0.28}
}

// Assign computes each move's Duration (sum of its segment durations) and
// ScheduledTime, in place, for interpolated-moves mode (spec.md §4.6).
//
// moves[i].Segments must already be populated by scurve.Synthesize (blend
// blend.Corner is not run in this mode — overlap substitutes for corner
// blending). Returns ErrOverlapInvariant if the computed schedule puts
// three or more moves' windows open at the midpoint of some move's window,
// a case spec.md leaves undefined and this package rejects defensively.
func Assign(moves []*core.Move, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for _, m := range moves {
		var total float64
		for _, s := range m.Segments {
			total += s.Duration
		}
		m.Duration = total
	}

	if len(moves) == 0 {
		return nil
	}
	moves[0].ScheduledTime = 0

	for i := 1; i < len(moves); i++ {
		prev := moves[i-1]
		cur := moves[i]

		if cur.BlendType == core.BlendNone {
			cur.ScheduledTime = prev.ScheduledTime + prev.Duration
			continue
		}

		isFirstBlendablePair := i == 1 || prev.BlendType == core.BlendNone
		isLastBlendablePair := i == len(moves)-1 || moves[i+1].BlendType == core.BlendNone

		f0 := 0.5
		if isFirstBlendablePair {
			f0 = 0.99
		}
		f1 := 0.5
		if isLastBlendablePair {
			f1 = 0.99
		}
		f0 = math.Min(f0, o.MaxOverlapFraction)
		f1 = math.Min(f1, o.MaxOverlapFraction)

		allowable0 := f0 * prev.Duration
		allowable1 := f1 * cur.Duration
		blendTime := math.Min(allowable0, allowable1)

		cur.ScheduledTime = prev.ScheduledTime + prev.Duration - blendTime
	}

	return checkOverlapInvariant(moves)
}

// checkOverlapInvariant verifies that, at the midpoint of each move's
// [ScheduledTime, ScheduledTime+Duration] window, at most two windows are
// open. Instants other than those midpoints are not checked.
func checkOverlapInvariant(moves []*core.Move) error {
	for i := 0; i < len(moves); i++ {
		open := 0
		ai, bi := moves[i].ScheduledTime, moves[i].ScheduledTime+moves[i].Duration
		mid := (ai + bi) / 2
		for _, m := range moves {
			if mid >= m.ScheduledTime && mid <= m.ScheduledTime+m.Duration {
				open++
			}
		}
		if open > 2 {
			return ErrOverlapInvariant
		}
	}

	return nil
}
