// Package trajectory evaluates and traverses a planned trajectory
// (spec.md §4.8, component C8), in either of the planner's two corner
// handling modes: a flat constant-jerk segment list, or a set of
// time-overlapping moves sampled and summed.
package trajectory

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/scv/core"
)

// boundaryTolerance is the epsilon used when deciding whether a sample
// time falls exactly on a segment boundary (spec.md §4.8).
const boundaryTolerance = 1e-9

// State is a single sampled pose, returned by both Sample and Advance.
type State struct {
	SegmentIndex int
	Pos          core.Vec3
	Vel          core.Vec3
	Acc          core.Vec3
	Jerk         core.Vec3
	Scaler       float64
	Running      bool
}

// SegmentSampler evaluates a flat, already-collated segment list at
// arbitrary times (constant-jerk mode, spec.md §4.8 "Constant-jerk mode").
type SegmentSampler struct {
	segments []core.Segment

	// cursorIndex/cursorTime track stateful traversal via Advance.
	cursorIndex int
	cursorTime  float64
	started     bool
}

// NewSegmentSampler wraps a collated segment list (collate.Flatten's
// output) for sampling.
func NewSegmentSampler(segments []core.Segment) *SegmentSampler {
	return &SegmentSampler{segments: segments}
}

// TotalDuration returns the sum of every segment's duration.
func (s *SegmentSampler) TotalDuration() float64 {
	var total float64
	for _, seg := range s.segments {
		total += seg.Duration
	}

	return total
}

// Sample evaluates the trajectory at absolute time t (spec.md §4.8).
// t < 0 returns the first segment's initial pose with Running=false; t==0
// returns the same pose with Running=true; t at or past the end returns the
// final segment's end pose with Running=false.
func (s *SegmentSampler) Sample(t float64) State {
	if len(s.segments) == 0 {
		return State{}
	}
	if t < 0 {
		return s.poseAt(0, 0, false)
	}
	if t == 0 {
		return s.poseAt(0, 0, true)
	}

	last := len(s.segments) - 1
	if t >= s.TotalDuration() {
		return s.poseAt(last, s.segments[last].Duration, false)
	}

	var elapsed float64
	for i := range s.segments {
		seg := &s.segments[i]
		next := elapsed + seg.Duration
		if t < next || floats.EqualWithinAbs(t, next, boundaryTolerance) {
			return s.poseAt(i, t-elapsed, true)
		}
		elapsed = next
	}

	return s.poseAt(last, s.segments[last].Duration, false)
}

func (s *SegmentSampler) poseAt(idx int, localT float64, running bool) State {
	seg := &s.segments[idx]
	pos, vel, acc, jerk := seg.EvaluateAt(localT)

	return State{
		SegmentIndex: idx,
		Pos:          pos,
		Vel:          vel,
		Acc:          acc,
		Jerk:         jerk,
		Scaler:       seg.Scalar(localT),
		Running:      running,
	}
}

// ResetTraverse rewinds the stateful cursor to the beginning.
func (s *SegmentSampler) ResetTraverse() {
	s.cursorIndex = 0
	s.cursorTime = 0
	s.started = false
}

// TraverseTime returns the total duration of the trajectory.
func (s *SegmentSampler) TraverseTime() float64 { return s.TotalDuration() }

// Advance steps the stateful cursor forward by dt (must be >= 0), carrying
// over into subsequent segments as needed so the cursor never moves
// backwards even across zero-duration segments (spec.md §4.8). Returns the
// pose reached and false once the cursor has passed the final segment.
func (s *SegmentSampler) Advance(dt float64) (core.Vec3, bool) {
	if len(s.segments) == 0 {
		return core.Vec3{}, false
	}
	s.started = true
	s.cursorTime += dt

	for s.cursorIndex < len(s.segments) && s.cursorTime > s.segments[s.cursorIndex].Duration {
		s.cursorTime -= s.segments[s.cursorIndex].Duration
		s.cursorIndex++
	}

	if s.cursorIndex >= len(s.segments) {
		last := len(s.segments) - 1
		seg := &s.segments[last]

		return seg.PositionAt(seg.Duration), false
	}

	seg := &s.segments[s.cursorIndex]

	return seg.PositionAt(s.cursorTime), true
}
