package trajectory

import "github.com/katalvlaran/scv/core"

// MoveSampler evaluates a set of moves whose time windows
// [ScheduledTime, ScheduledTime+Duration] may overlap (interpolated-moves
// mode, spec.md §4.8 "Interpolated mode"). Each contributing move's pose is
// sampled independently via a SegmentSampler over its own segments, then
// summed; when more than one move contributes, the shared corner point is
// subtracted once so the overlap reads as a blend rather than a double
// count.
type MoveSampler struct {
	moves    []*core.Move
	samplers []*SegmentSampler

	// cursorTime is the single global traversal clock Advance drives;
	// Sample(cursorTime) is reused for both Sample and Advance, since an
	// overlapping-moves schedule doesn't admit a simple per-move cursor.
	cursorTime float64
}

// NewMoveSampler builds a MoveSampler over moves, each already carrying a
// ScheduledTime and Duration from schedule.Assign.
func NewMoveSampler(moves []*core.Move) *MoveSampler {
	samplers := make([]*SegmentSampler, len(moves))
	for i, m := range moves {
		samplers[i] = NewSegmentSampler(m.Segments)
	}

	return &MoveSampler{moves: moves, samplers: samplers}
}

// TraverseTime returns the time at which the last move's window ends.
func (s *MoveSampler) TraverseTime() float64 {
	var end float64
	for _, m := range s.moves {
		if e := m.ScheduledTime + m.Duration; e > end {
			end = e
		}
	}

	return end
}

// Sample evaluates the trajectory at absolute time t by summing the poses
// of every move whose window contains t (spec.md §4.8).
func (s *MoveSampler) Sample(t float64) State {
	var (
		sum        core.Vec3
		sumVel     core.Vec3
		sumAcc     core.Vec3
		sumJerk    core.Vec3
		sumScaler  float64
		movesUsed  int
		lastSrc    core.Vec3
		anyRunning bool
	)

	for i, m := range s.moves {
		if t < m.ScheduledTime || t > m.ScheduledTime+m.Duration {
			continue
		}
		local := s.samplers[i].Sample(t - m.ScheduledTime)
		sum = sum.Add(local.Pos)
		sumVel = sumVel.Add(local.Vel)
		sumAcc = sumAcc.Add(local.Acc)
		sumJerk = sumJerk.Add(local.Jerk)
		sumScaler += local.Scaler
		lastSrc = m.Src
		movesUsed++
		anyRunning = anyRunning || local.Running
	}

	if movesUsed == 0 {
		return State{}
	}
	if movesUsed > 1 {
		sum = sum.Sub(lastSrc)
	}

	return State{
		Pos:     sum,
		Vel:     sumVel,
		Acc:     sumAcc,
		Jerk:    sumJerk,
		Scaler:  sumScaler,
		Running: anyRunning,
	}
}

// ResetTraverse rewinds the global traversal cursor to the beginning.
func (s *MoveSampler) ResetTraverse() {
	s.cursorTime = 0
}

// Advance steps the global traversal clock forward by dt (must be >= 0)
// and resamples at the new time, returning false once past the last
// move's window (spec.md §4.8).
func (s *MoveSampler) Advance(dt float64) (core.Vec3, bool) {
	s.cursorTime += dt
	state := s.Sample(s.cursorTime)
	if s.cursorTime > s.TraverseTime() {
		return state.Pos, false
	}

	return state.Pos, true
}
