// Package scurve synthesizes the canonical seven-segment S-curve profile
// for a single move (spec.md §4.4, component C4).
//
// Given a move's endpoints and per-move scalar limits, projected through the
// planner's global per-axis limits, Synthesize produces up to seven
// constant-jerk segments: a concave/linear/convex acceleration ramp, an
// optional cruise, and the mirrored deceleration ramp. Three degenerate
// regimes (velocity-limited ramps, distance-limited cruise, distance-limited
// ramps) are detected in the order spec.md §4.4 specifies. The cruise
// segment is always emitted, with zero duration when the ramps cover the
// whole move; the profile has 5 segments when it has no linear-acceleration
// phase and 7 when it has one.
package scurve

import (
	"math"

	"github.com/katalvlaran/scv/core"
)

// distanceEpsilon is the tolerance below which remaining cruise distance is
// treated as zero, leaving the cruise segment with zero duration (spec.md
// §4.4, §7).
const distanceEpsilon = 1e-6

// curveEnd returns the position/velocity/acceleration reached after running
// a concave (or, by symmetry, convex) jerk-j ramp for duration t starting
// from rest, i.e. the closed-form integral of a pure constant-jerk segment.
func curveEnd(j, t float64) (ps, vs, as float64) {
	return (j * t * t * t) / 6.0, (j * t * t) / 2.0, j * t
}

// Synthesize builds m.Segments in place: the canonical seven-segment S-curve
// profile along the direction from m.Src to m.Dst, projected through the
// planner's global limits and clamped by m's own Vel/Acc/Jerk.
//
// If m.Src == m.Dst (a degenerate move, spec.md §7 DegenerateMove),
// Synthesize clears m.Segments and returns nil: the move contributes zero
// motion but is not an error at this layer (planner.Planner.AppendMove is
// where degenerate moves get surfaced to the caller).
func Synthesize(m *core.Move, limits core.AxisLimits) error {
	m.Segments = nil

	dir, totalLength := m.Direction()
	if totalLength == 0 {
		return nil
	}

	// Project the requested direction through the global per-axis limits,
	// then intersect with the per-move scalar (spec.md §4.4 step 1).
	boundedVel := core.BoundedVector(dir, limits.Vel)
	boundedAcc := core.BoundedVector(dir, limits.Acc)
	boundedJerk := core.BoundedVector(dir, limits.Jerk)

	v := math.Min(boundedVel.Length(), m.Vel) // target cruise speed
	a := math.Min(boundedAcc.Length(), m.Acc)
	j := math.Min(boundedJerk.Length(), m.Jerk)

	halfDistance := 0.5 * totalLength

	// Canonical timings: both curved ramps take a/j each, no linear phase.
	t1 := a / j
	t2 := a / j
	tLinear := 0.0

	// Velocity reached at the end of the concave ramp, and velocity at the
	// start of the convex ramp, if both ramps ran uninterrupted.
	dvInCurve := (a * a) / (2 * j)
	v1 := dvInCurve
	v2 := v - dvInCurve

	switch {
	case v1 > v2:
		// Velocity-limited ramps: the two curves alone would overshoot v.
		// Shrink them to meet tangentially at the target velocity.
		t1 = math.Sqrt(v / j)
		t2 = t1
		tLinear = 0

	case v2 > v1:
		// A linear acceleration phase is needed to reach v.
		_, vs, as := curveEnd(j, t1)
		remainingVel := v2 - v1
		tLinear = remainingVel / as

		totalRampDistance := 0.5*j*t1*tLinear*tLinear + 1.5*j*t1*t1*tLinear + j*t1*t1*t1
		if totalRampDistance > halfDistance {
			qa := 0.5 * j * t1
			qb := 1.5 * j * t1 * t1
			qc := j*t1*t1*t1 - halfDistance
			if root, ok := largestNonNegativeRoot(qa, qb, qc); ok {
				tLinear = root
			}
		}
		_ = vs
	}

	// Distance-limited ramps: even without a linear phase, both curves
	// together would overshoot halfDistance. Shrink them, drop any linear
	// phase entirely.
	if bothCurvesDistance := j * t1 * t1 * t1; bothCurvesDistance > halfDistance {
		t1 = math.Cbrt(halfDistance / j)
		t2 = t1
		tLinear = 0
	}

	ps, vs, as := curveEnd(j, t1)

	origin := m.Src
	segs := make([]core.Segment, 0, 7)

	// Segment 1: concave rising.
	segs = append(segs, core.Segment{
		Pos: origin, Vel: core.Vec3Zero, Acc: core.Vec3Zero,
		Jerk: dir.Mul(j), Duration: t1,
	})

	// Segment 2: rising linear phase (maybe).
	if tLinear > 0 {
		segs = append(segs, core.Segment{
			Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: dir.Mul(as),
			Jerk: core.Vec3Zero, Duration: tLinear,
		})
		t := tLinear
		ps += vs*t + as*t*t/2
		vs += as * t
	}

	// Segment 3: convex rising; velocity reaches v.
	segs = append(segs, core.Segment{
		Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: dir.Mul(as),
		Jerk: dir.Mul(-j), Duration: t2,
	})
	{
		t := t2
		ps += vs*t + (as*t*t)/2 - (j * t * t * t) / 6
		vs += (j * t * t) / 2
		as = 0
	}

	// Segment 4: cruise; zero duration when the ramps cover the whole move.
	totalRiseDistance := 2 * ps
	remainingDistance := totalLength - totalRiseDistance
	duration := 0.0
	if remainingDistance > distanceEpsilon {
		duration = remainingDistance / v
	}
	segs = append(segs, core.Segment{
		Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: core.Vec3Zero,
		Jerk: core.Vec3Zero, Duration: duration,
	})
	ps += vs * duration

	// Segment 5: convex falling.
	segs = append(segs, core.Segment{
		Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: dir.Mul(as),
		Jerk: dir.Mul(-j), Duration: t2,
	})
	{
		t := t2
		ps += vs*t + (as*t*t)/2 + (-j*t*t*t)/6
		vs += (-j * t * t) / 2
		as += -j * t
	}

	// Segment 6: falling linear phase (maybe).
	if tLinear > 0 {
		segs = append(segs, core.Segment{
			Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: dir.Mul(as),
			Jerk: core.Vec3Zero, Duration: tLinear,
		})
		t := tLinear
		ps += vs*t + as*t*t/2
		vs += as * t
	}

	// Segment 7: concave falling.
	segs = append(segs, core.Segment{
		Pos: origin.Add(dir.Mul(ps)), Vel: dir.Mul(vs), Acc: dir.Mul(as),
		Jerk: dir.Mul(j), Duration: t1,
	})

	m.Segments = segs

	return nil
}
