// Package blend inserts a constant-jerk curve between two adjacent moves'
// cruise phases, smoothing a sharp corner (spec.md §4.5, component C5).
//
// Corner only operates on moves already synthesized into 5- or 7-segment
// form (scurve.Synthesize); anything else is left untouched and reported
// via ErrNotBlendable so the caller can treat the pair as an unblended
// (sharp) corner instead of failing the whole plan.
package blend

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/scv/core"
)

// cruiseIndex returns the index of the cruise (constant-velocity) segment
// within a 5- or 7-segment profile: the midpoint segment, since both forms
// are symmetric around their cruise phase.
func cruiseIndex(n int) int { return (n - 1) / 2 }

// closestPointOnLine projects point onto the infinite line through
// lineStart in direction lineDir (assumed unit length), returning the
// signed distance d along lineDir and the projected point itself.
func closestPointOnLine(lineStart, lineDir, point core.Vec3) (proj core.Vec3, d float64) {
	d = point.Sub(lineStart).Dot(lineDir)

	return lineStart.Add(lineDir.Mul(d)), d
}

// durationFromJerkAndAcceleration returns sqrt(a_i/j_i) for the first axis
// with a non-zero jerk component, mirroring the reference implementation's
// axis-priority tie-break (spec.md §4.5 "Duration").
func durationFromJerkAndAcceleration(j, a core.Vec3) float64 {
	switch {
	case j.X != 0:
		return math.Sqrt(a.X / j.X)
	case j.Y != 0:
		return math.Sqrt(a.Y / j.Y)
	case j.Z != 0:
		return math.Sqrt(a.Z / j.Z)
	default:
		return 0
	}
}

// markSkippedSegments flags the ramp segments a blend curve supersedes:
// whichEnd==0 marks m's trailing ramp-down (it now ends in the blend
// curve); whichEnd==1 marks m's leading ramp-up (it now begins from the
// blend curve).
func markSkippedSegments(m *core.Move, whichEnd int) {
	n := len(m.Segments)
	if whichEnd == 0 {
		if n == 5 {
			m.Segments[3].ToDelete = true
			m.Segments[4].ToDelete = true
		} else {
			m.Segments[4].ToDelete = true
			m.Segments[5].ToDelete = true
			m.Segments[6].ToDelete = true
		}

		return
	}
	if n == 5 {
		m.Segments[0].ToDelete = true
		m.Segments[1].ToDelete = true
	} else {
		m.Segments[0].ToDelete = true
		m.Segments[1].ToDelete = true
		m.Segments[2].ToDelete = true
	}
}

// Corner blends the corner between m0 (the outgoing move) and m1 (the
// incoming move), mutating both in place: m0's cruise segment is shortened
// and two new segments (the blend curve, +j then -j) are appended to it;
// m1's cruise segment is shortened at its leading edge; the superseded
// ramp segments on both sides are marked ToDelete.
//
// isFirst/isLast indicate whether this is the first or last blendable
// corner in the move chain, which governs how m1.BlendClearance is applied
// (spec.md §4.5, §6).
func Corner(m0, m1 *core.Move, limits core.AxisLimits, isFirst, isLast bool) error {
	n0 := len(m0.Segments)
	n1 := len(m1.Segments)
	if !(n0 == 5 || n0 == 7) || !(n1 == 5 || n1 == 7) {
		return ErrNotBlendable
	}

	m0dir, _ := m0.Direction()
	m1dir, _ := m1.Direction()

	seg0 := &m0.Segments[cruiseIndex(n0)]
	seg1 := &m1.Segments[cruiseIndex(n1)]
	seg2Idx := cruiseIndex(n1) + 1
	seg2 := &m1.Segments[seg2Idx]

	v0 := seg0.Vel
	v1 := seg1.Vel
	dv := v1.Sub(v0)
	jerkDir := dv
	jerkDir.Normalize()

	maxAxisAcc := math.Max(limits.Acc.X, limits.Acc.Y)
	maxAxisJerk := math.Max(limits.Jerk.X, limits.Jerk.Y)

	a := jerkDir.Mul(1.5 * maxAxisAcc)
	j := jerkDir.Mul(1.5 * maxAxisJerk)

	a = clampAxis(a, limits.Acc)
	j = clampAxis(j, limits.Jerk)

	if amag := a.Length(); m0.Acc < amag && amag > 0 {
		a = a.Mul(m0.Acc / amag)
	}
	if jmag := j.Length(); m0.Jerk < jmag && jmag > 0 {
		j = j.Mul(m0.Jerk / jmag)
	}

	maxJerkLim := reduceForVelocityBudget(a, j, dv)
	if maxJerkLim < 1 {
		j = j.Mul(maxJerkLim)
	}

	var earliestStart, latestStart, earliestEnd, latestEnd core.Vec3
	var maxJerkLength float64
	var startPoint, endPoint core.Vec3
	var doubleBack bool

	startPoint = m0.Src.Add(m0.Dst).Mul(0.5)
	endPoint = m1.Src.Add(m1.Dst).Mul(0.5)

	var T float64
	if dv.Length() < 0.00001 {
		distance := endPoint.Sub(startPoint).Length()
		T = 0.5 * distance / v0.Length()
	} else {
		T = durationFromJerkAndAcceleration(j, v1.Sub(v0))
	}

	dot := m1dir.Dot(m0dir)
	dot = math.Min(1, math.Max(-1, dot))
	angle := math.Acos(dot)

	switch {
	case angle < 0.00001:
		// Straight continuation: no turn, just a pass-through blend curve
		// inserted between the two moves for scheduling continuity.
		t := T
		maxJerkEndPoint := v0.Mul(2 * t).Add(j.Mul(t * t * t))
		maxJerkLength = maxJerkEndPoint.Length()

		seg0AfterIdx := cruiseIndex(n0) + 1
		seg0After := &m0.Segments[seg0AfterIdx]

		earliestStart = startPoint
		latestEnd = endPoint
		latestStart = seg0After.Pos
		earliestEnd = seg1.Pos

	case angle > 3.14159:
		// Reversal: the move doubles back on itself.
		qa := j.Length() / 2
		x0, x1, ok := largestRoot(qa, 0, -v0.Length())
		if !ok {
			return errors.Wrap(ErrInfeasible, "reversal: no root for incoming reach")
		}
		t := math.Max(x0, x1)
		p0 := v0.Mul(t).Add(j.Mul(t * t * t / 6))
		curveSpan := p0.Length()

		x0, x1, ok = largestRoot(qa, 0, -v1.Length())
		if !ok {
			return errors.Wrap(ErrInfeasible, "reversal: no root for outgoing reach")
		}
		t = math.Max(x0, x1)
		p1 := v1.Mul(t).Add(j.Mul(-1 * t * t * t / 6))
		if p1.Length() > curveSpan {
			curveSpan = p1.Length()
		}

		t = T
		maxJerkDelta := v0.Mul(2 * t).Add(j.Mul(t * t * t))

		longestAllowableLength := math.Min(
			startPoint.Sub(m0.Dst).Length(),
			endPoint.Sub(m0.Dst).Length(),
		)
		if longestAllowableLength == 0 {
			return errors.Wrap(ErrInfeasible, "reversal: no room at shared corner")
		}

		ratio := (curveSpan + maxJerkDelta.Length()) / longestAllowableLength
		if ratio > 1 {
			return errors.Wrap(ErrInfeasible, "reversal: curve does not fit")
		}

		if m1.BlendType == core.BlendMinJerk {
			j = j.Mul(ratio * ratio)
			T = durationFromJerkAndAcceleration(j, v1.Sub(v0))
			curveSpan /= ratio
			maxJerkDelta = maxJerkDelta.Mul(1 / ratio)
		}

		v0dir := v0
		v0dir.Normalize()
		startPoint = m0.Dst.Add(v0dir.Mul(-curveSpan))
		endPoint = startPoint

		if maxJerkDelta.Dot(v0dir) < 0 {
			maxJerkDelta = maxJerkDelta.Mul(-1)
		}
		if v0.LengthSquared() > v1.LengthSquared() {
			startPoint = startPoint.Add(maxJerkDelta.Mul(-1))
		} else {
			endPoint = endPoint.Add(maxJerkDelta.Mul(-1))
		}

		doubleBack = true

	default:
		// General corner: some intermediate turn angle.
		t := T
		curveEndPoint := v0.Mul(2 * t).Add(j.Mul(t * t * t))

		seg0Start := m0.Src.Add(m0.Dst).Mul(0.5)
		seg0End := m0.Dst

		seg1Start := m0.Dst
		seg1End := m1.Src.Add(m1.Dst).Mul(0.5)

		if isFirst && m1.BlendType == core.BlendMinJerk {
			if m1.BlendClearance >= 0 {
				distanceToMid := seg0Start.Sub(m0.Src).Length()
				distanceToEarliest := seg0.Pos.Sub(m0.Src).Length()
				useClearance := math.Max(distanceToEarliest, math.Min(m1.BlendClearance, distanceToMid))
				seg0Start = m0.Src.Add(m0dir.Mul(useClearance))
			} else {
				seg0Start = seg0.Pos
			}
		} else if isLast && m1.BlendType == core.BlendMinJerk {
			if m1.BlendClearance >= 0 {
				distanceToMid := seg1End.Sub(m1.Dst).Length()
				distanceToLatest := seg2.Pos.Sub(m1.Dst).Length()
				useClearance := math.Max(distanceToLatest, math.Min(m1.BlendClearance, distanceToMid))
				seg1End = m1.Dst.Sub(m1dir.Mul(useClearance))
			} else {
				seg1End = seg2.Pos
			}
		}

		projBase := m0.Dst
		curveEndNorm := curveEndPoint
		curveEndNorm.Normalize()
		cpoSpan, _ := closestPointOnLine(m0.Src, curveEndNorm, projBase)
		dirForProjection := projBase.Sub(cpoSpan)
		dirForProjection.Normalize()

		_, a0 := closestPointOnLine(projBase, dirForProjection, seg0Start)
		_, a1 := closestPointOnLine(projBase, dirForProjection, seg0End)
		_, b0 := closestPointOnLine(projBase, dirForProjection, seg1Start)
		_, b1 := closestPointOnLine(projBase, dirForProjection, seg1End)

		d0 := a0
		d1 := b1

		if a0 > a1 {
			a0, a1 = a1, a0
		}
		if b0 > b1 {
			b0, b1 = b1, b0
		}

		if (a0 > b0 && a0 > b1) || (a1 < b0 && a1 < b1) {
			return errors.Wrap(ErrInfeasible, "general corner: no overlap between cruise extents")
		}

		ds := []float64{a0, a1, b0, b1}
		sortFloats(ds)
		inner, outer := ds[1], ds[2]
		if math.Abs(inner) > math.Abs(outer) {
			inner, outer = outer, inner
		}

		earliestStart = projBase.Add(seg0Start.Sub(projBase).Mul(outer / d0))
		latestStart = projBase.Add(seg0Start.Sub(projBase).Mul(inner / d0))
		earliestEnd = projBase.Add(seg1End.Sub(projBase).Mul(inner / d1))
		latestEnd = projBase.Add(seg1End.Sub(projBase).Mul(outer / d1))

		maxJerkLength = curveEndPoint.Length()
	}

	shortestAllowableLength := latestStart.Sub(earliestEnd).Length()
	longestAllowableLength := earliestStart.Sub(latestEnd).Length()

	if longestAllowableLength != 0 && maxJerkLength > longestAllowableLength+0.0000001 {
		return errors.Wrap(ErrInfeasible, "jerk limit does not allow turning this tight")
	}

	switch {
	case doubleBack:
		// startPoint/endPoint already finalized above.
	case m1.BlendType == core.BlendMaxJerk:
		if maxJerkLength <= shortestAllowableLength {
			ratio := maxJerkLength / shortestAllowableLength
			j = j.Mul(ratio * ratio)
			T = durationFromJerkAndAcceleration(j, v1.Sub(v0))
			startPoint = latestStart
			endPoint = earliestEnd
		} else {
			f := math.Abs((maxJerkLength - shortestAllowableLength) / (longestAllowableLength - shortestAllowableLength))
			startPoint = latestStart.Add(earliestStart.Sub(latestStart).Mul(f))
			endPoint = earliestEnd.Add(latestEnd.Sub(earliestEnd).Mul(f))
		}
	default:
		if j.LengthSquared() != 0 && longestAllowableLength != 0 {
			ratio := maxJerkLength / longestAllowableLength
			j = j.Mul(ratio * ratio)
			T = durationFromJerkAndAcceleration(j, v1.Sub(v0))
		}
		startPoint = earliestStart
		endPoint = latestEnd
	}

	linear0Len := startPoint.Sub(seg0.Pos).Length()
	seg0.Duration = linear0Len / seg0.Vel.Length()

	linear1Len := seg2.Pos.Sub(endPoint).Length()
	seg1.Duration = linear1Len / seg1.Vel.Length()
	seg1.Pos = endPoint

	markSkippedSegments(m0, 0)
	markSkippedSegments(m1, 1)

	t := T
	sh := v0.Mul(t).Add(j.Mul(t * t * t / 6))
	vh := v0.Add(j.Mul(t * t / 2))
	ah := j.Mul(t)

	m0.Segments = append(m0.Segments,
		core.Segment{Pos: startPoint, Vel: v0, Acc: core.Vec3Zero, Jerk: j, Duration: T},
		core.Segment{Pos: sh.Add(startPoint), Vel: vh, Acc: ah, Jerk: j.Mul(-1), Duration: T},
	)

	return nil
}

// clampAxis scales v down as a whole, checking one axis at a time, so that
// |v_i| <= limit_i on every axis with a non-zero limit, matching the
// reference implementation's per-axis trim (it trims X, then Y, then Z,
// each time rescaling the whole vector, so its direction is preserved).
func clampAxis(v, limit core.Vec3) core.Vec3 {
	if limit.X != 0 && math.Abs(v.X) > limit.X {
		v = v.Mul(limit.X / math.Abs(v.X))
	}
	if limit.Y != 0 && math.Abs(v.Y) > limit.Y {
		v = v.Mul(limit.Y / math.Abs(v.Y))
	}
	if limit.Z != 0 && math.Abs(v.Z) > limit.Z {
		v = v.Mul(limit.Z / math.Abs(v.Z))
	}

	return v
}

// reduceForVelocityBudget computes the jerk-reduction factor (capped at 1)
// that keeps the acceleration vector a achievable given the velocity swing
// dv and candidate jerk j, per axis (spec.md §4.5 "Jerk direction and
// magnitude").
func reduceForVelocityBudget(a, j, dv core.Vec3) float64 {
	maxJerkLim := 1.0
	if dv.X != 0 && j.X != 0 {
		mjx := (a.X * a.X) / dv.X
		maxJerkLim = math.Min(maxJerkLim, math.Abs(mjx/j.X))
	}
	if dv.Y != 0 && j.Y != 0 {
		mjy := (a.Y * a.Y) / dv.Y
		maxJerkLim = math.Min(maxJerkLim, math.Abs(mjy/j.Y))
	}
	if dv.Z != 0 && j.Z != 0 {
		mjz := (a.Z * a.Z) / dv.Z
		maxJerkLim = math.Min(maxJerkLim, math.Abs(mjz/j.Z))
	}

	return maxJerkLim
}

// largestRoot solves a*x^2 + b*x + c = 0 and reports whether a real root
// exists, returning both roots (equal, for a double root).
func largestRoot(a, b, c float64) (x0, x1 float64, ok bool) {
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)

	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}

// sortFloats sorts a 4-element slice in place (insertion sort; the slice
// is always exactly 4 long at the one call site).
func sortFloats(ds []float64) {
	for i := 1; i < len(ds); i++ {
		for k := i; k > 0 && ds[k-1] > ds[k]; k-- {
			ds[k-1], ds[k] = ds[k], ds[k-1]
		}
	}
}
