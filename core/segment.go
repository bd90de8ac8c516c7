package core

// Segment is a constant-jerk kinematic piece over a duration Duration >= 0,
// evaluated (spec.md §3) as:
//
//	pos(t) = Pos + Vel*t + 1/2*Acc*t^2 + 1/6*Jerk*t^3
//	vel(t) = Vel + Acc*t + 1/2*Jerk*t^2
//	acc(t) = Acc + Jerk*t
//	jerk(t) = Jerk
//
// Segments are produced by scurve.Synthesize (one move's worth at a time),
// mutated in place by blend.Corner (cruise segments shortened, ramp segments
// marked ToDelete), and finally flattened into a Planner's read-only segment
// list by collate.Flatten. StartPos/EndPos/Scaler/ScalerStart support the
// scalar (e.g. extruder) channel described in spec.md §3 and §4.7.
type Segment struct {
	Pos  Vec3
	Vel  Vec3
	Acc  Vec3
	Jerk Vec3

	Duration float64

	// ToDelete marks a segment pruned by corner blending (spec.md §4.5).
	// Segments with ToDelete set, or Duration <= 0, never reach the
	// collated list (spec.md §3 invariants).
	ToDelete bool

	// MoveOwner is the index into Planner.Moves this segment was
	// synthesized from.
	MoveOwner int

	// ConsecutiveNumber is a monotonic ordering assigned by collate.Flatten.
	ConsecutiveNumber int

	// Scaler channel (spec.md §3, §4.7): the auxiliary 1-D quantity (e.g.
	// extruder position) advances from ScalerStart to ScalerStart+Scaler as
	// the segment's position moves from StartPos to EndPos (the owning
	// move's src/dst).
	Scaler      float64
	ScalerStart float64
	StartPos    Vec3
	EndPos      Vec3
}

// EvaluateAt returns the pose at local time t (measured from the start of
// this segment, not clamped to [0, Duration] — callers clamp as needed).
func (s *Segment) EvaluateAt(t float64) (pos, vel, acc, jerk Vec3) {
	t2 := t * t
	t3 := t2 * t
	pos = s.Pos.Add(s.Vel.Mul(t)).Add(s.Acc.Mul(t2 / 2)).Add(s.Jerk.Mul(t3 / 6))
	vel = s.Vel.Add(s.Acc.Mul(t)).Add(s.Jerk.Mul(t2 / 2))
	acc = s.Acc.Add(s.Jerk.Mul(t))
	jerk = s.Jerk

	return pos, vel, acc, jerk
}

// PositionAt returns just the position at local time t; a cheaper call for
// callers (e.g. trajectory.SegmentSampler.Advance) that don't need velocity.
func (s *Segment) PositionAt(t float64) Vec3 {
	t2 := t * t
	t3 := t2 * t

	return s.Pos.Add(s.Vel.Mul(t)).Add(s.Acc.Mul(t2 / 2)).Add(s.Jerk.Mul(t3 / 6))
}

// Scalar returns the auxiliary scalar-channel value at local time t, or 0 if
// this segment carries no scalar channel (Scaler == 0).
func (s *Segment) Scalar(t float64) float64 {
	if s.Scaler == 0 {
		return 0
	}
	dist := s.PositionAt(t).Sub(s.StartPos)
	total := s.EndPos.Sub(s.StartPos).Length()
	if total == 0 {
		return s.ScalerStart
	}

	return s.ScalerStart + s.Scaler*dist.Length()/total
}
