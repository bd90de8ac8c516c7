// Package planner is the external façade over the whole motion-planning
// pipeline (spec.md §6): callers configure global limits and a corner
// blend method, append moves, call Calculate, then sample or traverse the
// resulting trajectory.
package planner

import (
	"github.com/katalvlaran/scv/blend"
	"github.com/katalvlaran/scv/collate"
	"github.com/katalvlaran/scv/core"
	"github.com/katalvlaran/scv/schedule"
	"github.com/katalvlaran/scv/scurve"
	"github.com/katalvlaran/scv/trajectory"
)

// Options configures a Planner at construction time (spec.md §6
// "Configuration knobs").
type Options struct {
	MaxOverlapFraction float64
}

// Option is a functional option for New.
type Option func(*Options)

// WithMaxOverlapFraction overrides the default overlap cap used in
// InterpolatedMoves mode. Panics if frac is outside [0, 1].
func WithMaxOverlapFraction(frac float64) Option {
	return func(o *Options) {
		if frac < 0 || frac > 1 {
			panic("planner: MaxOverlapFraction must be in [0, 1]")
		}
		o.MaxOverlapFraction = frac
	}
}

// DefaultOptions returns the default planner configuration.
func DefaultOptions() Options {
	return Options{MaxOverlapFraction: 0.28}
}

// Planner owns a chain of moves, the global kinematic limits they are
// synthesized against, and the calculated trajectory.
type Planner struct {
	opts   Options
	limits core.AxisLimits
	method core.BlendMethod

	moves []*core.Move

	segSampler  *trajectory.SegmentSampler
	moveSampler *trajectory.MoveSampler
}

// New returns an empty Planner with BlendMethodNone and zero limits; the
// caller must set limits before Calculate will succeed.
func New(opts ...Option) *Planner {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Planner{opts: o, method: core.BlendMethodNone}
}

// SetPositionLimits sets the global position AABB.
func (p *Planner) SetPositionLimits(lx, ly, lz, ux, uy, uz float64) {
	p.limits.PosLower = core.Vec3{X: lx, Y: ly, Z: lz}
	p.limits.PosUpper = core.Vec3{X: ux, Y: uy, Z: uz}
}

// SetVelocityLimits sets the global per-axis velocity cap.
func (p *Planner) SetVelocityLimits(x, y, z float64) {
	p.limits.Vel = core.Vec3{X: x, Y: y, Z: z}
}

// SetAccelerationLimits sets the global per-axis acceleration cap.
func (p *Planner) SetAccelerationLimits(x, y, z float64) {
	p.limits.Acc = core.Vec3{X: x, Y: y, Z: z}
}

// SetJerkLimits sets the global per-axis jerk cap.
func (p *Planner) SetJerkLimits(x, y, z float64) {
	p.limits.Jerk = core.Vec3{X: x, Y: y, Z: z}
}

// SetCornerBlendMethod chooses between sharp corners, constant-jerk
// blending (C5), or interpolated-moves overlap (C6).
func (p *Planner) SetCornerBlendMethod(m core.BlendMethod) {
	p.method = m
}

// Clear drops all moves and any calculated trajectory.
func (p *Planner) Clear() {
	p.moves = nil
	p.segSampler = nil
	p.moveSampler = nil
}

// AppendMove chains m's Src to the previous move's Dst (or leaves it as
// given, for the first move), then appends it. Returns core.ErrZeroMoveScalar
// if m's Vel/Acc/Jerk is non-positive, or core.ErrDegenerateMove if the
// resulting move has Src == Dst (spec.md §6, §7).
func (p *Planner) AppendMove(m core.Move) error {
	if err := m.ValidateScalars(); err != nil {
		return err
	}

	if len(p.moves) > 0 {
		m.Src = p.moves[len(p.moves)-1].Dst
	}
	if m.Src == m.Dst {
		return core.ErrDegenerateMove
	}

	mv := m
	p.moves = append(p.moves, &mv)

	return nil
}

// Calculate runs the full pipeline: per-move synthesis, corner blending or
// interpolated scheduling per the configured method, collation, and
// trajectory-sampler setup. Returns an error (and leaves the trajectory
// empty) if the global limits are invalid or synthesis fails; corresponds
// to the reference implementation's calculate() returning false.
func (p *Planner) Calculate() error {
	p.segSampler = nil
	p.moveSampler = nil

	if err := p.limits.Validate(); err != nil {
		return ErrInvalidConfig
	}

	for _, m := range p.moves {
		if err := scurve.Synthesize(m, p.limits); err != nil {
			return err
		}
	}

	if p.method == core.BlendMethodConstantJerkSegments {
		for i := 1; i < len(p.moves); i++ {
			isFirst := i == 1
			isLast := i == len(p.moves)-1
			if p.moves[i].BlendType == core.BlendNone {
				continue
			}
			// A corner that can't be blended (ErrNotBlendable,
			// ErrInfeasible) is left sharp; position continuity still
			// holds since the ramps meet exactly at the shared corner.
			_ = blend.Corner(p.moves[i-1], p.moves[i], p.limits, isFirst, isLast)
		}
	}

	segments := collate.Flatten(p.moves)
	p.segSampler = trajectory.NewSegmentSampler(segments)

	if p.method == core.BlendMethodInterpolatedMoves {
		if err := schedule.Assign(p.moves, schedule.WithMaxOverlapFraction(p.opts.MaxOverlapFraction)); err != nil {
			return err
		}
		p.moveSampler = trajectory.NewMoveSampler(p.moves)
	}

	return nil
}

// Sample evaluates the trajectory at absolute time t (spec.md §6).
func (p *Planner) Sample(t float64) (idx int, pos, vel, acc, jerk core.Vec3, scaler float64, running bool) {
	if p.method == core.BlendMethodInterpolatedMoves && p.moveSampler != nil {
		st := p.moveSampler.Sample(t)

		return 0, st.Pos, st.Vel, st.Acc, st.Jerk, st.Scaler, st.Running
	}
	if p.segSampler == nil {
		return 0, core.Vec3{}, core.Vec3{}, core.Vec3{}, core.Vec3{}, 0, false
	}
	st := p.segSampler.Sample(t)

	return st.SegmentIndex, st.Pos, st.Vel, st.Acc, st.Jerk, st.Scaler, st.Running
}

// Advance steps the stateful traversal cursor forward by dt.
func (p *Planner) Advance(dt float64) (pos core.Vec3, running bool) {
	if p.method == core.BlendMethodInterpolatedMoves && p.moveSampler != nil {
		return p.moveSampler.Advance(dt)
	}
	if p.segSampler == nil {
		return core.Vec3{}, false
	}

	return p.segSampler.Advance(dt)
}

// ResetTraverse rewinds the stateful traversal cursor to the beginning.
func (p *Planner) ResetTraverse() {
	if p.moveSampler != nil {
		p.moveSampler.ResetTraverse()
	}
	if p.segSampler != nil {
		p.segSampler.ResetTraverse()
	}
}

// TraverseTime returns the total duration of the calculated trajectory.
func (p *Planner) TraverseTime() float64 {
	if p.method == core.BlendMethodInterpolatedMoves && p.moveSampler != nil {
		return p.moveSampler.TraverseTime()
	}
	if p.segSampler == nil {
		return 0
	}

	return p.segSampler.TraverseTime()
}
