package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scv/core"
)

func newTestPlanner() *Planner {
	p := New()
	p.SetPositionLimits(-1000, -1000, -1000, 1000, 1000, 1000)
	p.SetVelocityLimits(20, 20, 20)
	p.SetAccelerationLimits(200, 200, 200)
	p.SetJerkLimits(2000, 2000, 2000)

	return p
}

// S1 — straight ramp: one long move produces 7 segments, reaches its
// target velocity, and samples to its destination at traverseTime.
func TestPlanner_S1_StraightRampReachesDestination(t *testing.T) {
	p := newTestPlanner()
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)))
	require.NoError(t, p.Calculate())

	total := p.TraverseTime()
	require.Greater(t, total, 0.0)

	_, pos, _, _, _, _, running := p.Sample(total)
	require.False(t, running)
	require.InDelta(t, 10, pos.X, 1e-3)
}

// S2 — short move: ramps alone cover the distance, no cruise phase.
func TestPlanner_S2_ShortMoveHasNoCruise(t *testing.T) {
	p := newTestPlanner()
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{}, core.Vec3{X: 0.01}, 10, 100, 1000)))
	require.NoError(t, p.Calculate())

	require.Len(t, p.moves[0].Segments, 5)

	_, pos, _, _, _, _, _ := p.Sample(p.TraverseTime())
	require.InDelta(t, 0.01, pos.X, 1e-4)
}

// S6 — invalid limits: Calculate fails and leaves no trajectory.
func TestPlanner_S6_InvalidLimitsFailsCalculate(t *testing.T) {
	p := New()
	p.SetVelocityLimits(0, 20, 20)
	p.SetAccelerationLimits(100, 100, 100)
	p.SetJerkLimits(1000, 1000, 1000)
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)))

	err := p.Calculate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Equal(t, 0.0, p.TraverseTime())
}

func TestPlanner_AppendMove_RejectsDegenerateMove(t *testing.T) {
	p := newTestPlanner()
	err := p.AppendMove(core.NewMove(core.Vec3{X: 5}, core.Vec3{X: 5}, 10, 100, 1000))
	require.ErrorIs(t, err, core.ErrDegenerateMove)
}

func TestPlanner_AppendMove_ChainsSrcToPriorDst(t *testing.T) {
	p := newTestPlanner()
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)))
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{X: 999}, core.Vec3{X: 10, Y: 10}, 10, 100, 1000)))

	require.Equal(t, core.Vec3{X: 10}, p.moves[1].Src)
}

// S3 — right-angle corner blend in constant-jerk mode.
func TestPlanner_S3_RightAngleBlendStaysContinuous(t *testing.T) {
	p := newTestPlanner()
	p.SetCornerBlendMethod(core.BlendMethodConstantJerkSegments)

	m0 := core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)
	m1 := core.NewMove(core.Vec3{X: 10}, core.Vec3{X: 10, Y: 10}, 10, 100, 1000)
	m1.BlendType = core.BlendMinJerk

	require.NoError(t, p.AppendMove(m0))
	require.NoError(t, p.AppendMove(m1))
	require.NoError(t, p.Calculate())

	total := p.TraverseTime()
	require.Greater(t, total, 0.0)

	// Position continuity: no step moves farther than the per-axis
	// velocity limit (20) allows over dt.
	const dt = 0.001
	_, prev, _, _, _, _, _ := p.Sample(0)
	for ts := dt; ts <= total; ts += dt {
		_, pos, _, _, _, _, _ := p.Sample(ts)
		require.LessOrEqual(t, pos.Sub(prev).Length(), 20*dt+1e-6)
		prev = pos
	}
}

// S4 — reversal corner: a move doubling straight back on itself still
// blends (or is left sharp on ErrInfeasible, swallowed by Calculate) without
// breaking position continuity.
func TestPlanner_S4_ReversalCornerStaysContinuous(t *testing.T) {
	p := newTestPlanner()
	p.SetCornerBlendMethod(core.BlendMethodConstantJerkSegments)

	m0 := core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)
	m1 := core.NewMove(core.Vec3{X: 10}, core.Vec3{}, 10, 100, 1000)
	m1.BlendType = core.BlendMaxJerk

	require.NoError(t, p.AppendMove(m0))
	require.NoError(t, p.AppendMove(m1))
	require.NoError(t, p.Calculate())

	total := p.TraverseTime()
	require.Greater(t, total, 0.0)

	_, pos, _, _, _, _, running := p.Sample(total)
	require.False(t, running)
	require.InDelta(t, 0, pos.X, 1e-2)

	const dt = 0.001
	_, prev, _, _, _, _, _ := p.Sample(0)
	for ts := dt; ts <= total; ts += dt {
		_, cur, _, _, _, _, _ := p.Sample(ts)
		require.LessOrEqual(t, cur.Sub(prev).Length(), 20*dt+1e-6)
		prev = cur
	}
}

// S5 — interpolated overlap mode: scheduling and mid-overlap sampling.
func TestPlanner_S5_InterpolatedOverlapSamplesBothMoves(t *testing.T) {
	p := newTestPlanner()
	p.SetCornerBlendMethod(core.BlendMethodInterpolatedMoves)

	m0 := core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)
	m1 := core.NewMove(core.Vec3{X: 10}, core.Vec3{X: 10, Y: 10}, 10, 100, 1000)
	m1.BlendType = core.BlendMaxJerk

	require.NoError(t, p.AppendMove(m0))
	require.NoError(t, p.AppendMove(m1))
	require.NoError(t, p.Calculate())

	require.Less(t, p.moves[1].ScheduledTime, p.moves[0].ScheduledTime+p.moves[0].Duration)

	// Mid-overlap: m0 has not yet reached the corner on X while m1 already
	// contributes Y motion.
	overlapEnd := p.moves[0].ScheduledTime + p.moves[0].Duration
	mid := (p.moves[1].ScheduledTime + overlapEnd) / 2
	_, pos, _, _, _, _, running := p.Sample(mid)
	require.True(t, running)
	require.Less(t, pos.X, 10.0)
	require.Greater(t, pos.Y, 0.0)
}

func TestPlanner_Calculate_IsIdempotent(t *testing.T) {
	p := newTestPlanner()
	require.NoError(t, p.AppendMove(core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 10, 100, 1000)))

	require.NoError(t, p.Calculate())
	first := p.TraverseTime()
	require.NoError(t, p.Calculate())
	second := p.TraverseTime()

	require.Equal(t, first, second)
}
