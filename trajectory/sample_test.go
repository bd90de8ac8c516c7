package trajectory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scv/core"
)

func linearSegments() []core.Segment {
	return []core.Segment{
		{Pos: core.Vec3{}, Vel: core.Vec3{X: 1}, Duration: 10, StartPos: core.Vec3{}, EndPos: core.Vec3{X: 20}, Scaler: 2},
		{Pos: core.Vec3{X: 10}, Vel: core.Vec3{X: 1}, Duration: 10, StartPos: core.Vec3{}, EndPos: core.Vec3{X: 20}, Scaler: 2},
	}
}

func TestSegmentSampler_BeforeStartReturnsFirstPoseNotRunning(t *testing.T) {
	s := NewSegmentSampler(linearSegments())
	state := s.Sample(-5)
	require.False(t, state.Running)
	require.Equal(t, core.Vec3{}, state.Pos)
}

func TestSegmentSampler_AtZeroIsRunning(t *testing.T) {
	s := NewSegmentSampler(linearSegments())
	state := s.Sample(0)
	require.True(t, state.Running)
}

func TestSegmentSampler_PastEndReturnsFinalPoseNotRunning(t *testing.T) {
	s := NewSegmentSampler(linearSegments())
	state := s.Sample(1000)
	require.False(t, state.Running)
	require.InDelta(t, 20, state.Pos.X, 1e-9)
}

func TestSegmentSampler_MidSegmentInterpolates(t *testing.T) {
	s := NewSegmentSampler(linearSegments())
	state := s.Sample(5)
	require.True(t, state.Running)
	require.InDelta(t, 5, state.Pos.X, 1e-9)
}

func TestSegmentSampler_AdvanceNeverStepsBackwards(t *testing.T) {
	s := NewSegmentSampler(linearSegments())
	pos1, running1 := s.Advance(5)
	require.True(t, running1)
	pos2, running2 := s.Advance(20)
	require.False(t, running2)
	require.GreaterOrEqual(t, pos2.X, pos1.X)
}

func TestMoveSampler_OverlappingMovesSumAndSubtractSharedCorner(t *testing.T) {
	m0 := core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 1, 1, 1)
	m0.Segments = []core.Segment{{Pos: core.Vec3{}, Vel: core.Vec3{X: 1}, Duration: 10}}
	m0.Duration = 10
	m0.ScheduledTime = 0

	m1 := core.NewMove(core.Vec3{X: 10}, core.Vec3{X: 20}, 1, 1, 1)
	m1.Segments = []core.Segment{{Pos: core.Vec3{X: 10}, Vel: core.Vec3{X: 1}, Duration: 10}}
	m1.Duration = 10
	m1.ScheduledTime = 5

	ms := NewMoveSampler([]*core.Move{&m0, &m1})
	state := ms.Sample(6)
	require.True(t, state.Running)
	// m0 at 6 plus m1 at 11, minus the shared corner (10).
	require.InDelta(t, 7, state.Pos.X, 1e-9)
}
