package collate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scv/core"
)

func TestFlatten_SkipsDeletedAndZeroDurationSegments(t *testing.T) {
	m0 := core.NewMove(core.Vec3{}, core.Vec3{X: 10}, 1, 1, 1)
	m0.Scaler = 5
	m0.Segments = []core.Segment{
		{Duration: 1},
		{Duration: 0},
		{Duration: 1, ToDelete: true},
		{Duration: 2},
	}

	m1 := core.NewMove(core.Vec3{X: 10}, core.Vec3{X: 20}, 1, 1, 1)
	m1.Scaler = 3
	m1.Segments = []core.Segment{{Duration: 1}}

	out := Flatten([]*core.Move{&m0, &m1})
	require.Len(t, out, 3)

	require.Equal(t, 0, out[0].ConsecutiveNumber)
	require.Equal(t, 1, out[1].ConsecutiveNumber)
	require.Equal(t, 2, out[2].ConsecutiveNumber)

	require.Equal(t, 0, out[0].MoveOwner)
	require.Equal(t, 1, out[2].MoveOwner)

	require.Equal(t, 0.0, out[0].ScalerStart)
	require.Equal(t, 5.0, out[2].ScalerStart)
	require.Equal(t, 3.0, out[2].Scaler)
}

func TestFlatten_EmptyMovesYieldEmptySegments(t *testing.T) {
	out := Flatten(nil)
	require.Empty(t, out)
}
