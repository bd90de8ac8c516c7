package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMove_Direction(t *testing.T) {
	m := NewMove(Vec3{}, Vec3{X: 3, Y: 4}, 1, 1, 1)
	dir, length := m.Direction()

	require.InDelta(t, 5, length, 1e-9)
	require.InDelta(t, 0.6, dir.X, 1e-9)
	require.InDelta(t, 0.8, dir.Y, 1e-9)
}

func TestMove_DirectionDegenerate(t *testing.T) {
	m := NewMove(Vec3{X: 1}, Vec3{X: 1}, 1, 1, 1)
	dir, length := m.Direction()

	require.Equal(t, 0.0, length)
	require.Equal(t, Vec3{}, dir)
}

func TestMove_ValidateScalars(t *testing.T) {
	m := NewMove(Vec3{}, Vec3{X: 1}, 1, 1, 1)
	require.NoError(t, m.ValidateScalars())

	m.Vel = 0
	require.ErrorIs(t, m.ValidateScalars(), ErrZeroMoveScalar)
}

func TestAxisLimits_Validate(t *testing.T) {
	l := AxisLimits{
		Vel:  Vec3{X: 1, Y: 1, Z: 1},
		Acc:  Vec3{X: 1, Y: 1, Z: 1},
		Jerk: Vec3{X: 1, Y: 1, Z: 1},
	}
	require.NoError(t, l.Validate())

	l.Vel.Y = 0
	require.ErrorIs(t, l.Validate(), ErrInvalidLimits)
}
