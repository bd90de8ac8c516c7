package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVec3_AddSubMul(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	require.Equal(t, Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
	require.Equal(t, Vec3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	require.Equal(t, Vec3{X: 2, Y: 4, Z: 6}, a.Mul(2))
}

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	length := v.Normalize()

	require.InDelta(t, 5, length, 1e-9)
	require.InDelta(t, 1, v.Length(), 1e-9)
}

func TestVec3_NormalizeZeroVectorIsNoop(t *testing.T) {
	v := Vec3{}
	length := v.Normalize()

	require.Equal(t, 0.0, length)
	require.Equal(t, Vec3{}, v)
}

func TestVec3_AnyZero(t *testing.T) {
	require.True(t, Vec3{X: 0, Y: 1, Z: 1}.AnyZero())
	require.False(t, Vec3{X: 1, Y: 1, Z: 1}.AnyZero())
}

func TestBoundedVector_ScalesToTightestAxis(t *testing.T) {
	dir := Vec3{X: 1, Y: 2, Z: 0}
	limit := Vec3{X: 10, Y: 10, Z: 10}

	bv := BoundedVector(dir, limit)
	// Y is the limiting axis: |2k| <= 10 => k <= 5, tighter than X's k <= 10.
	require.InDelta(t, 5, bv.X, 1e-9)
	require.InDelta(t, 10, bv.Y, 1e-9)
}

func TestBoundedVector_ZeroDirectionYieldsZero(t *testing.T) {
	bv := BoundedVector(Vec3{}, Vec3{X: 10, Y: 10, Z: 10})
	require.Equal(t, Vec3{}, bv)
}

func TestWithinPositionLimits(t *testing.T) {
	lower := Vec3{X: -10, Y: -10, Z: -10}
	upper := Vec3{X: 10, Y: 10, Z: 10}

	require.True(t, WithinPositionLimits(Vec3{X: 5, Y: -5, Z: 0}, lower, upper, 1e-6))
	require.False(t, WithinPositionLimits(Vec3{X: 15, Y: 0, Z: 0}, lower, upper, 1e-6))
	require.True(t, WithinPositionLimits(Vec3{X: 10.0000001, Y: 0, Z: 0}, lower, upper, 1e-4))
}
