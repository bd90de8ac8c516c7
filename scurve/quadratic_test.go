package scurve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveQuadratic_TwoRealRoots(t *testing.T) {
	// x^2 - 3x + 2 = 0 -> roots 1, 2
	x0, x1, n := solveQuadratic(1, -3, 2)
	require.Equal(t, 2, n)
	require.InDelta(t, 1, x0, 1e-9)
	require.InDelta(t, 2, x1, 1e-9)
}

func TestSolveQuadratic_NoRealRoots(t *testing.T) {
	_, _, n := solveQuadratic(1, 0, 1)
	require.Equal(t, 0, n)
}

func TestSolveQuadratic_LinearFallback(t *testing.T) {
	x0, _, n := solveQuadratic(0, 2, -4)
	require.Equal(t, 1, n)
	require.InDelta(t, 2, x0, 1e-9)
}

func TestLargestNonNegativeRoot(t *testing.T) {
	root, ok := largestNonNegativeRoot(1, -3, 2)
	require.True(t, ok)
	require.InDelta(t, 2, root, 1e-9)

	_, ok = largestNonNegativeRoot(1, 0, 1)
	require.False(t, ok)
}
