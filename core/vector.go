// Package core defines the fundamental types shared by every stage of the
// motion-planning pipeline: Vec3, Segment, Move, AxisLimits, and the
// corner-blend enums. It declares no algorithms of its own — scurve, blend,
// schedule, collate and trajectory each consume these types the way
// lvlath's dijkstra/flow/bfs packages consume core.Graph.
//
// Errors:
//
//	ErrInvalidLimits    - a global vel/acc/jerk limit has a zero component.
//	ErrDegenerateMove   - a move's src equals its dst.
//	ErrZeroMoveScalar   - a move's vel/acc/jerk scalar is zero or negative.
package core

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is a three-axis vector used for position, velocity, acceleration and
// jerk throughout the pipeline. It is a thin value type over r3.Vector; the
// core arithmetic (Add, Sub, Mul, Dot, Cross, Norm) is delegated to
// github.com/golang/geo/r3, while the element-wise helpers (MulElem, Abs,
// Clamp, BoundedVector, Max) are computed directly.
type Vec3 struct {
	X, Y, Z float64
}

// Vec3Zero is the additive identity.
var Vec3Zero = Vec3{}

// r3v converts to the underlying r3.Vector representation.
func (v Vec3) r3v() r3.Vector { return r3.Vector{X: v.X, Y: v.Y, Z: v.Z} }

// fromR3 converts back from r3.Vector.
func fromR3(u r3.Vector) Vec3 { return Vec3{X: u.X, Y: u.Y, Z: u.Z} }

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 { return fromR3(v.r3v().Add(u.r3v())) }

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 { return fromR3(v.r3v().Sub(u.r3v())) }

// Mul returns v scaled by s (scalar multiply; commutative, so Scale(s, v)
// below covers the "scalar on the left" spelling from spec.md §3).
func (v Vec3) Mul(s float64) Vec3 { return fromR3(v.r3v().Mul(s)) }

// Scale returns v scaled by s. Equivalent to v.Mul(s); provided so call
// sites that read naturally as "s times v" (as in the seven-segment
// synthesis formulas) don't have to flip operand order.
func Scale(s float64, v Vec3) Vec3 { return v.Mul(s) }

// MulElem returns the element-wise (Hadamard) product of v and u.
func (v Vec3) MulElem(u Vec3) Vec3 {
	return Vec3{X: v.X * u.X, Y: v.Y * u.Y, Z: v.Z * u.Z}
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float64 { return v.r3v().Dot(u.r3v()) }

// Cross returns the cross product of v and u.
func (v Vec3) Cross(u Vec3) Vec3 { return fromR3(v.r3v().Cross(u.r3v())) }

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 { return v.r3v().Norm() }

// LengthSquared returns the squared Euclidean norm of v, avoiding a sqrt.
func (v Vec3) LengthSquared() float64 { return v.r3v().Norm2() }

// Normalize scales v in place to unit length and returns the length v had
// before normalization. If v is (numerically) the zero vector, v is left
// unchanged and 0 is returned.
func (v *Vec3) Normalize() float64 {
	length := v.Length()
	if length == 0 {
		return 0
	}
	*v = v.Mul(1 / length)

	return length
}

// Abs returns the component-wise absolute value of v.
func (v Vec3) Abs() Vec3 {
	return Vec3{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// AnyZero reports whether any component of v is exactly zero. Used to
// validate global velocity/acceleration/jerk limits (spec.md §7:
// InvalidLimits).
func (v Vec3) AnyZero() bool {
	return v.X == 0 || v.Y == 0 || v.Z == 0
}

// Clamp returns v with each component clamped to within [-limit_i, limit_i].
func (v Vec3) Clamp(limit Vec3) Vec3 {
	return Vec3{
		X: clampAbs(v.X, limit.X),
		Y: clampAbs(v.Y, limit.Y),
		Z: clampAbs(v.Z, limit.Z),
	}
}

func clampAbs(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}

	return x
}

// BoundedVector returns the vector k*dir of largest magnitude such that
// |k*dir_i| <= limit_i for every axis i (spec.md §9 "getBoundedVector").
// Equivalently k = min over non-zero components of limit_i/|dir_i|.
func BoundedVector(dir Vec3, limit Vec3) Vec3 {
	k := math.Inf(1)
	if dir.X != 0 {
		k = math.Min(k, limit.X/math.Abs(dir.X))
	}
	if dir.Y != 0 {
		k = math.Min(k, limit.Y/math.Abs(dir.Y))
	}
	if dir.Z != 0 {
		k = math.Min(k, limit.Z/math.Abs(dir.Z))
	}
	if math.IsInf(k, 1) {
		k = 0
	}

	return dir.Mul(k)
}

// Max returns the component-wise maximum of a and b.
func Max(a, b Vec3) Vec3 {
	return Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// WithinPositionLimits reports whether p lies within [lower, upper] on
// every axis, within the given absolute tolerance.
func WithinPositionLimits(p, lower, upper Vec3, tol float64) bool {
	return within(p.X, lower.X, upper.X, tol) &&
		within(p.Y, lower.Y, upper.Y, tol) &&
		within(p.Z, lower.Z, upper.Z, tol)
}

func within(x, lower, upper, tol float64) bool {
	return x >= lower-tol && x <= upper+tol
}
