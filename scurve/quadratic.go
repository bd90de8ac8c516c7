package scurve

import "math"

// solveQuadratic finds real roots of a*x^2 + b*x + c = 0 using the
// numerically stable form from spec.md §4.4/§9:
//
//	temp = -1/2 * (b + sign(b)*sqrt(disc))
//	x0, x1 = temp/a, c/temp
//
// which avoids the catastrophic cancellation the naive (-b±√disc)/2a form
// suffers when 4ac << b^2. Ported from the reference implementation's
// gsl_poly_solve_quadratic (original_source/src/scv/planner.cpp), itself
// lifted from the GSL polynomial-solving routines.
//
// Returns the number of real roots found (0, 1, or 2) and the roots
// themselves, ordered x0 <= x1 when there are two.
func solveQuadratic(a, b, c float64) (x0, x1 float64, n int) {
	if a == 0 {
		// Linear case.
		if b == 0 {
			return 0, 0, 0
		}

		return -c / b, 0, 1
	}

	disc := b*b - 4*a*c
	switch {
	case disc > 0:
		if b == 0 {
			r := math.Sqrt(-c / a)

			return -r, r, 2
		}
		sgnb := 1.0
		if b < 0 {
			sgnb = -1.0
		}
		temp := -0.5 * (b + sgnb*math.Sqrt(disc))
		r1 := temp / a
		r2 := c / temp
		if r1 < r2 {
			return r1, r2, 2
		}

		return r2, r1, 2
	case disc == 0:
		r := -0.5 * b / a

		return r, r, 2
	default:
		return 0, 0, 0
	}
}

// largestNonNegativeRoot returns the largest non-negative real root of
// a*x^2 + b*x + c = 0, and whether one exists. Used by Synthesize's
// distance-limited-cruise regime (spec.md §4.4) to pick TL.
func largestNonNegativeRoot(a, b, c float64) (float64, bool) {
	x0, x1, n := solveQuadratic(a, b, c)
	if n == 0 {
		return 0, false
	}
	best := x0
	if n == 2 && x1 > best {
		best = x1
	}
	if best < 0 {
		return 0, false
	}

	return best, true
}
