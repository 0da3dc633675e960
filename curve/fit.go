package curve

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularDetThreshold is the determinant magnitude below which a
// normal-equation system is treated as degenerate and the fit is
// abandoned in favor of the original values.
const singularDetThreshold = 1e-10

// quadCoeffs holds the coefficients of v(t) = A + B*t + C*t².
type quadCoeffs struct {
	A, B, C float64
}

// eval evaluates the fitted polynomial at t.
func (q quadCoeffs) eval(t float64) float64 {
	return q.A + q.B*t + q.C*t*t
}

// fitQuadratic fits v(t) = a + b*t + c*t² to the samples by least
// squares, forming the 3×3 normal equations and solving them with a
// pivoted dense solve. Returns ok=false when the system is near
// singular or malformed; callers then keep their original values.
func fitQuadratic(ts, vals []float64) (quadCoeffs, bool) {
	if len(ts) < 3 || len(ts) != len(vals) {
		return quadCoeffs{}, false
	}

	var s0, s1, s2, s3, s4 float64
	var t0, t1, t2 float64
	s0 = float64(len(ts))
	for i, t := range ts {
		v := vals[i]
		tt := t * t
		s1 += t
		s2 += tt
		s3 += tt * t
		s4 += tt * tt
		t0 += v
		t1 += t * v
		t2 += tt * v
	}

	a := mat.NewDense(3, 3, []float64{
		s0, s1, s2,
		s1, s2, s3,
		s2, s3, s4,
	})
	if math.Abs(mat.Det(a)) < singularDetThreshold {
		return quadCoeffs{}, false
	}

	b := mat.NewVecDense(3, []float64{t0, t1, t2})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return quadCoeffs{}, false
	}
	return quadCoeffs{A: x.AtVec(0), B: x.AtVec(1), C: x.AtVec(2)}, true
}
