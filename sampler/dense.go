package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dense evaluates the curve defined by control points ctrl at resolution
// parameter values uniformly distributed in [0,1]. For Bezier chains every
// segment is evaluated at resolution values; the joint points shared by two
// segments appear only once in the result.
//
// Dense reports ErrInvalidCurveKind for kinds other than Bezier and BSpline,
// and ErrInsufficientControlPoints for less than 4 control points.
func Dense(ctrl []r3.Vec, kind CurveKind, resolution int) ([]r3.Vec, error) {
	if kind != Bezier && kind != BSpline {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCurveKind, kind)
	}
	if len(ctrl) < MinControlPoints {
		return nil, fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientControlPoints,
			len(ctrl), MinControlPoints)
	}
	if resolution < 2 {
		return nil, fmt.Errorf("%w: sampling resolution %d, need at least 2", ErrDegenerateCurve,
			resolution)
	}
	params := make([]float64, resolution)
	floats.Span(params, 0, 1)
	var dense []r3.Vec
	if kind == BSpline {
		dense = bsplineDense(ctrl, params)
	} else {
		dense = bezierDense(ctrl, params)
	}
	tracer().Debugf("%s with %d control points evaluated to %d dense points", kind, len(ctrl), len(dense))
	return dense, nil
}

// --- Bézier chains ---------------------------------------------------------

func bezierDense(ctrl []r3.Vec, params []float64) []r3.Vec {
	segcnt := (len(ctrl) - 1) / 3
	if rest := (len(ctrl) - 1) % 3; rest != 0 {
		tracer().Infof("Bézier chain ignores %d trailing control point(s)", rest)
	}
	dense := make([]r3.Vec, 0, segcnt*(len(params)-1)+1)
	for s := 0; s < segcnt; s++ {
		p0, p1, p2, p3 := ctrl[3*s], ctrl[3*s+1], ctrl[3*s+2], ctrl[3*s+3]
		for j, t := range params {
			if j == 0 && s > 0 { // shared with end of previous segment
				continue
			}
			dense = append(dense, cubicBezier(p0, p1, p2, p3, t))
		}
	}
	return dense
}

// (1−t)³p0 + 3(1−t)²t p1 + 3(1−t)t² p2 + t³p3
func cubicBezier(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	mt := 1 - t
	b0 := mt * mt * mt
	b1 := 3 * mt * mt * t
	b2 := 3 * mt * t * t
	b3 := t * t * t
	return r3.Add(
		r3.Add(r3.Scale(b0, p0), r3.Scale(b1, p1)),
		r3.Add(r3.Scale(b2, p2), r3.Scale(b3, p3)),
	)
}

// --- Clamped B-splines -----------------------------------------------------

// clampedKnots returns the knot vector for n control points: 3 zeros,
// n-2 values spanning [0,1], 3 ones. This yields n+degree+1 knots.
func clampedKnots(n int) []float64 {
	interior := make([]float64, n-degree+1)
	floats.Span(interior, 0, 1)
	knots := make([]float64, 0, n+degree+1)
	knots = append(knots, 0, 0, 0)
	knots = append(knots, interior...)
	knots = append(knots, 1, 1, 1)
	return knots
}

func bsplineDense(ctrl []r3.Vec, params []float64) []r3.Vec {
	knots := clampedKnots(len(ctrl))
	dense := make([]r3.Vec, len(params))
	for i, x := range params {
		k := findSpan(knots, len(ctrl), x)
		dense[i] = deBoor(k, x, knots, ctrl)
	}
	return dense
}

// findSpan returns k with knots[k] <= x < knots[k+1], restricted to
// [degree, n-1]. x = 1 falls into the last non-empty span, so the curve
// ends at the last control point.
func findSpan(knots []float64, n int, x float64) int {
	k := degree
	for k < n-1 && knots[k+1] <= x {
		k++
	}
	return k
}

// deBoor evaluates the spline at x in span k.
func deBoor(k int, x float64, knots []float64, ctrl []r3.Vec) r3.Vec {
	var d [degree + 1]r3.Vec
	for j := 0; j <= degree; j++ {
		d[j] = ctrl[j+k-degree]
	}
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			lo, hi := knots[j+k-degree], knots[j+1+k-r]
			alpha := 0.0
			if hi != lo {
				alpha = (x - lo) / (hi - lo)
			}
			d[j] = r3.Add(r3.Scale(1-alpha, d[j-1]), r3.Scale(alpha, d[j]))
		}
	}
	return d[degree]
}
