/*
Package curvedist distributes copies or instances of template objects
along a sampled 3D curve inside a scene graph.

The work is split in two stages. Package sampler turns the control points
of a curve into evenly spaced (by arc length) samples with unit tangents.
Package placement consumes these samples and materializes new objects in a
scene graph, cycling through a set of template objects and optionally
rotating every copy to follow the curve. Package distribute wires both
stages to a configuration surface, and package memscene provides an
in-memory scene graph.

This package holds the numeric predicates and small vector helpers shared
by all of them.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curvedist

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'curvedist'
func tracer() tracing.Trace {
	return tracing.Select("curvedist")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Clamp restricts n to the interval [lo,hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// === Vectors ===============================================================

// Origin is the frequently used constant (0,0,0).
var Origin = r3.Vec{}

// V is a quick notation for constructing a 3D point from floats.
func V(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// VecString is a pretty Stringer for points and vectors.
func VecString(v r3.Vec) string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// IsZero is a predicate: is v the null vector (within ε) ?
func IsZero(v r3.Vec) bool {
	return Is0(r3.Norm(v))
}

// Equal compares two points coordinate-wise within ε.
func Equal(a, b r3.Vec) bool {
	return Is0(a.X-b.X) && Is0(a.Y-b.Y) && Is0(a.Z-b.Z)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// Unit returns the unit vector colinear to v. The second return value is false
// if v is the null vector, in which case no direction can be derived
// and the null vector is returned. Vectors shorter than ε are still
// normalized.
func Unit(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		tracer().Debugf("cannot normalize vector %s", VecString(v))
		return Origin, false
	}
	return r3.Scale(1/n, v), true
}
