package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist"
)

// Identity is the rotation quaternion leaving every vector unchanged.
var Identity = r3.Rotation{Real: 1}

// Orientation returns the normalized rotation quaternion turning forward
// onto tangent. Both vectors need not be normalized, but must not be null;
// for a null vector the identity is returned.
//
// The rotation axis is forward × tangent. If forward and tangent are
// parallel the identity is returned. If they are anti-parallel the result is
// a half turn around forward × e, where e is the coordinate axis least
// aligned with forward (X before Y before Z on ties).
func Orientation(forward, tangent r3.Vec) r3.Rotation {
	f, okf := curvedist.Unit(forward)
	t, okt := curvedist.Unit(tangent)
	if !okf || !okt {
		tracer().Errorf("cannot orient %s onto %s", curvedist.VecString(forward), curvedist.VecString(tangent))
		return Identity
	}
	cos := curvedist.Clamp(r3.Dot(f, t), -1, 1)
	axis := r3.Cross(f, t)
	if curvedist.IsZero(axis) {
		if cos > 0 {
			return Identity
		}
		return r3.NewRotation(math.Pi, perpendicular(f))
	}
	return r3.NewRotation(math.Acos(cos), axis)
}

// perpendicular returns a unit vector perpendicular to unit vector v.
func perpendicular(v r3.Vec) r3.Vec {
	e := r3.Vec{X: 1}
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ay < ax && ay <= az {
		e = r3.Vec{Y: 1}
	} else if az < ax && az < ay {
		e = r3.Vec{Z: 1}
	}
	p, _ := curvedist.Unit(r3.Cross(v, e))
	return p
}
