package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist"
)

// Resample returns n samples, evenly spaced by arc length along the curve
// defined by ctrl. resolution is the number of parameter values the curve
// is evaluated at (per segment for Bézier chains); 0 defaults to n.
//
// Samples snap to the dense polyline, see SnapToDense. The first sample is
// ctrl[0], the last one is ctrl[len(ctrl)-1]. All tangents have unit length.
func Resample(ctrl []r3.Vec, kind CurveKind, n, resolution int) ([]Sample, error) {
	return ResampleSpacing(ctrl, kind, n, resolution, SnapToDense)
}

// ResampleSpacing is like Resample, but lets clients choose the spacing mode.
//
// It fails with ErrDegenerateCurve if n < 2, if the curve has zero length,
// or if a tangent has to be derived from two coinciding points.
func ResampleSpacing(ctrl []r3.Vec, kind CurveKind, n, resolution int, spacing Spacing) ([]Sample, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d sample(s) requested, need at least 2", ErrDegenerateCurve, n)
	}
	if resolution == 0 {
		resolution = n
	}
	dense, err := Dense(ctrl, kind, resolution)
	if err != nil {
		return nil, err
	}
	al := ArcLength(dense)
	if al.Total == 0 {
		return nil, fmt.Errorf("%w: curve has zero length", ErrDegenerateCurve)
	}
	targets := al.Targets(n)
	tracer().Debugf("total length %g, target segment length %g", al.Total, targets[1])
	samples := make([]Sample, 0, n)
	tangent, err := direction(dense[0], dense[1])
	if err != nil {
		return nil, err
	}
	samples = append(samples, Sample{Position: ctrl[0], Tangent: tangent})
	next, acc := 1, 0.0
	for i, seglen := range al.Segments {
		if next >= n-1 {
			break
		}
		acc += seglen
		for next < n-1 && acc >= targets[next] {
			var s Sample
			if spacing == Interpolate {
				s, err = interpolated(dense, i, seglen, acc-targets[next])
			} else {
				s, err = snapped(dense, i+1)
			}
			if err != nil {
				return nil, err
			}
			samples = append(samples, s)
			next++
		}
	}
	last := len(ctrl) - 1
	tangent, err = direction(ctrl[last-1], ctrl[last])
	if err != nil {
		return nil, err
	}
	samples = append(samples, Sample{Position: ctrl[last], Tangent: tangent})
	if len(samples) != n { // may happen only due to rounding of acc
		tracer().Errorf("resampling produced %d samples instead of %d", len(samples), n)
		return nil, fmt.Errorf("%w: could not place %d samples", ErrDegenerateCurve, n)
	}
	tracer().Infof("resampled %s curve into %d samples, resolution %d", kind, n, resolution)
	return samples, nil
}

// snapped returns dense point i, with the tangent pointing to dense point i+1.
// For the last dense point the tangent of the incoming segment is used.
func snapped(dense []r3.Vec, i int) (Sample, error) {
	from, to := i, i+1
	if to >= len(dense) {
		from, to = i-1, i
	}
	t, err := direction(dense[from], dense[to])
	return Sample{Position: dense[i], Tangent: t}, err
}

// interpolated places a sample on segment i (dense[i] to dense[i+1]),
// overshoot being the distance from the target position to dense[i+1].
func interpolated(dense []r3.Vec, i int, seglen, overshoot float64) (Sample, error) {
	t, err := direction(dense[i], dense[i+1])
	if err != nil {
		return Sample{}, err
	}
	pos := r3.Add(dense[i], r3.Scale(seglen-overshoot, t))
	return Sample{Position: pos, Tangent: t}, nil
}

func direction(from, to r3.Vec) (r3.Vec, error) {
	u, ok := curvedist.Unit(r3.Sub(to, from))
	if !ok {
		return u, fmt.Errorf("%w: zero-length tangent at %s", ErrDegenerateCurve, curvedist.VecString(from))
	}
	return u, nil
}
