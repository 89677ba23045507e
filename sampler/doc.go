// Package sampler turns the control points of a curve into evenly spaced
// samples along it.
/*

Resampling runs in three steps. First the curve representation is
evaluated densely, yielding a polyline with (roughly) samplingResolution
points. Two representations are supported:

   Bezier   a chain of cubic Bézier segments sharing their end points:
            z.0 z.1 z.2 z.3 form the first segment, z.3 z.4 z.5 z.6 the
            second, and so on. Trailing points not filling a segment are
            ignored.

   BSpline  a clamped B-spline of degree 3 using all points as control
            points. The curve passes through the first and the last point.

From the dense polyline an arc-length table is computed; its total
length is divided into numPoints-1 equal parts. Walking the polyline, each
time the accumulated length crosses the next target length a sample is
emitted. With SnapToDense this sample is the dense point reached, with
Interpolate it is placed on the crossing segment exactly. The first and last
sample are always the first and last control point.

Spacing precision is bounded by the sampling resolution: raising it brings
samples closer to perfectly even spacing at the cost of more evaluations.

   samples, err := sampler.Resample(points, sampler.BSpline, 10, 200)

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sampler
