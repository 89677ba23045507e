package sampler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'sampler'
func tracer() tracing.Trace {
	return tracing.Select("sampler")
}

// degree of the clamped B-spline
const degree = 3

// MinControlPoints is the minimum number of control points for cubic curves.
const MinControlPoints = 4

var (
	// ErrInsufficientControlPoints indicates fewer than 4 control points.
	ErrInsufficientControlPoints = errors.New("curve has too few control points")
	// ErrInvalidCurveKind indicates an unknown or unimplemented curve kind.
	ErrInvalidCurveKind = errors.New("invalid curve kind")
	// ErrDegenerateCurve indicates a curve without usable length or direction.
	ErrDegenerateCurve = errors.New("degenerate curve")
)

// CurveKind selects the curve representation used for dense evaluation.
type CurveKind int

const (
	Bezier CurveKind = iota // chained cubic Bézier segments
	BSpline                 // clamped cubic B-spline
	Linear                  // reserved, not implemented
)

func (k CurveKind) String() string {
	switch k {
	case Bezier:
		return "bezier"
	case BSpline:
		return "bspline"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

// ParseCurveKind maps a (case-insensitive) name to a curve kind.
// "linear" is recognized, but will be rejected by Dense.
func ParseCurveKind(s string) (CurveKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bezier":
		return Bezier, nil
	case "bspline", "b-spline":
		return BSpline, nil
	case "linear":
		return Linear, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCurveKind, s)
}

// Spacing selects how samples are placed when a target length is crossed.
type Spacing int

const (
	SnapToDense Spacing = iota // use the dense point reached
	Interpolate                // interpolate linearly on the crossing segment
)

func (s Spacing) String() string {
	if s == Interpolate {
		return "interpolate"
	}
	return "snap"
}

// ParseSpacing maps "snap" or "interpolate" to a spacing mode. The empty
// string denotes the default, SnapToDense.
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "snap":
		return SnapToDense, nil
	case "interpolate", "lerp":
		return Interpolate, nil
	}
	return 0, fmt.Errorf("unknown spacing mode %q", s)
}

// Sample is a point on a curve together with the curve's unit tangent there.
type Sample struct {
	Position r3.Vec
	Tangent  r3.Vec
}

// ArcLengths is the arc-length table of a dense polyline. Segments[i] is the
// distance between dense point i and i+1.
type ArcLengths struct {
	Segments []float64
	Total    float64
}
