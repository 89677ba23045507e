package sampler

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/npillmayer/curvedist"
)

// ArcLength computes the arc-length table of a dense polyline.
// For less than 2 points the table is empty and its total is 0.
func ArcLength(dense []r3.Vec) ArcLengths {
	if len(dense) < 2 {
		return ArcLengths{}
	}
	segs := make([]float64, len(dense)-1)
	for i := range segs {
		segs[i] = curvedist.Distance(dense[i], dense[i+1])
	}
	return ArcLengths{Segments: segs, Total: floats.Sum(segs)}
}

// Targets returns n cumulative target lengths, evenly dividing the total
// length into n-1 parts. The first target is 0, the last one is Total.
func (al ArcLengths) Targets(n int) []float64 {
	if n < 2 {
		return nil
	}
	step := al.Total / float64(n-1)
	targets := make([]float64, n)
	for i := range targets {
		targets[i] = float64(i) * step
	}
	return targets
}
