// Package topo turns chart samples into instability
// heights measured relative to the valley of stability.
package topo

import (
	"math"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultReference is the binding energy per nucleon
	// (MeV) treated as the floor of the valley.
	DefaultReference = 8.8

	// DefaultWallScale controls how quickly heights rise
	// away from the valley centerline.
	DefaultWallScale = 2.0

	// DefaultMaxPrintHeight is the height (mm) that the
	// tallest sample is normalized to.
	DefaultMaxPrintHeight = 60.0
)

// A Sample is one observed point on the chart.
//
// X and Y are lattice coordinates (neutron and proton
// numbers for nuclide data), and Value is the observed
// scalar, such as binding energy per nucleon.
type Sample struct {
	X     int
	Y     int
	Value float64
}

// Scored is a Sample with its derived height.
type Scored struct {
	Sample
	Height float64
}

// Params holds the constants of the height formula
//
//	height = (Reference - value)^2 + WallScale*|y - y*(x)|
//
// where y*(x) comes from a Centerline.
type Params struct {
	Reference float64
	WallScale float64
}

// DefaultParams returns the reference constants.
func DefaultParams() Params {
	return Params{
		Reference: DefaultReference,
		WallScale: DefaultWallScale,
	}
}

// Height computes the height of a single sample.
//
// Values above Reference are not clamped; squaring the
// deficit keeps the result non-negative either way.
func (p Params) Height(s Sample, c *Centerline) float64 {
	deficit := p.Reference - s.Value
	dist := math.Abs(float64(s.Y - c.Center(s.X, s.Y)))
	return deficit*deficit + p.WallScale*dist
}

// Score builds the centerline of the samples and derives
// every height.
//
// Heights are computed on numWorkers goroutines, or on
// GOMAXPROCS goroutines if numWorkers is 0.
func Score(samples []Sample, p Params, numWorkers int) []Scored {
	center := NewCenterline(samples)
	res := make([]Scored, len(samples))
	essentials.ConcurrentMap(numWorkers, len(samples), func(i int) {
		res[i] = Scored{
			Sample: samples[i],
			Height: p.Height(samples[i], center),
		}
	})
	return res
}

// Normalize scales heights so that the largest height is
// exactly maxHeight.
//
// If no height is positive, every result is 0 so that the
// rest of the pipeline sees a flat floor.
func Normalize(scored []Scored, maxHeight float64) []float64 {
	res := make([]float64, len(scored))
	if len(scored) == 0 {
		return res
	}
	for i, s := range scored {
		res[i] = s.Height
	}
	top := floats.Max(res)
	if !(top > 0) {
		for i := range res {
			res[i] = 0
		}
		return res
	}
	for i, h := range res {
		res[i] = h / top * maxHeight
	}
	return res
}
