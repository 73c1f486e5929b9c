// Package surface reconstructs a regular height grid from
// scattered lattice samples.
package surface

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

// Options controls grid reconstruction.
type Options struct {
	// Resolution is the number of nodes along each axis.
	Resolution int

	// Sigma is the standard deviation of the smoothing
	// filter, in grid cells. Zero disables smoothing.
	Sigma float64

	// NumWorkers is the number of goroutines to use, or 0
	// for GOMAXPROCS.
	NumWorkers int
}

// WebOptions are the reference settings for the
// interactive heightmap.
func WebOptions() Options {
	return Options{Resolution: 150, Sigma: 2.0}
}

// PrintOptions are the reference settings for the
// printable solid.
func PrintOptions() Options {
	return Options{Resolution: 350, Sigma: 3.0}
}

// Reconstruct resamples the points onto a regular grid
// spanning their bounding box.
//
// Values are interpolated linearly over a Delaunay
// triangulation. Nodes outside the convex hull take the
// smallest point value, and the whole grid is then
// smoothed. Collinear points span no area and are an
// error.
func Reconstruct(points []Point, opts Options) (*Grid, error) {
	if len(points) == 0 {
		return nil, errors.New("reconstruct: no points")
	}
	if opts.Resolution < 2 {
		return nil, errors.New("reconstruct: resolution must be at least 2")
	}
	if opts.Sigma < 0 {
		return nil, errors.New("reconstruct: negative sigma")
	}
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return nil, errors.New("reconstruct: non-finite point value")
		}
	}

	tri, err := Triangulate(points)
	if err != nil {
		return nil, errors.Wrap(err, "reconstruct")
	}
	if len(tri.Triangles) == 0 {
		return nil, errors.New("reconstruct: samples are collinear")
	}
	grid, err := Interpolate(tri, opts.Resolution, opts.Resolution, opts.NumWorkers)
	if err != nil {
		return nil, errors.Wrap(err, "reconstruct")
	}
	FillHoles(grid, minValue(points))
	return Smooth(grid, opts.Sigma, opts.NumWorkers), nil
}

// Interpolate samples the triangulation at every node of
// a rows*cols grid spanning the points' bounding box.
// Nodes outside the convex hull are NaN.
//
// When a node touches several triangles, the triangle
// with the lowest index wins, so results are reproducible.
func Interpolate(t *Triangulation, rows, cols, numWorkers int) (*Grid, error) {
	if len(t.Points) == 0 {
		return nil, errors.New("interpolate: empty triangulation")
	}
	xMin, xMax, yMin, yMax := bounds(t.Points)
	grid, err := NewGrid(rows, cols, xMin, xMax, yMin, yMax)
	if err != nil {
		return nil, errors.Wrap(err, "interpolate")
	}
	for i := range grid.Values {
		grid.Values[i] = math.NaN()
	}

	rowTris := make([][]int, rows)
	for i, tri := range t.Triangles {
		lo, hi := triangleRows(t, tri)
		for r := firstAtLeast(grid.ys, lo); r < rows && grid.ys[r] <= hi; r++ {
			rowTris[r] = append(rowTris[r], i)
		}
	}

	essentials.ConcurrentMap(numWorkers, rows, func(r int) {
		y := grid.ys[r]
		for c, x := range grid.xs {
			if i, w, ok := t.locate(rowTris[r], x, y); ok {
				grid.Values[r*cols+c] = t.blend(i, w)
			}
		}
	})
	return grid, nil
}

// FillHoles replaces every NaN node with fill and returns
// the number of nodes replaced.
func FillHoles(g *Grid, fill float64) int {
	var count int
	for i, v := range g.Values {
		if math.IsNaN(v) {
			g.Values[i] = fill
			count++
		}
	}
	return count
}

func triangleRows(t *Triangulation, tri [3]int) (lo, hi float64) {
	a, b, c := t.Points[tri[0]].Y, t.Points[tri[1]].Y, t.Points[tri[2]].Y
	return float64(min(a, b, c)) - insideEpsilon, float64(max(a, b, c)) + insideEpsilon
}

func firstAtLeast(axis []float64, v float64) int {
	return sort.SearchFloat64s(axis, v)
}

func bounds(points []Point) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		xMin = math.Min(xMin, float64(p.X))
		xMax = math.Max(xMax, float64(p.X))
		yMin = math.Min(yMin, float64(p.Y))
		yMax = math.Max(yMax, float64(p.Y))
	}
	return
}

func minValue(points []Point) float64 {
	res := math.Inf(1)
	for _, p := range points {
		res = math.Min(res, p.Value)
	}
	return res
}
