package surface

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// A Grid is a regular lattice of heights.
//
// Rows run along y and columns run along x. Values are
// stored in row-major order, so the node at (row, col) is
// Values[row*Cols+col].
type Grid struct {
	Rows int
	Cols int

	XMin, XMax float64
	YMin, YMax float64

	Values []float64

	xs []float64
	ys []float64
}

// NewGrid creates a zero-valued grid spanning the given
// bounds, with rows*cols evenly spaced nodes.
func NewGrid(rows, cols int, xMin, xMax, yMin, yMax float64) (*Grid, error) {
	if rows < 2 || cols < 2 {
		return nil, errors.New("new grid: need at least 2x2 nodes")
	}
	if xMax < xMin || yMax < yMin {
		return nil, errors.New("new grid: inverted bounds")
	}
	return &Grid{
		Rows:   rows,
		Cols:   cols,
		XMin:   xMin,
		XMax:   xMax,
		YMin:   yMin,
		YMax:   yMax,
		Values: make([]float64, rows*cols),
		xs:     floats.Span(make([]float64, cols), xMin, xMax),
		ys:     floats.Span(make([]float64, rows), yMin, yMax),
	}, nil
}

// Get gets the exact value at a node.
// Out of bounds indices are clamped to the border.
func (g *Grid) Get(row, col int) float64 {
	row = clampIndex(row, g.Rows)
	col = clampIndex(col, g.Cols)
	return g.Values[row*g.Cols+col]
}

// Set sets the value at a node.
func (g *Grid) Set(row, col int, v float64) {
	g.Values[row*g.Cols+col] = v
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) {
	return g.Cols, g.Rows
}

// Z returns the value at column c and row r.
func (g *Grid) Z(c, r int) float64 {
	return g.Values[r*g.Cols+c]
}

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 {
	return g.xs[c]
}

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 {
	return g.ys[r]
}

// Min returns the smallest node value.
func (g *Grid) Min() float64 {
	return floats.Min(g.Values)
}

// Max returns the largest node value.
func (g *Grid) Max() float64 {
	return floats.Max(g.Values)
}

// Clone creates a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	res := *g
	res.Values = append([]float64{}, g.Values...)
	res.xs = append([]float64{}, g.xs...)
	res.ys = append([]float64{}, g.ys...)
	return &res
}

// Interp gets a bilinearly interpolated value at a point
// in grid coordinates. Points outside the bounds take the
// value of the nearest border.
func (g *Grid) Interp(x, y float64) float64 {
	cols, colFracs := roundedCoords(fractionalIndex(x, g.XMin, g.XMax, g.Cols))
	rows, rowFracs := roundedCoords(fractionalIndex(y, g.YMin, g.YMax, g.Rows))
	var value float64
	for i, r := range rows {
		for j, c := range cols {
			value += rowFracs[i] * colFracs[j] * g.Get(r, c)
		}
	}
	return value
}

// Resample creates a grid with the same bounds as g and a
// new resolution, using bilinear interpolation.
func Resample(g *Grid, rows, cols int) (*Grid, error) {
	res, err := NewGrid(rows, cols, g.XMin, g.XMax, g.YMin, g.YMax)
	if err != nil {
		return nil, errors.Wrap(err, "resample")
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			res.Set(r, c, g.Interp(res.X(c), res.Y(r)))
		}
	}
	return res, nil
}

func fractionalIndex(v, lo, hi float64, n int) float64 {
	if hi == lo {
		return 0
	}
	idx := (v - lo) / (hi - lo) * float64(n-1)
	return math.Max(0, math.Min(float64(n-1), idx))
}

func roundedCoords(c float64) (vals [2]int, fracs [2]float64) {
	min := int(math.Floor(c))
	max := min + 1
	minFrac := float64(max) - c
	maxFrac := 1 - minFrac
	return [2]int{min, max}, [2]float64{minFrac, maxFrac}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	} else if i >= n {
		return n - 1
	}
	return i
}
