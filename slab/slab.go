// Package slab builds closed, printable solids out of
// height grids.
//
// A solid consists of a top surface following the grid,
// a flat bottom at z=0, and vertical walls along the four
// borders of the grid.
package slab

import (
	"github.com/arnonbruno/valley-stability/surface"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

const (
	// DefaultModelWidth is the printed size (mm) of the
	// largest x coordinate.
	DefaultModelWidth = 200.0

	// DefaultBaseThickness is the height (mm) added under
	// the whole surface.
	DefaultBaseThickness = 2.0
)

// Options controls how a grid is turned into a solid.
type Options struct {
	ModelWidth    float64
	BaseThickness float64

	// NumWorkers is the number of goroutines used to emit
	// faces, or 0 for GOMAXPROCS.
	NumWorkers int
}

// DefaultOptions returns the reference print settings.
func DefaultOptions() Options {
	return Options{
		ModelWidth:    DefaultModelWidth,
		BaseThickness: DefaultBaseThickness,
	}
}

// A Mesh is an indexed triangle mesh.
//
// Faces are wound counter-clockwise when viewed from
// outside the solid.
type Mesh struct {
	Vertices []model3d.Coord3D
	Faces    [][3]int
}

// ScaleFactor computes the planar scale that maps the
// grid's largest x coordinate to width. Grids whose x
// range ends at or below zero are left unscaled.
func ScaleFactor(g *surface.Grid, width float64) float64 {
	if g.XMax <= 0 {
		return 1
	}
	return width / g.XMax
}

// Build creates a closed mesh from the grid.
//
// For an R x C grid with N = R*C nodes, vertex i < N is
// the top of node i (row-major), and vertex N+i is the
// bottom of the same node. x and y are scaled by
// ScaleFactor.
func Build(g *surface.Grid, opts Options) (*Mesh, error) {
	if g.Rows < 2 || g.Cols < 2 {
		return nil, errors.New("build slab: grid must be at least 2x2")
	}
	if opts.ModelWidth <= 0 {
		return nil, errors.New("build slab: model width must be positive")
	}
	if opts.BaseThickness < 0 {
		return nil, errors.New("build slab: negative base thickness")
	}

	rows, cols := g.Rows, g.Cols
	n := rows * cols

	vertices := make([]model3d.Coord3D, 2*n)
	for r := 0; r < rows; r++ {
		y := g.Y(r)
		for c := 0; c < cols; c++ {
			x := g.X(c)
			i := r*cols + c
			vertices[i] = model3d.XYZ(x, y, g.Get(r, c)+opts.BaseThickness)
			vertices[n+i] = model3d.XYZ(x, y, 0)
		}
	}

	numCells := (rows - 1) * (cols - 1)
	faces := make([][3]int, 4*numCells, 4*numCells+4*(rows-1+cols-1))
	essentials.ConcurrentMap(opts.NumWorkers, rows-1, func(r int) {
		for c := 0; c < cols-1; c++ {
			tl := r*cols + c
			tr := tl + 1
			bl := tl + cols
			br := bl + 1
			idx := 4 * (r*(cols-1) + c)
			faces[idx] = [3]int{tl, tr, bl}
			faces[idx+1] = [3]int{tr, br, bl}
			faces[idx+2] = [3]int{n + tl, n + bl, n + tr}
			faces[idx+3] = [3]int{n + tr, n + bl, n + br}
		}
	})

	top := func(r, c int) int { return r*cols + c }
	bottom := func(r, c int) int { return n + r*cols + c }

	// Near borders face -y and -x, far borders +y and +x.
	for c := 0; c < cols-1; c++ {
		faces = append(faces,
			[3]int{bottom(0, c), bottom(0, c+1), top(0, c+1)},
			[3]int{bottom(0, c), top(0, c+1), top(0, c)},
		)
	}
	for c := 0; c < cols-1; c++ {
		r := rows - 1
		faces = append(faces,
			[3]int{top(r, c), top(r, c+1), bottom(r, c+1)},
			[3]int{top(r, c), bottom(r, c+1), bottom(r, c)},
		)
	}
	for r := 0; r < rows-1; r++ {
		faces = append(faces,
			[3]int{top(r, 0), top(r+1, 0), bottom(r+1, 0)},
			[3]int{top(r, 0), bottom(r+1, 0), bottom(r, 0)},
		)
	}
	for r := 0; r < rows-1; r++ {
		c := cols - 1
		faces = append(faces,
			[3]int{top(r+1, c), top(r, c), bottom(r, c)},
			[3]int{top(r+1, c), bottom(r, c), bottom(r+1, c)},
		)
	}

	m := &Mesh{Vertices: vertices, Faces: faces}
	return m.Scale(ScaleFactor(g, opts.ModelWidth)), nil
}

// Triangle gets the coordinates of face i.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	f := m.Faces[i]
	return &model3d.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Triangles flattens the mesh into independent triangles,
// preserving face order and winding.
func (m *Mesh) Triangles() []*model3d.Triangle {
	res := make([]*model3d.Triangle, len(m.Faces))
	for i := range m.Faces {
		res[i] = m.Triangle(i)
	}
	return res
}

// Model converts the mesh into a model3d.Mesh.
func (m *Mesh) Model() *model3d.Mesh {
	return model3d.NewMeshTriangles(m.Triangles())
}

// Scale returns a copy of the mesh with x and y scaled
// by s, leaving z unchanged.
func (m *Mesh) Scale(s float64) *Mesh {
	res := &Mesh{
		Vertices: make([]model3d.Coord3D, len(m.Vertices)),
		Faces:    append([][3]int{}, m.Faces...),
	}
	for i, v := range m.Vertices {
		res.Vertices[i] = model3d.XYZ(v.X*s, v.Y*s, v.Z)
	}
	return res
}
