package slab

import (
	"math"
	"sort"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Rays are tilted off the axes so they never run along a
// wall or a row of grid edges.
var rayDirections = []model3d.Coord3D{
	model3d.XYZ(0.0291, 0.0173, 0.9994).Normalize(),
	model3d.XYZ(0.9987, 0.0419, 0.0288).Normalize(),
	model3d.XYZ(-0.0351, 0.9991, -0.0227).Normalize(),
}

// A Solid answers containment queries for a closed Mesh.
type Solid struct {
	model3d.Collider

	// tolerance merges hits on faces sharing an edge.
	tolerance float64
}

// NewSolid creates a Solid from a closed mesh.
func NewSolid(m *Mesh) *Solid {
	collider := model3d.MeshToCollider(m.Model())
	return &Solid{
		Collider:  collider,
		tolerance: collider.Max().Dist(collider.Min()) * 1e-9,
	}
}

// Contains checks if c is enclosed by the mesh, using the
// parity of ray crossings. The rays vote, so one grazing
// ray cannot flip the answer.
func (s *Solid) Contains(c model3d.Coord3D) bool {
	if !model3d.InBounds(s, c) {
		return false
	}
	var votes int
	for _, d := range rayDirections {
		if s.crossings(&model3d.Ray{Origin: c, Direction: d})%2 == 1 {
			votes++
		}
	}
	return 2*votes > len(rayDirections)
}

func (s *Solid) crossings(ray *model3d.Ray) int {
	var scales []float64
	s.RayCollisions(ray, func(rc model3d.RayCollision) {
		scales = append(scales, rc.Scale)
	})
	sort.Float64s(scales)
	var count int
	for i, scale := range scales {
		if i == 0 || scale-scales[i-1] > s.tolerance {
			count++
		}
	}
	return count
}

// CheckContainment verifies that m encloses the material
// under the center of g and nothing above it.
//
// The interior point sits halfway up the column over the
// middle grid cell. If that column has no height, only the
// exterior point is checked.
func CheckContainment(m *Mesh, g *surface.Grid, opts Options) error {
	r, c := (g.Rows-1)/2, (g.Cols-1)/2
	scale := ScaleFactor(g, opts.ModelWidth)
	x := (g.X(c) + g.X(c+1)) / 2 * scale
	y := (g.Y(r) + g.Y(r+1)) / 2 * scale

	floor := math.Min(math.Min(g.Get(r, c), g.Get(r, c+1)),
		math.Min(g.Get(r+1, c), g.Get(r+1, c+1))) + opts.BaseThickness
	ceiling := math.Max(math.Max(g.Get(r, c), g.Get(r, c+1)),
		math.Max(g.Get(r+1, c), g.Get(r+1, c+1))) + opts.BaseThickness

	solid := NewSolid(m)
	if floor > 0 {
		if p := model3d.XYZ(x, y, floor/2); !solid.Contains(p) {
			return errors.Errorf("check containment: interior point %v is outside the solid", p)
		}
	}
	above := model3d.XYZ(x, y, ceiling+1)
	if solid.Contains(above) {
		return errors.Errorf("check containment: point %v above the surface is inside the solid",
			above)
	}
	return nil
}
