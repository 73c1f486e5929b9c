package slab

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r3"
)

// A Report summarizes the topology of a Mesh.
type Report struct {
	// Edges is the number of distinct undirected edges.
	Edges int

	// BoundaryEdges counts directed edges whose reverse
	// does not appear in any face.
	BoundaryEdges int

	// DuplicateEdges counts directed edges used by more
	// than one face, which means two faces are wound
	// inconsistently or the surface pinches.
	DuplicateEdges int

	// DegenerateFaces counts faces that repeat a vertex.
	DegenerateFaces int

	SignedVolume float64
}

// Watertight checks that every directed edge is matched by
// exactly one reversed twin.
func (r *Report) Watertight() bool {
	return r.BoundaryEdges == 0 && r.DuplicateEdges == 0 && r.DegenerateFaces == 0
}

func (r *Report) String() string {
	return fmt.Sprintf("edges=%d boundary=%d duplicate=%d degenerate=%d volume=%f",
		r.Edges, r.BoundaryEdges, r.DuplicateEdges, r.DegenerateFaces, r.SignedVolume)
}

// Check computes the topology report of a mesh.
func Check(m *Mesh) *Report {
	type edge struct{ a, b int }
	counts := make(map[edge]int, len(m.Faces)*3)
	res := &Report{}
	for _, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			res.DegenerateFaces++
			continue
		}
		for i := 0; i < 3; i++ {
			counts[edge{f[i], f[(i+1)%3]}]++
		}
	}
	for e, n := range counts {
		if n > 1 {
			res.DuplicateEdges += n - 1
		}
		if _, ok := counts[edge{e.b, e.a}]; !ok {
			res.BoundaryEdges++
			res.Edges++
		} else if e.a < e.b {
			res.Edges++
		}
	}
	res.SignedVolume = SignedVolume(m)
	return res
}

// Validate returns an error if the mesh is not a closed,
// outward-facing surface.
func (m *Mesh) Validate() error {
	report := Check(m)
	if !report.Watertight() {
		return errors.New("validate mesh: not watertight: " + report.String())
	}
	if report.SignedVolume <= 0 {
		return errors.New("validate mesh: faces point inward: " + report.String())
	}
	return nil
}

// SignedVolume computes the enclosed volume using the
// divergence theorem. It is positive when faces are wound
// counter-clockwise as seen from outside.
func SignedVolume(m *Mesh) float64 {
	var sum float64
	for _, f := range m.Faces {
		a := vec(m.Vertices[f[0]])
		b := vec(m.Vertices[f[1]])
		c := vec(m.Vertices[f[2]])
		sum += r3.Dot(a, r3.Cross(b, c))
	}
	return sum / 6
}

func vec(c model3d.Coord3D) r3.Vec {
	return r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
}
