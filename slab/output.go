package slab

import (
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// WriteSTL encodes the mesh as a binary STL file.
func (m *Mesh) WriteSTL(w io.Writer) error {
	if err := model3d.WriteSTL(w, m.Triangles()); err != nil {
		return errors.Wrap(err, "write STL")
	}
	return nil
}

// SaveSTL saves the mesh to a binary STL file, grouping
// nearby triangles together.
func (m *Mesh) SaveSTL(path string) error {
	if err := m.Model().SaveGroupedSTL(path); err != nil {
		return errors.Wrap(err, "save STL")
	}
	return nil
}
