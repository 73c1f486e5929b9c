package heightmap

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/pkg/errors"
)

// SaveNumpy writes the grid as a .npz archive holding a
// single array, heights.npy, of shape (rows, cols).
func SaveNumpy(path string, g *surface.Grid) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save numpy")
	}
	defer w.Close()
	zipWriter := zip.NewWriter(w)
	fileWriter, err := zipWriter.Create("heights.npy")
	if err != nil {
		return errors.Wrap(err, "save numpy")
	}
	if _, err := fileWriter.Write(EncodeNumpy(g)); err != nil {
		return errors.Wrap(err, "save numpy")
	}
	if err := zipWriter.Close(); err != nil {
		return errors.Wrap(err, "save numpy")
	}
	return errors.Wrap(w.Close(), "save numpy")
}

// EncodeNumpy encodes the grid values as a version 1.0
// .npy array of little-endian float64.
func EncodeNumpy(g *surface.Grid) []byte {
	header := "{'descr': '<f8', 'fortran_order': False, 'shape': ("
	header += fmt.Sprintf("%d, %d), }", g.Rows, g.Cols)

	// Magic, version and length take 10 bytes, and the
	// whole preamble is padded to a multiple of 64.
	for (10+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	binary.Write(&buf, binary.LittleEndian, g.Values)
	return buf.Bytes()
}
