// Package heightmap exports reconstructed grids as flat
// documents for an external renderer.
package heightmap

import (
	"encoding/json"
	"io"
	"os"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/pkg/errors"
)

// A Document is a flattened heightmap together with the
// bounds of the sample coordinates it covers.
type Document struct {
	GridWidth   int       `json:"grid_width"`
	GridDepth   int       `json:"grid_depth"`
	MinN        float64   `json:"min_n"`
	MaxN        float64   `json:"max_n"`
	MinZ        float64   `json:"min_z"`
	MaxZ        float64   `json:"max_z"`
	Heights     []float64 `json:"heights"`
	MaxHeightMM float64   `json:"max_height_mm"`
}

// NewDocument projects a grid into a Document.
// Heights are copied in row-major order.
func NewDocument(g *surface.Grid, maxHeight float64) *Document {
	return &Document{
		GridWidth:   g.Cols,
		GridDepth:   g.Rows,
		MinN:        g.XMin,
		MaxN:        g.XMax,
		MinZ:        g.YMin,
		MaxZ:        g.YMax,
		Heights:     append([]float64{}, g.Values...),
		MaxHeightMM: maxHeight,
	}
}

// Grid converts the document back into a grid.
func (d *Document) Grid() (*surface.Grid, error) {
	if len(d.Heights) != d.GridWidth*d.GridDepth {
		return nil, errors.New("heightmap: invalid dimensions")
	}
	g, err := surface.NewGrid(d.GridDepth, d.GridWidth, d.MinN, d.MaxN, d.MinZ, d.MaxZ)
	if err != nil {
		return nil, errors.Wrap(err, "heightmap")
	}
	copy(g.Values, d.Heights)
	return g, nil
}

// Write encodes the document as JSON.
func (d *Document) Write(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(d); err != nil {
		return errors.Wrap(err, "write heightmap")
	}
	return nil
}

// Save writes the document to a JSON file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save heightmap")
	}
	defer f.Close()
	if err := d.Write(f); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "save heightmap")
}

// Read decodes a Document and checks that its heights
// match its dimensions.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "read heightmap")
	}
	if doc.GridWidth < 2 || doc.GridDepth < 2 {
		return nil, errors.New("read heightmap: invalid dimensions")
	}
	if len(doc.Heights) != doc.GridWidth*doc.GridDepth {
		return nil, errors.New("read heightmap: invalid dimensions")
	}
	return &doc, nil
}

// Load reads a Document from a JSON file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load heightmap")
	}
	defer f.Close()
	return Read(f)
}
