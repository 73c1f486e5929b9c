// Package preview renders reconstructed grids as heatmap
// images or interactive pages for quick inspection.
package preview

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the width and height of rendered previews.
const Size = 6 * vg.Inch

// NumColors is the number of palette entries.
const NumColors = 64

// NewPlot creates a heatmap plot of the grid, with x and y
// axes in sample coordinates.
func NewPlot(g *surface.Grid, title string) *plot.Plot {
	hm := plotter.NewHeatMap(g, palette.Heat(NumColors, 1))
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "N"
	p.Y.Label.Text = "Z"
	p.Add(hm)
	return p
}

// WriteHeatmap encodes a heatmap of the grid in the given
// image format ("png", "svg", "pdf", ...).
func WriteHeatmap(w io.Writer, g *surface.Grid, title, format string) error {
	writer, err := NewPlot(g, title).WriterTo(Size, Size, format)
	if err != nil {
		return errors.Wrap(err, "write heatmap")
	}
	if _, err := writer.WriteTo(w); err != nil {
		return errors.Wrap(err, "write heatmap")
	}
	return nil
}

// SaveHeatmap saves a heatmap of the grid, choosing the
// format from the file extension. An ".html" path produces
// an interactive page.
func SaveHeatmap(path string, g *surface.Grid, title string) error {
	if strings.EqualFold(filepath.Ext(path), ".html") {
		return SaveHTML(path, g, title)
	}
	if err := NewPlot(g, title).Save(Size, Size, path); err != nil {
		return errors.Wrap(err, "save heatmap")
	}
	return nil
}
