package preview

import (
	"fmt"
	"io"
	"os"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// viridis stops for the HTML visual map.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89",
	"#35b779", "#6ece58", "#b5de2b", "#fde725"}

// NewChart creates an interactive heatmap chart of the grid.
func NewChart(g *surface.Grid, title string) *charts.HeatMap {
	cols, rows := g.Dims()
	xLabels := make([]string, cols)
	for c := range xLabels {
		xLabels[c] = fmt.Sprintf("%.1f", g.X(c))
	}
	yLabels := make([]string, rows)
	for r := range yLabels {
		yLabels[r] = fmt.Sprintf("%.1f", g.Y(r))
	}
	data := make([]opts.HeatMapData, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data = append(data, opts.HeatMapData{Value: []interface{}{c, r, g.Z(c, r)}})
		}
	}

	lo, hi := g.Min(), g.Max()
	if lo == hi {
		hi = lo + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px",
			Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title,
			Subtitle: fmt.Sprintf("grid=%dx%d", rows, cols)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels, Name: "N"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "Z"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("height", data)
	return hm
}

// WriteHTML renders an interactive heatmap page.
func WriteHTML(w io.Writer, g *surface.Grid, title string) error {
	if err := NewChart(g, title).Render(w); err != nil {
		return errors.Wrap(err, "write heatmap page")
	}
	return nil
}

// SaveHTML saves an interactive heatmap page.
func SaveHTML(path string, g *surface.Grid, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save heatmap page")
	}
	defer f.Close()
	return WriteHTML(f, g, title)
}
