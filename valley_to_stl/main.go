// Command valley_to_stl converts a table of chart samples
// into a closed, printable STL solid.
//
// The solid is a smoothed height surface over a flat base,
// closed by vertical walls. With -heightmap, the surface is
// read from a document written by valley_to_json instead of
// being reconstructed from samples.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/arnonbruno/valley-stability/config"
	"github.com/arnonbruno/valley-stability/heightmap"
	"github.com/arnonbruno/valley-stability/pipeline"
	"github.com/arnonbruno/valley-stability/preview"
	"github.com/arnonbruno/valley-stability/samples"
	"github.com/arnonbruno/valley-stability/surface"
	"github.com/unixpickle/essentials"
)

func main() {
	var outputPath string
	var heightmapPath string
	var previewPath string

	cfgFlags := config.AddFlags(flag.CommandLine)
	flag.StringVar(&outputPath, "output", "kinetic_valley_smoothed.stl", "output STL file")
	flag.StringVar(&heightmapPath, "heightmap", "", "build from a heightmap document instead of samples")
	flag.StringVar(&previewPath, "preview", "", "optional heatmap image of the grid")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <samples>")
		fmt.Fprintln(os.Stderr, "       "+os.Args[0], "[flags] -heightmap <document.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if (heightmapPath == "") != (len(flag.Args()) == 1) || len(flag.Args()) > 1 {
		flag.Usage()
	}

	cfg, err := cfgFlags.Load()
	essentials.Must(err)

	var grid *surface.Grid
	if heightmapPath != "" {
		grid, err = readHeightmap(heightmapPath, cfg)
	} else {
		grid, err = reconstruct(flag.Args()[0], cfg)
	}
	essentials.Must(err)

	if previewPath != "" {
		log.Println("Saving", previewPath, "...")
		essentials.Must(preview.SaveHeatmap(previewPath, grid, "Valley solid"))
	}

	mesh, err := pipeline.Solid(grid, cfg.SlabOptions())
	essentials.Must(err)

	log.Println("Saving", outputPath, "...")
	essentials.Must(mesh.SaveSTL(outputPath))
	log.Printf("Saved %d triangles", len(mesh.Faces))
}

func reconstruct(path string, cfg *config.Config) (*surface.Grid, error) {
	log.Println("Reading", path, "...")
	report, err := samples.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Read %d samples (skipped %d rows)", len(report.Samples), report.Skipped)

	points, err := pipeline.Heights(report.Samples, pipeline.Settings{
		Params:    cfg.Params(),
		MaxHeight: cfg.GetMaxPrintHeight(),
		Surface:   cfg.PrintOptions(),
	})
	if err != nil {
		return nil, err
	}
	return pipeline.Reconstruct(points, cfg.PrintOptions())
}

func readHeightmap(path string, cfg *config.Config) (*surface.Grid, error) {
	log.Println("Reading", path, "...")
	doc, err := heightmap.Load(path)
	if err != nil {
		return nil, err
	}
	grid, err := doc.Grid()
	if err != nil {
		return nil, err
	}
	if cfg.GridResolution != nil {
		res := cfg.GetGridResolution(0)
		log.Printf("Resampling %dx%d grid to %dx%d ...", grid.Rows, grid.Cols, res, res)
		return surface.Resample(grid, res, res)
	}
	return grid, nil
}
