// Command valley_to_json converts a table of chart samples
// into a smoothed heightmap document for a web renderer.
//
// The input is an AME mass table, or a CSV file of
// "x,y,value" rows if its name ends in ".csv".
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
	"github.com/unixpickle/essentials"
)

func main() {
	var outputPath string
	var npzPath string
	var previewPath string

	cfgFlags := config.AddFlags(flag.CommandLine)
	flag.StringVar(&outputPath, "output", "valley_data.json", "output heightmap document")
	flag.StringVar(&npzPath, "npz", "", "optional NumPy archive of the grid")
	flag.StringVar(&previewPath, "preview", "", "optional heatmap image of the grid")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <samples>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if len(flag.Args()) != 1 {
		flag.Usage()
	}

	cfg, err := cfgFlags.Load()
	essentials.Must(err)

	log.Println("Reading", flag.Args()[0], "...")
	report, err := samples.ReadFile(flag.Args()[0])
	essentials.Must(err)
	log.Printf("Read %d samples (skipped %d rows)", len(report.Samples), report.Skipped)

	settings := pipeline.Settings{
		Params:    cfg.Params(),
		MaxHeight: cfg.GetMaxPrintHeight(),
		Surface:   cfg.WebOptions(),
	}
	grid, err := pipeline.WebGrid(report.Samples, settings)
	essentials.Must(err)

	log.Println("Saving", outputPath, "...")
	doc := heightmap.NewDocument(grid, settings.MaxHeight)
	essentials.Must(doc.Save(outputPath))

	if npzPath != "" {
		log.Println("Saving", npzPath, "...")
		essentials.Must(heightmap.SaveNumpy(npzPath, grid))
	}
	if previewPath != "" {
		log.Println("Saving", previewPath, "...")
		essentials.Must(preview.SaveHeatmap(previewPath, grid, "Valley heightmap"))
	}
}
