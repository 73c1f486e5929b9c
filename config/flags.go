package config

import (
	"flag"

	"github.com/pkg/errors"
)

// Flags binds command-line overrides for a Config.
//
// Only flags that were given explicitly replace values from
// the config file.
type Flags struct {
	Path string

	fs *flag.FlagSet

	reference  float64
	wallScale  float64
	maxHeight  float64
	resolution int
	sigma      float64
	width      float64
	base       float64
	workers    int
}

// AddFlags registers the config flags on fs.
func AddFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "optional JSON config file")
	fs.Float64Var(&f.reference, "reference", (&Config{}).GetReferenceValue(),
		"value at the valley floor")
	fs.Float64Var(&f.wallScale, "wall-scale", (&Config{}).GetWallScale(),
		"height added per unit of distance from the centerline")
	fs.Float64Var(&f.maxHeight, "max-height", (&Config{}).GetMaxPrintHeight(),
		"height of the tallest sample (mm)")
	fs.IntVar(&f.resolution, "resolution", 0, "grid nodes per axis (0 for the preset)")
	fs.Float64Var(&f.sigma, "sigma", -1, "smoothing sigma in grid cells (negative for the preset)")
	fs.Float64Var(&f.width, "width", (&Config{}).GetModelWidth(), "model width (mm)")
	fs.Float64Var(&f.base, "base", (&Config{}).GetBaseThickness(), "base thickness (mm)")
	fs.IntVar(&f.workers, "workers", 0, "number of goroutines (0 for GOMAXPROCS)")
	return f
}

// Load reads the config file, if one was given, and
// applies explicit flags on top of it.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	if f.Path != "" {
		var err error
		cfg, err = LoadConfig(f.Path)
		if err != nil {
			return nil, err
		}
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "reference":
			cfg.ReferenceValue = &f.reference
		case "wall-scale":
			cfg.WallScale = &f.wallScale
		case "max-height":
			cfg.MaxPrintHeight = &f.maxHeight
		case "resolution":
			if f.resolution != 0 {
				cfg.GridResolution = &f.resolution
			}
		case "sigma":
			if f.sigma >= 0 {
				cfg.SmoothingSigma = &f.sigma
			}
		case "width":
			cfg.ModelWidth = &f.width
		case "base":
			cfg.BaseThickness = &f.base
		case "workers":
			cfg.Workers = &f.workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "command-line flags")
	}
	return cfg, nil
}
