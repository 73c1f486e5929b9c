// Package config loads the tunable constants of the valley
// pipeline from JSON.
//
// Every field is optional. Fields left out of the file fall
// back to the reference values through the Get* methods, so
// a partial file only overrides what it names.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arnonbruno/valley-stability/slab"
	"github.com/arnonbruno/valley-stability/surface"
	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
)

// MaxFileSize is the largest config file LoadConfig will
// read.
const MaxFileSize = 1 << 20

// Config holds pipeline settings.
type Config struct {
	// Height formula
	ReferenceValue *float64 `json:"reference_value,omitempty"`
	WallScale      *float64 `json:"wall_scale,omitempty"`
	MaxPrintHeight *float64 `json:"max_print_height,omitempty"`

	// Grid reconstruction. When unset, each command uses
	// its own preset.
	GridResolution *int     `json:"grid_resolution,omitempty"`
	SmoothingSigma *float64 `json:"smoothing_sigma,omitempty"`

	// Solid
	ModelWidth    *float64 `json:"model_width,omitempty"`
	BaseThickness *float64 `json:"base_thickness,omitempty"`

	// Workers is the goroutine count for parallel stages;
	// 0 means GOMAXPROCS.
	Workers *int `json:"workers,omitempty"`
}

// LoadConfig reads and validates a JSON config file.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("load config: file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if info.Size() > MaxFileSize {
		return nil, errors.Errorf("load config: file too large: %d bytes (max %d)", info.Size(),
			MaxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return cfg, nil
}

// Validate checks the ranges of every field that is set.
func (c *Config) Validate() error {
	if c.WallScale != nil && *c.WallScale < 0 {
		return errors.Errorf("wall_scale must be non-negative, got %f", *c.WallScale)
	}
	if c.MaxPrintHeight != nil && !(*c.MaxPrintHeight > 0) {
		return errors.Errorf("max_print_height must be positive, got %f", *c.MaxPrintHeight)
	}
	if c.GridResolution != nil && *c.GridResolution < 2 {
		return errors.Errorf("grid_resolution must be at least 2, got %d", *c.GridResolution)
	}
	if c.SmoothingSigma != nil && *c.SmoothingSigma < 0 {
		return errors.Errorf("smoothing_sigma must be non-negative, got %f", *c.SmoothingSigma)
	}
	if c.ModelWidth != nil && !(*c.ModelWidth > 0) {
		return errors.Errorf("model_width must be positive, got %f", *c.ModelWidth)
	}
	if c.BaseThickness != nil && *c.BaseThickness < 0 {
		return errors.Errorf("base_thickness must be non-negative, got %f", *c.BaseThickness)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return errors.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	return nil
}

// GetReferenceValue returns reference_value or the default.
func (c *Config) GetReferenceValue() float64 {
	if c.ReferenceValue == nil {
		return topo.DefaultReference
	}
	return *c.ReferenceValue
}

// GetWallScale returns wall_scale or the default.
func (c *Config) GetWallScale() float64 {
	if c.WallScale == nil {
		return topo.DefaultWallScale
	}
	return *c.WallScale
}

// GetMaxPrintHeight returns max_print_height or the default.
func (c *Config) GetMaxPrintHeight() float64 {
	if c.MaxPrintHeight == nil {
		return topo.DefaultMaxPrintHeight
	}
	return *c.MaxPrintHeight
}

// GetGridResolution returns grid_resolution or def.
func (c *Config) GetGridResolution(def int) int {
	if c.GridResolution == nil {
		return def
	}
	return *c.GridResolution
}

// GetSmoothingSigma returns smoothing_sigma or def.
func (c *Config) GetSmoothingSigma(def float64) float64 {
	if c.SmoothingSigma == nil {
		return def
	}
	return *c.SmoothingSigma
}

// GetModelWidth returns model_width or the default.
func (c *Config) GetModelWidth() float64 {
	if c.ModelWidth == nil {
		return slab.DefaultModelWidth
	}
	return *c.ModelWidth
}

// GetBaseThickness returns base_thickness or the default.
func (c *Config) GetBaseThickness() float64 {
	if c.BaseThickness == nil {
		return slab.DefaultBaseThickness
	}
	return *c.BaseThickness
}

// GetWorkers returns workers, defaulting to 0.
func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// Params returns the height formula constants.
func (c *Config) Params() topo.Params {
	return topo.Params{
		Reference: c.GetReferenceValue(),
		WallScale: c.GetWallScale(),
	}
}

// WebOptions returns reconstruction options for the
// interactive heightmap.
func (c *Config) WebOptions() surface.Options {
	return c.surfaceOptions(surface.WebOptions())
}

// PrintOptions returns reconstruction options for the
// printable solid.
func (c *Config) PrintOptions() surface.Options {
	return c.surfaceOptions(surface.PrintOptions())
}

func (c *Config) surfaceOptions(preset surface.Options) surface.Options {
	return surface.Options{
		Resolution: c.GetGridResolution(preset.Resolution),
		Sigma:      c.GetSmoothingSigma(preset.Sigma),
		NumWorkers: c.GetWorkers(),
	}
}

// SlabOptions returns the solid construction options.
func (c *Config) SlabOptions() slab.Options {
	return slab.Options{
		ModelWidth:    c.GetModelWidth(),
		BaseThickness: c.GetBaseThickness(),
		NumWorkers:    c.GetWorkers(),
	}
}
