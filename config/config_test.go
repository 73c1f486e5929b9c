package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnonbruno/valley-stability/slab"
	"github.com/arnonbruno/valley-stability/surface"
	"github.com/arnonbruno/valley-stability/topo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, topo.DefaultParams(), cfg.Params())
	assert.Equal(t, topo.DefaultMaxPrintHeight, cfg.GetMaxPrintHeight())
	assert.Equal(t, surface.WebOptions(), cfg.WebOptions())
	assert.Equal(t, surface.PrintOptions(), cfg.PrintOptions())
	assert.Equal(t, slab.DefaultOptions(), cfg.SlabOptions())
	assert.Zero(t, cfg.GetWorkers())
}

func TestLoadDefaultsFile(t *testing.T) {
	cfg, err := LoadConfig("valley.defaults.json")
	require.NoError(t, err)
	assert.Equal(t, topo.DefaultParams(), cfg.Params())
	assert.Equal(t, slab.DefaultOptions(), cfg.SlabOptions())
	assert.Nil(t, cfg.GridResolution)
	assert.Equal(t, surface.PrintOptions(), cfg.PrintOptions())
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"reference_value": 9.1, "grid_resolution": 40, "workers": 3}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, topo.Params{Reference: 9.1, WallScale: topo.DefaultWallScale}, cfg.Params())
	assert.Equal(t, surface.Options{Resolution: 40, Sigma: 2, NumWorkers: 3}, cfg.WebOptions())
	assert.Equal(t, surface.Options{Resolution: 40, Sigma: 3, NumWorkers: 3}, cfg.PrintOptions())
	assert.Equal(t, 3, cfg.SlabOptions().NumWorkers)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Extension", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", `{}`)
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json")
	})
	t.Run("Missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
	t.Run("TooLarge", func(t *testing.T) {
		padding := strings.Repeat(" ", MaxFileSize)
		path := writeConfig(t, "large.json", "{"+padding+"}")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
	t.Run("Malformed", func(t *testing.T) {
		path := writeConfig(t, "bad.json", `{"wall_scale": "steep"}`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"wall_scale":       `{"wall_scale": -1}`,
		"max_print_height": `{"max_print_height": 0}`,
		"grid_resolution":  `{"grid_resolution": 1}`,
		"smoothing_sigma":  `{"smoothing_sigma": -0.5}`,
		"model_width":      `{"model_width": -200}`,
		"base_thickness":   `{"base_thickness": -2}`,
		"workers":          `{"workers": -4}`,
	}
	for field, contents := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, "config.json", contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), field)
		})
	}

	ok := `{"wall_scale": 0, "smoothing_sigma": 0, "base_thickness": 0}`
	_, err := LoadConfig(writeConfig(t, "config.json", ok))
	assert.NoError(t, err)
}

func TestValidateErrorStack(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "config.json", `{"workers": -1}`))
	require.Error(t, err)
	cause := errors.Cause(err)
	assert.Contains(t, cause.Error(), "workers must be non-negative")
	assert.Contains(t, fmt.Sprintf("%+v", cause), "(*Config).Validate")
}
