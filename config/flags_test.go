package config

import (
	"flag"
	"testing"

	"github.com/arnonbruno/valley-stability/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) (*Config, error) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f.Load()
}

func TestFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(t)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.Equal(t, surface.PrintOptions(), cfg.PrintOptions())
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"wall_scale": 3, "model_width": 150, "grid_resolution": 50}`)
	cfg, err := parseFlags(t, "-config", path, "-width", "120", "-sigma", "1.5", "-workers", "2")
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.GetWallScale())
	assert.Equal(t, 120.0, cfg.GetModelWidth())
	assert.Equal(t, surface.Options{Resolution: 50, Sigma: 1.5, NumWorkers: 2}, cfg.WebOptions())
}

func TestFlagsPresetSentinels(t *testing.T) {
	cfg, err := parseFlags(t, "-resolution", "0", "-sigma", "-1")
	require.NoError(t, err)
	assert.Nil(t, cfg.GridResolution)
	assert.Nil(t, cfg.SmoothingSigma)
}

func TestFlagsInvalid(t *testing.T) {
	_, err := parseFlags(t, "-max-height", "0")
	assert.Error(t, err)

	_, err = parseFlags(t, "-config", "settings.txt")
	assert.Error(t, err)
}
