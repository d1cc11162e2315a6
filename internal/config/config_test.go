package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValidOnceRequiredPathsAreSet(t *testing.T) {
	c := Default()
	c.ModelPath = "model.json"
	c.WeatherPath = "weather.epw"
	assert.NoError(t, c.Validate())
}

func TestValidate_RejectsMissingModelPath(t *testing.T) {
	c := Default()
	c.WeatherPath = "weather.epw"
	assert.Error(t, c.Validate())
}

func TestValidate_RejectsZeroTimestepsPerHour(t *testing.T) {
	c := Default()
	c.ModelPath = "model.json"
	c.WeatherPath = "weather.epw"
	c.TimestepsPerHour = 0
	assert.Error(t, c.Validate())
}

func TestLoad_FileLayerOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
model_path: house.json
weather_path: denver.epw
timesteps_per_hour: 6
solar:
  sky_discretization: 2
  n_ambient_samples: 500
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "house.json", c.ModelPath)
	assert.Equal(t, "denver.epw", c.WeatherPath)
	assert.Equal(t, 6, c.TimestepsPerHour)
	assert.Equal(t, 2, c.Solar.SkyDiscretization)
	assert.Equal(t, 500, c.Solar.NAmbientSamples)
	// Untouched defaults survive the merge.
	assert.Equal(t, 4, c.Solar.MaxDepth)
}

func TestLoad_EnvLayerOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "model_path: house.json\nweather_path: denver.epw\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	t.Setenv(envPrefix+"MODEL_PATH", "override.json")
	t.Setenv(envPrefix+"TIMESTEPS_PER_HOUR", "12")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override.json", c.ModelPath)
	assert.Equal(t, 12, c.TimestepsPerHour)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathSkipsFileLayer(t *testing.T) {
	t.Setenv(envPrefix+"MODEL_PATH", "house.json")
	t.Setenv(envPrefix+"WEATHER_PATH", "denver.epw")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "house.json", c.ModelPath)
}
