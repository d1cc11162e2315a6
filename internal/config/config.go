// Package config loads the engine's run configuration from a cascade of
// sources: built-in defaults, an optional YAML file, environment
// variables, then CLI flags, each layer overriding the one before it.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is the complete set of settings one simulation run needs.
type Config struct {
	ModelPath   string `yaml:"model_path"`
	WeatherPath string `yaml:"weather_path"`
	OutputPath  string `yaml:"output_path"`

	TimestepsPerHour int `yaml:"timesteps_per_hour"`

	// WarmupDays is the length, in days, of the thermal sub-loop the
	// driver runs before the recorded main loop to let node and zone
	// temperatures settle away from their cold-start initial values.
	WarmupDays int `yaml:"warmup_days"`

	Solar SolarConfig `yaml:"solar"`

	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	Verbose     bool   `yaml:"verbose"`
}

// SolarConfig mirrors model.SolarOptions in a YAML/env-friendly shape; the
// config layer only knows about plain settings, so it stays independent of
// the model package's own types and is translated at the call site in
// cmd/simplesim.
type SolarConfig struct {
	NSolarIrradiancePoints int     `yaml:"n_solar_irradiance_points"`
	NAmbientSamples        int     `yaml:"n_ambient_samples"`
	SkyDiscretization      int     `yaml:"sky_discretization"`
	MaxDepth               int     `yaml:"max_depth"`
	LimitWeight            float64 `yaml:"limit_weight"`
	OpticalDataPath        string  `yaml:"optical_data_path"`
}

// Default returns the built-in baseline configuration, overridden by every
// later layer in Load.
func Default() *Config {
	return &Config{
		OutputPath:       "output.csv",
		TimestepsPerHour: 1,
		WarmupDays:       7,
		LogLevel:         "info",
		Solar: SolarConfig{
			NSolarIrradiancePoints: 1,
			NAmbientSamples:        1000,
			SkyDiscretization:      1,
			MaxDepth:               4,
			LimitWeight:            1e-3,
		},
		MetricsAddr: "",
		Verbose:     false,
	}
}

// Load builds a Config from defaults, an optional YAML file at configPath,
// then environment variables, in that priority order. configPath == ""
// skips the file layer. CLI flags are applied by the caller afterward,
// since only cmd/simplesim knows which flags the user actually set.
func Load(configPath string) (*Config, error) {
	c := Default()

	if configPath != "" {
		if err := c.loadFromFile(configPath); err != nil {
			return nil, err
		}
	}
	c.loadFromEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return nil
}

// envPrefix namespaces every environment variable this package reads, so
// it never collides with a neighboring tool's own settings.
const envPrefix = "SIMPLESIM_"

func (c *Config) loadFromEnv() {
	if v := os.Getenv(envPrefix + "MODEL_PATH"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv(envPrefix + "WEATHER_PATH"); v != "" {
		c.WeatherPath = v
	}
	if v := os.Getenv(envPrefix + "OUTPUT_PATH"); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv(envPrefix + "TIMESTEPS_PER_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimestepsPerHour = n
		}
	}
	if v := os.Getenv(envPrefix + "OPTICAL_DATA_PATH"); v != "" {
		c.Solar.OpticalDataPath = v
	}
	if v := os.Getenv(envPrefix + "SKY_DISCRETIZATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Solar.SkyDiscretization = n
		}
	}
	if v := os.Getenv(envPrefix + "N_AMBIENT_SAMPLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Solar.NAmbientSamples = n
		}
	}
	if v := os.Getenv(envPrefix + "METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(envPrefix + "WARMUP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.WarmupDays = n
		}
	}
	if v := os.Getenv(envPrefix + "VERBOSE"); v == "true" {
		c.Verbose = true
	}
}

// Validate checks the settings that must hold before a run can start; a
// missing model or weather path is caught here rather than surfacing as a
// confusing file-not-found deeper in the engine.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model_path is required")
	}
	if c.WeatherPath == "" {
		return fmt.Errorf("weather_path is required")
	}
	if c.TimestepsPerHour < 1 {
		return fmt.Errorf("timesteps_per_hour must be >= 1, got %d", c.TimestepsPerHour)
	}
	if c.Solar.SkyDiscretization < 1 {
		return fmt.Errorf("solar.sky_discretization must be >= 1, got %d", c.Solar.SkyDiscretization)
	}
	if c.Solar.NAmbientSamples < 1 {
		return fmt.Errorf("solar.n_ambient_samples must be >= 1, got %d", c.Solar.NAmbientSamples)
	}
	return nil
}
