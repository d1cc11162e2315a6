package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/germolinal/simple-sub002/internal/common/logger"
	"github.com/germolinal/simple-sub002/internal/config"
	"github.com/germolinal/simple-sub002/internal/scheduler"
	"github.com/germolinal/simple-sub002/pkg/model"
	"github.com/germolinal/simple-sub002/pkg/modelio"
	"github.com/germolinal/simple-sub002/pkg/weather"
)

var runFlags struct {
	configPath       string
	modelPath        string
	weatherPath      string
	outputPath       string
	timestepsPerHour int
	opticalCachePath string
	metricsAddr      string
	verbose          bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation against a model and weather file, writing output CSV",
	RunE:  runSimulation,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.configPath, "config", "", "optional YAML config file")
	f.StringVar(&runFlags.modelPath, "model", "", "path to a JSON or YAML model description")
	f.StringVar(&runFlags.weatherPath, "weather", "", "path to an EPW weather file")
	f.StringVar(&runFlags.outputPath, "output", "", "path to write the output CSV")
	f.IntVar(&runFlags.timestepsPerHour, "timesteps-per-hour", 0, "main-loop timesteps per hour")
	f.StringVar(&runFlags.opticalCachePath, "optical-cache", "", "path to the persisted daylight-coefficient cache")
	f.StringVar(&runFlags.metricsAddr, "metrics-addr", "", "if set, serve prometheus metrics on this address")
	f.BoolVar(&runFlags.verbose, "verbose", false, "raise logging to debug and print per-timestep diagnostics")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runFlags.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)
	logger.SetLevel(parseLogLevel(cfg.LogLevel))
	if cfg.Verbose {
		logger.SetLevel(logger.DEBUG)
	}

	m, err := loadModel(cfg.ModelPath)
	if err != nil {
		return err
	}
	m.Solar.NSolarIrradiancePoints = cfg.Solar.NSolarIrradiancePoints
	m.Solar.NAmbientSamples = cfg.Solar.NAmbientSamples
	m.Solar.SkyDiscretization = cfg.Solar.SkyDiscretization
	m.Solar.MaxDepth = cfg.Solar.MaxDepth
	m.Solar.LimitWeight = cfg.Solar.LimitWeight
	if cfg.Solar.OpticalDataPath != "" {
		m.Solar.OpticalDataPath = cfg.Solar.OpticalDataPath
	}

	w, err := loadWeather(cfg.WeatherPath)
	if err != nil {
		return err
	}

	driver, err := scheduler.New(m, cfg.TimestepsPerHour)
	if err != nil {
		return err
	}
	if err := driver.ResolveOutputs(); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		metrics := scheduler.NewMetrics()
		metrics.Serve(cfg.MetricsAddr)
		driver.SetMetrics(metrics)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dt := 3600.0 / float64(cfg.TimestepsPerHour)

	if cfg.WarmupDays > 0 {
		warmupEnd := weather.Date{Month: 1, Day: cfg.WarmupDays, Hour: 23}
		if warmupEnd.Day > weather.DaysInMonth(1) {
			warmupEnd.Day = weather.DaysInMonth(1)
		}
		warmupPeriod := weather.NewPeriod(weather.Date{Month: 1, Day: 1, Hour: 0}, warmupEnd, dt)
		if err := driver.Warmup(ctx, warmupPeriod, w); err != nil {
			return err
		}
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	csvWriter := scheduler.NewCSVWriter(out)

	mainPeriod := weather.NewPeriod(weather.Date{Month: 1, Day: 1, Hour: 0}, weather.Date{Month: 12, Day: 31, Hour: 23}, dt)
	return driver.Run(ctx, mainPeriod, w, nil, csvWriter)
}

func applyFlagOverrides(cfg *config.Config) {
	if runFlags.modelPath != "" {
		cfg.ModelPath = runFlags.modelPath
	}
	if runFlags.weatherPath != "" {
		cfg.WeatherPath = runFlags.weatherPath
	}
	if runFlags.outputPath != "" {
		cfg.OutputPath = runFlags.outputPath
	}
	if runFlags.timestepsPerHour != 0 {
		cfg.TimestepsPerHour = runFlags.timestepsPerHour
	}
	if runFlags.opticalCachePath != "" {
		cfg.Solar.OpticalDataPath = runFlags.opticalCachePath
	}
	if runFlags.metricsAddr != "" {
		cfg.MetricsAddr = runFlags.metricsAddr
	}
	if runFlags.verbose {
		cfg.Verbose = true
	}
}

func loadModel(path string) (*model.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return modelio.LoadYAML(path)
	default:
		return modelio.LoadJSON(path)
	}
}

func loadWeather(path string) (weather.Weather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return weather.ParseEPW(f)
}
