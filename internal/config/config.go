package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/mplosser/data-fry9/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PathsConfig contains the input and output directory paths
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

// ProcessingConfig controls the conversion run
type ProcessingConfig struct {
	// Workers bounds the worker pool: 0 forces sequential mode, negative
	// values select the machine's available parallelism.
	Workers   int `yaml:"workers" envconfig:"WORKERS" validate:"gte=-1"`
	StartYear int `yaml:"start_year" envconfig:"START_YEAR" validate:"gte=0"`
	EndYear   int `yaml:"end_year" envconfig:"END_YEAR" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	// Output is "stdout", "stderr", or a file path.
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"required"`
}

// TelemetryConfig controls OpenTelemetry trace and metric export
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
}

// EffectiveWorkers resolves the configured worker count to the pool size the
// dispatcher will use.
func (p ProcessingConfig) EffectiveWorkers() int {
	switch {
	case p.Workers == 0:
		return 1
	case p.Workers < 0:
		return runtime.NumCPU()
	default:
		return p.Workers
	}
}

// IncludesYear reports whether year falls inside the configured bounds.
// A zero bound is open on that side.
func (p ProcessingConfig) IncludesYear(year int) bool {
	if p.StartYear > 0 && year < p.StartYear {
		return false
	}
	if p.EndYear > 0 && year > p.EndYear {
		return false
	}
	return true
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence. An empty path
// searches the default config file locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError(
				fmt.Sprintf("failed to load config file %s", path), err)
		}
	}

	if err := envconfig.Process("FRY9", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg. Fields
// absent from the file keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first config file present in the default
// locations, or "" when none exists.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if c.Processing.StartYear > 0 && c.Processing.EndYear > 0 &&
		c.Processing.EndYear < c.Processing.StartYear {
		return apperrors.NewAppValidationError(fmt.Sprintf(
			"end_year %d precedes start_year %d",
			c.Processing.EndYear, c.Processing.StartYear))
	}
	return nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			InputDir:  "data/raw",
			OutputDir: "data/processed",
		},
		Processing: ProcessingConfig{
			Workers: -1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "fry9-converter",
		},
	}
}
