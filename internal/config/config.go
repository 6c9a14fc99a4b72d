package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" ignored:"true"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Viewer    ViewerConfig    `yaml:"viewer" envconfig:"VIEWER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PipelineConfig controls the gradebook transformation stages. It is read
// from the YAML file only; environment variables never change how a
// gradebook is transformed.
type PipelineConfig struct {
	// DropColumns lists positions of identifying columns removed before
	// anything else (the student e-mail column by default).
	DropColumns    []int  `yaml:"drop_columns" validate:"dive,min=0"`
	PruneThreshold int    `yaml:"prune_threshold" validate:"min=0"`
	Preset         string `yaml:"preset" validate:"oneof=detailed split"`

	// Groups and Assessments override the preset's taxonomy when set.
	Groups      []GroupConfig `yaml:"groups" validate:"dive"`
	Assessments []string      `yaml:"assessments" validate:"dive,required"`

	DenominatorPolicy string        `yaml:"denominator_policy" validate:"oneof=last strict"`
	StageTimeout      time.Duration `yaml:"stage_timeout"`
}

// GroupConfig is a custom assignment aggregation group
type GroupConfig struct {
	Label      string   `yaml:"label" validate:"required"`
	Categories []string `yaml:"categories" validate:"min=1,dive,required"`
	Rename     bool     `yaml:"rename"`
}

// OutputConfig controls where and how the report is written
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
	BOM bool   `yaml:"bom" envconfig:"BOM"`
}

// ViewerConfig controls opening the saved report
type ViewerConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED"`
	// Command overrides the platform default opener.
	Command string `yaml:"command" envconfig:"COMMAND"`
}

// TelemetryConfig controls tracing and run metrics
type TelemetryConfig struct {
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE" validate:"required_if=TracingEnabled true"`
	// MetricsFile is a Prometheus textfile written at the end of the run.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "TSA"

// ConfigFileEnv names the variable that points at an explicit config file.
const ConfigFileEnv = "TSA_CONFIG_FILE"

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).WithContext("file", configFile)
		}
	}

	// Environment variables override the file for everything but the pipeline
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys missing from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct tags and cross-field rules and normalizes casing.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Pipeline.Preset = strings.ToLower(c.Pipeline.Preset)
	c.Pipeline.DenominatorPolicy = strings.ToLower(c.Pipeline.DenominatorPolicy)

	if err := validator.New().Struct(c); err != nil {
		return formatValidationError(err)
	}

	if c.Pipeline.StageTimeout < 0 {
		return fmt.Errorf("pipeline stage timeout must not be negative")
	}

	return nil
}

// formatValidationError flattens validator errors into one readable error
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	// Check for config file in common locations
	locations := []string{
		"aggregator.yaml",
		"configs/aggregator.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Pipeline: PipelineConfig{
			DropColumns:       []int{DefaultEmailColumn},
			PruneThreshold:    DefaultPruneThreshold,
			Preset:            DefaultPreset,
			DenominatorPolicy: DefaultDenominatorPolicy,
			StageTimeout:      DefaultStageTimeout,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
			BOM: false,
		},
		Viewer: ViewerConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			TracingEnabled: false,
			TraceFile:      DefaultTraceFile,
		},
	}
}
