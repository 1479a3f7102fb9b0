package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputPath = "telemetry.jsonl"
	DefaultLogLevel   = "info"
	DefaultMaxSizeMB  = 10
)

// ScheduleParser accepts standard five-field cron expressions and descriptors such as "@every 30s"
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads and parses the configuration file. An empty filename yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, fills in defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills unset fields
func applyDefaults(config *Config) {
	if config.Output.Path == "" {
		config.Output.Path = DefaultOutputPath
	}
	if config.Output.OnWriteError == "" {
		config.Output.OnWriteError = ErrorPolicyAbort
	}
	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.File != "" && config.Logging.MaxSizeMB == 0 {
		config.Logging.MaxSizeMB = DefaultMaxSizeMB
	}
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Output.OnWriteError != ErrorPolicyAbort && config.Output.OnWriteError != ErrorPolicyContinue {
		return fmt.Errorf("output.onWriteError must be either 'abort' or 'continue', got %q", config.Output.OnWriteError)
	}

	if _, err := zapcore.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if config.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("logging.maxSizeMB must not be negative")
	}

	if config.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging.maxBackups must not be negative")
	}

	if config.Summary.Schedule != "" {
		if _, err := ScheduleParser.Parse(config.Summary.Schedule); err != nil {
			return fmt.Errorf("summary.schedule: %w", err)
		}
	}

	return nil
}
