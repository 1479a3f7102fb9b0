package config

// Config represents the entire configuration for the flight simulator.
// None of these settings change the flight model itself.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Summary SummaryConfig `yaml:"summary"`

	// Seed fixes the random source when non-zero
	Seed int64 `yaml:"seed,omitempty"`
}

// OutputConfig controls where telemetry is written
type OutputConfig struct {
	Path         string      `yaml:"path"`
	OnWriteError ErrorPolicy `yaml:"onWriteError"`
	Console      *bool       `yaml:"console,omitempty"`
}

// LoggingConfig controls the diagnostic logger
type LoggingConfig struct {
	Level string `yaml:"level"`

	// File enables a rotated log file in addition to stderr
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty"`
}

// MetricsConfig controls the status and metrics HTTP server
type MetricsConfig struct {
	Address string `yaml:"address,omitempty"`
}

// SummaryConfig controls the periodic flight summary log
type SummaryConfig struct {
	Schedule string `yaml:"schedule,omitempty"`
}

// ErrorPolicy defines what happens when a telemetry record cannot be written
type ErrorPolicy string

const (
	ErrorPolicyAbort    ErrorPolicy = "abort"
	ErrorPolicyContinue ErrorPolicy = "continue"
)

// ConsoleEnabled reports whether per-tick console lines are printed
func (o OutputConfig) ConsoleEnabled() bool {
	return o.Console == nil || *o.Console
}
