// Package config provides configuration management for crtbox.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Source: name, timeout_sec, validate_status
//   - Report: round_ratio, output_dir
//   - Server: host, port
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Report.From, Report.To, Report.Supervisors, Report.Crates (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CRTBOX_ prefix with underscores for nesting:
//
//	CRTBOX_SOURCE_NAME=dispatch
//	CRTBOX_DATABASE_HOST=localhost
//	CRTBOX_LOG_LEVEL=info
//	CRTBOX_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete crtbox configuration.
type Config struct {
	// Source contains settings for provisioning the dispatch database file.
	Source SourceConfig `mapstructure:"source" yaml:"source"`

	// Report contains settings for the report pipeline and CSV export.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	// Server contains settings for the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Database contains PostgreSQL connection settings for the warehouse.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SourceConfig contains settings for the dispatch database download.
type SourceConfig struct {
	// Name selects the dataset from sources.yaml.
	// Empty string means the dataset marked as default.
	Name string `mapstructure:"name" yaml:"name"`

	// TimeoutSec is the HTTP timeout for the download, in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// ValidateStatus controls whether a non-200 response aborts the
	// download. Uses pointer to distinguish between unset (nil) and false.
	// When false the response body is saved regardless of status.
	ValidateStatus *bool `mapstructure:"validate_status" yaml:"validate_status"`
}

// StatusCheck reports whether non-200 responses abort the download.
// Defaults to true when the field is unset.
func (sc SourceConfig) StatusCheck() bool {
	return sc.ValidateStatus == nil || *sc.ValidateStatus
}

// ReportConfig contains settings for the report pipeline.
type ReportConfig struct {
	// RoundRatio rounds the crates-per-box ratio to the nearest whole
	// number before filtering and pivoting.
	RoundRatio bool `mapstructure:"round_ratio" yaml:"round_ratio"`

	// OutputDir is where exported CSV files are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// From is the start of the report date range (YYYY-MM-DD).
	// Empty string means the earliest date in the data.
	// Runtime-only field, set per-command by CLI flags.
	From string `mapstructure:"from" yaml:"from"`

	// To is the end of the report date range (YYYY-MM-DD).
	// Empty string means the latest date in the data.
	// Runtime-only field, set per-command by CLI flags.
	To string `mapstructure:"to" yaml:"to"`

	// Supervisors restricts the report to the listed supervisors.
	// Nil means all supervisors. Runtime-only field.
	Supervisors []string `mapstructure:"supervisors" yaml:"supervisors"`

	// Crates restricts the report to the listed crates-per-box values.
	// Nil means all values. Runtime-only field.
	Crates []float64 `mapstructure:"crates" yaml:"crates"`
}

// ServerConfig contains settings for the HTTP API server.
type ServerConfig struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the TCP port the server listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records to process per batch for bulk
	// operations. Larger batches are faster but use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	validateStatus := true
	res := &Config{
		Source: SourceConfig{
			TimeoutSec:     60,
			ValidateStatus: &validateStatus,
		},
		Report: ReportConfig{
			OutputDir: ".",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "crtbox",
			SSLMode:   "disable",
			BatchSize: 50_000, // Batch size for bulk warehouse inserts
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
