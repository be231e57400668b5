package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSourceName selects the dataset from sources.yaml by name.
func OptSourceName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Source Name", s) {
			c.Source.Name = s
		}
	}
}

// OptSourceTimeoutSec sets the HTTP timeout for downloads, in seconds.
func OptSourceTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Source Timeout", i) {
			c.Source.TimeoutSec = i
		}
	}
}

// OptSourceValidateStatus controls whether non-200 responses abort the
// download. Uses pointer to distinguish between unset (nil) and false.
func OptSourceValidateStatus(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Source.ValidateStatus = b
		}
	}
}

// OptReportRoundRatio rounds the crates-per-box ratio to the nearest
// whole number before filtering and pivoting.
func OptReportRoundRatio(b bool) Option {
	return func(c *Config) {
		c.Report.RoundRatio = b
	}
}

// OptReportOutputDir sets the directory for exported CSV files.
func OptReportOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Report.OutputDir = s
		}
	}
}

// OptReportFrom sets the start of the report date range (YYYY-MM-DD).
// Runtime-only field - not in ToOptions().
func OptReportFrom(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Report.From = s
		}
	}
}

// OptReportTo sets the end of the report date range (YYYY-MM-DD).
// Runtime-only field - not in ToOptions().
func OptReportTo(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Report.To = s
		}
	}
}

// OptReportSupervisors restricts the report to the listed supervisors.
// Nil means all supervisors. Runtime-only field - not in ToOptions().
func OptReportSupervisors(ss []string) Option {
	return func(c *Config) {
		if ss != nil {
			c.Report.Supervisors = ss
		}
	}
}

// OptReportCrates restricts the report to the listed crates-per-box
// values. Nil means all values. Runtime-only field - not in ToOptions().
func OptReportCrates(ff []float64) Option {
	return func(c *Config) {
		if ff != nil {
			c.Report.Crates = ff
		}
	}
}

// OptServerHost sets the interface the HTTP API binds to.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the TCP port the HTTP API listens on.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records to process per batch.
// Used for bulk inserts during publish.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdin", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
