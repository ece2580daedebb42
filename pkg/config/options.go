package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCatalogPath sets the location of the habitat catalog file.
func OptCatalogPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Path", s) {
			c.Catalog.Path = s
		}
	}
}

// OptCatalogWithCache enables or disables the parse cache.
// Uses pointer to distinguish between unset (nil) and false.
func OptCatalogWithCache(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			v := *b
			c.Catalog.WithCache = &v
		}
	}
}

// OptAnalysisTopN sets the number of best habitat groups to report.
func OptAnalysisTopN(i int) Option {
	return func(c *Config) {
		if isValidInt("Top N", i) {
			c.Analysis.TopN = i
		}
	}
}

// OptAnalysisCode sets the nomenclatural code for name normalization.
// Valid values: "botanical", "zoological".
func OptAnalysisCode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Analysis.Code", s) {
			c.Analysis.Code = s
		}
	}
}

// OptAnalysisNormalize sets whether unknown input names are replaced by
// known names with the same canonical form.
// Runtime-only field - not in ToOptions().
func OptAnalysisNormalize(b bool) Option {
	return func(c *Config) {
		c.Analysis.Normalize = b
	}
}

// OptOutputFormat sets the output format.
// Valid values: "text", "csv", "tsv", "compact", "pretty".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
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
// Valid values: "json", "text".
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
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
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
