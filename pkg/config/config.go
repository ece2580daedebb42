// Package config provides configuration management for biotope.
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
//   - Catalog: path, with_cache
//   - Analysis: top_n, code
//   - Output: format
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Analysis.Normalize (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BIOTOPE_ prefix with underscores for nesting:
//
//	BIOTOPE_CATALOG_PATH=/data/katalog.txt
//	BIOTOPE_ANALYSIS_TOP_N=5
//	BIOTOPE_LOG_LEVEL=info
//	BIOTOPE_JOBS_NUMBER=8
package config

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
)

// Config represents the complete biotope configuration.
type Config struct {
	// Catalog contains settings of the habitat catalog source.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Analysis contains settings of habitat scoring.
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Output contains settings for printing results.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for batch analysis
	// and name normalization.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// CatalogConfig describes where the habitat catalog comes from.
type CatalogConfig struct {
	// Path is the location of the catalog text file (UTF-8 or
	// Windows-1250).
	Path string `mapstructure:"path" yaml:"path"`

	// WithCache enables the parse cache keyed by catalog content.
	// Uses pointer to distinguish between unset (nil) and false.
	WithCache *bool `mapstructure:"with_cache" yaml:"with_cache"`
}

// AnalysisConfig contains settings of habitat scoring.
type AnalysisConfig struct {
	// TopN is the number of best habitat groups to report.
	TopN int `mapstructure:"top_n" yaml:"top_n"`

	// Code is the nomenclatural code used for name normalization.
	// Valid values: "botanical", "zoological".
	Code string `mapstructure:"code" yaml:"code"`

	// Normalize replaces unknown input names by known names with the same
	// canonical form before scoring. Runtime-only.
	Normalize bool `mapstructure:"-" yaml:"-"`
}

// OutputConfig contains settings for printing results.
type OutputConfig struct {
	// Format can be 'text', 'csv', 'tsv', 'compact' or 'pretty'.
	Format string `mapstructure:"format" yaml:"format"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
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
	withCache := true
	res := &Config{
		Catalog: CatalogConfig{
			Path:      CatalogFileName,
			WithCache: &withCache,
		},
		Analysis: AnalysisConfig{
			TopN: 3,
			Code: "botanical",
		},
		Output: OutputConfig{
			Format: "text",
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

// UseCache tells if the parse cache is enabled.
func (c *Config) UseCache() bool {
	return c.Catalog.WithCache == nil || *c.Catalog.WithCache
}

// NomCode returns the nomenclatural code for name normalization.
func (c *Config) NomCode() nomcode.Code {
	if c.Analysis.Code == "zoological" {
		return nomcode.Zoological
	}
	return nomcode.Botanical
}
