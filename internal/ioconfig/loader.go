// Package ioconfig reads biotope configuration from config.yaml and
// BIOTOPE_* environment variables, and writes it back as YAML.
package ioconfig

import (
	"strings"

	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iofs"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml settings.
const EnvPrefix = "BIOTOPE"

// Load reads config.yaml from the config directory of homeDir, applies
// environment variables and returns the resulting settings. Settings that
// are neither in the file nor in the environment keep zero values, so the
// result is meant to be applied to config.New() through ToOptions().
func Load(homeDir string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Catalog configuration
	v.BindEnv("catalog.path", EnvPrefix+"_CATALOG_PATH")
	v.BindEnv("catalog.with_cache", EnvPrefix+"_CATALOG_WITH_CACHE")

	// Analysis configuration
	v.BindEnv("analysis.top_n", EnvPrefix+"_ANALYSIS_TOP_N")
	v.BindEnv("analysis.code", EnvPrefix+"_ANALYSIS_CODE")

	// Output configuration
	v.BindEnv("output.format", EnvPrefix+"_OUTPUT_FORMAT")

	// Log configuration
	v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", EnvPrefix+"_JOBS_NUMBER")

	v.AutomaticEnv()
}

// Dump returns persistent settings of cfg in config.yaml format.
func Dump(cfg *config.Config) (string, error) {
	res, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(res), nil
}
