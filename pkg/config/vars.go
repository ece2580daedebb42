package config

import (
	"path/filepath"
)

var (
	// CatalogFileName is the default catalog file, searched in the
	// working directory.
	CatalogFileName = "ES Katalog biotopov Suvada ed 2023 v1.05.txt"
	// AppName is used in generating file system paths.
	AppName = "biotope"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/biotope by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/biotope by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/biotope/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/biotope/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CacheFilePath returns the full path to the parse cache database.
// Returns ~/.cache/biotope/catalogs.sqlite by default.
func CacheFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "catalogs.sqlite")
}
