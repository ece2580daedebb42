// Package iofs creates the file system layout of biotope: config, cache
// and log directories, and the default config file.
package iofs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/templates"
)

// EnsureDirs creates config, cache and log directories of homeDir if they
// are missing.
func EnsureDirs(homeDir string) error {
	for _, dir := range []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	} {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err = os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	slog.Debug("Created directory", "path", dir)
	return nil
}

// EnsureConfigFile writes the documented default config.yaml unless the
// user already has one.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	err := os.WriteFile(path, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return WriteConfigError(path, err)
	}
	slog.Info("Created default config file", "path", path)
	return nil
}

// RemoveCache deletes the catalog cache database. A missing database is
// not an error.
func RemoveCache(homeDir string) error {
	path := config.CacheFilePath(homeDir)
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return RemoveCacheError(path, err)
}
