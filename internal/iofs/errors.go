package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

// CreateDirError is returned when a config, cache or log directory of
// biotope cannot be created.
func CreateDirError(dir string, err error) error {
	return fsError(
		errcode.CreateDirError,
		"Cannot create biotope directory <em>%s</em>",
		"create directory", dir, err,
	)
}

// WriteConfigError is returned when the default config.yaml cannot be
// written.
func WriteConfigError(path string, err error) error {
	return fsError(
		errcode.WriteConfigError,
		"Cannot write default settings to <em>%s</em>",
		"write config", path, err,
	)
}

// ReadConfigError is returned when config.yaml cannot be read or does not
// match the settings of biotope.
func ReadConfigError(path string, err error) error {
	return fsError(
		errcode.ReadConfigError,
		"Cannot read settings from <em>%s</em>, fix or delete the file",
		"read config", path, err,
	)
}

// RemoveCacheError is returned when the catalog cache database cannot be
// deleted.
func RemoveCacheError(path string, err error) error {
	return fsError(
		errcode.RemoveFileError,
		"Cannot delete catalog cache <em>%s</em>",
		"remove cache", path, err,
	)
}

// fsError keeps the path for the user message and the calling function
// with the cause for logs.
func fsError(code gn.ErrorCode, msg, action, path string, err error) error {
	var fn string
	if pc, _, _, ok := runtime.Caller(2); ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", fn, action, path, err),
	}
}
