package iofs_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iofs"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	return gnErr.Code
}

func TestEnsureDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	home := t.TempDir()

	// repeated calls keep the layout
	for range 2 {
		require.NoError(t, iofs.EnsureDirs(home))
	}

	tests := []struct {
		msg, dir string
	}{
		{"config", filepath.Join(home, ".config", "biotope")},
		{"cache", filepath.Join(home, ".cache", "biotope")},
		{"log", filepath.Join(home, ".local", "share", "biotope", "logs")},
	}
	for _, v := range tests {
		info, err := os.Stat(v.dir)
		require.NoError(t, err, v.msg)
		assert.True(t, info.IsDir(), v.msg)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v.msg)
	}
}

func TestEnsureDirsError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	// home is a regular file, so nothing can be created inside
	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.WriteFile(home, []byte("x"), 0644))

	err := iofs.EnsureDirs(home)
	require.Error(t, err)
	assert.Equal(t, errcode.CreateDirError, errCode(t, err))

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	require.Len(t, gnErr.Vars, 1)
	assert.True(t, strings.HasPrefix(gnErr.Vars[0].(string), home))
	assert.Contains(t, gnErr.Msg, "biotope directory")
	assert.Contains(t, gnErr.Err.Error(), "iofs.ensureDir")
}

func TestEnsureConfigFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	assert := assert.New(t)
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	path := config.ConfigFilePath(home)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(templates.ConfigYAML, string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(os.FileMode(0644), info.Mode().Perm())

	// every setting is documented and commented out, so the file only
	// declares the sections and defaults stay in force
	var sections map[string]any
	require.NoError(t, yaml.Unmarshal(content, &sections))
	keys := make([]string, 0, len(sections))
	for k, v := range sections {
		keys = append(keys, k)
		assert.Nil(v, k)
	}
	slices.Sort(keys)
	assert.Equal([]string{"analysis", "catalog", "log", "output"}, keys)

	for _, v := range []string{
		"# path:", "# with_cache:", "# top_n:", "# code:", "# format:",
		"# level:", "# destination:", "# jobs_number:", "BIOTOPE_CATALOG_PATH",
	} {
		assert.Contains(string(content), v)
	}
}

func TestEnsureConfigFileKeepsUserFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	path := config.ConfigFilePath(home)
	custom := "analysis:\n  top_n: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	require.NoError(t, iofs.EnsureConfigFile(home))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureConfigFileError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	// config directory was never created
	home := t.TempDir()

	err := iofs.EnsureConfigFile(home)
	require.Error(t, err)
	assert.Equal(t, errcode.WriteConfigError, errCode(t, err))
}

func TestRemoveCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	tests := []struct {
		msg   string
		setup func(path string) error
		code  gn.ErrorCode
	}{
		{
			msg:   "database file",
			setup: func(path string) error { return os.WriteFile(path, []byte("db"), 0644) },
		},
		{
			msg:   "missing file",
			setup: func(string) error { return nil },
		},
		{
			msg: "directory in place of the file",
			setup: func(path string) error {
				return os.MkdirAll(filepath.Join(path, "busy"), 0755)
			},
			code: errcode.RemoveFileError,
		},
	}

	for _, v := range tests {
		home := t.TempDir()
		require.NoError(t, iofs.EnsureDirs(home), v.msg)
		path := config.CacheFilePath(home)
		require.NoError(t, v.setup(path), v.msg)

		err := iofs.RemoveCache(home)
		if v.code != errcode.UnknownError {
			require.Error(t, err, v.msg)
			assert.Equal(t, v.code, errCode(t, err), v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		_, err = os.Stat(path)
		assert.True(t, errors.Is(err, os.ErrNotExist), v.msg)
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("disk is full")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"create dir", iofs.CreateDirError("/home/a/.cache/biotope", cause),
			errcode.CreateDirError, "biotope directory"},
		{"write config", iofs.WriteConfigError("/home/a/config.yaml", cause),
			errcode.WriteConfigError, "default settings"},
		{"read config", iofs.ReadConfigError("/home/a/config.yaml", cause),
			errcode.ReadConfigError, "fix or delete"},
		{"remove cache", iofs.RemoveCacheError("/home/a/catalogs.sqlite", cause),
			errcode.RemoveFileError, "catalog cache"},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		require.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Contains(t, gnErr.Msg, v.text, v.msg)
		assert.Contains(t, gnErr.Msg, "<em>%s</em>", v.msg)
		require.Len(t, gnErr.Vars, 1, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "TestErrors", v.msg)
	}
}
