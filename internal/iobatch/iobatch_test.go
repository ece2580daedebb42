package iobatch_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iobatch"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/names"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		map[string]string{"Fagus silvatica": "Fagus sylvatica"},
		map[string]string{
			"Group1": "LES05.1a - Bukové lesy",
			"Group2": "Lk1 Nížinné a podhorské kosné lúky",
		},
		map[string]map[string]int{
			"Fagus sylvatica": {"Group1": 10, "Group2": 1},
			"Poa pratensis":   {"Group2": 8},
		},
	)
}

func writeFiles(t *testing.T, files map[string][]byte) string {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	dir := t.TempDir()
	for k, v := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), v, 0644))
	}
	return dir
}

func TestFiles(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"b.txt":   []byte("Poa pratensis"),
		"a.txt":   []byte("Fagus sylvatica"),
		".hidden": []byte("x"),
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	res, err := iobatch.Files([]string{"single.txt", dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"single.txt",
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}, res)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	dir := writeFiles(t, map[string][]byte{
		"forest.txt": []byte("Fagus silvatica\n\nGamma\n"),
		"meadow.txt": []byte("Poa pratensis\r\n"),
		"bad.txt":    {0x81, 0x98},
	})
	paths := []string{
		filepath.Join(dir, "forest.txt"),
		filepath.Join(dir, "missing.txt"),
		filepath.Join(dir, "bad.txt"),
		filepath.Join(dir, "meadow.txt"),
	}

	res, err := iobatch.Run(context.Background(), testCatalog(), paths,
		iobatch.OptJobsNumber(2), iobatch.OptProgress(io.Discard))
	require.NoError(t, err)
	require.Len(t, res, 4)

	for i, v := range res {
		assert.Equal(paths[i], v.Path)
	}

	assert.NoError(res[0].Err)
	assert.Equal(2, res[0].NamesNum)
	require.Len(t, res[0].Result.Matches, 2)
	assert.Equal("Group1", res[0].Result.Matches[0].GroupID)
	assert.Equal("100.00%", res[0].Result.Matches[0].Percent)

	var gnErr *gn.Error
	require.True(t, errors.As(res[1].Err, &gnErr))
	assert.Equal(errcode.ListReadError, gnErr.Code)
	require.True(t, errors.As(res[2].Err, &gnErr))
	assert.Equal(errcode.ListDecodeError, gnErr.Code)

	assert.NoError(res[3].Err)
	assert.Equal([]string{"Poa pratensis"}, res[3].Result.Processed)
}

func TestRunTopN(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"forest.txt": []byte("Fagus sylvatica\n"),
	})
	res, err := iobatch.Run(context.Background(), testCatalog(),
		[]string{filepath.Join(dir, "forest.txt")}, iobatch.OptTopN(1))
	require.NoError(t, err)
	assert.Len(t, res[0].Result.Matches, 1)
}

func TestRunNormalizer(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"list.txt": []byte("Poa pratensis L.\n"),
	})
	pool := parserpool.NewPool(2, nomcode.Botanical)
	defer pool.Close()

	path := filepath.Join(dir, "list.txt")
	res, err := iobatch.Run(context.Background(), testCatalog(), []string{path})
	require.NoError(t, err)
	assert.True(t, res[0].Result.NoMatch)

	res, err = iobatch.Run(context.Background(), testCatalog(), []string{path},
		iobatch.OptNormalizer(names.New(pool, 2)))
	require.NoError(t, err)
	assert.False(t, res[0].Result.NoMatch)
	assert.Equal(t, []string{"Poa pratensis"}, res[0].Result.Processed)
}

func TestRunCanceled(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"a.txt": []byte("Poa pratensis")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := iobatch.Run(ctx, testCatalog(), []string{filepath.Join(dir, "a.txt")})
	assert.ErrorIs(t, err, context.Canceled)
}
