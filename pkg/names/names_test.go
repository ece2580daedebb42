package names_test

import (
	"context"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/names"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/parserpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		map[string]string{"Quercus dalechampii": "Quercus petraea agg."},
		map[string]string{"Group1": "LES01 Oak woods"},
		map[string]map[string]int{
			"Fagus sylvatica": {"Group1": 3},
			"Carex pilosa":    {"Group1": 2},
		},
	)
}

func TestCanonicals(t *testing.T) {
	pool := parserpool.NewPool(1, nomcode.Botanical)
	defer pool.Close()
	n := names.New(pool, 1)

	simple, _, ok := n.Canonicals("Fagus sylvatica L.")
	assert.True(t, ok)
	assert.Equal(t, "Fagus sylvatica", simple)

	_, _, ok = n.Canonicals("not a name 123")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	pool := parserpool.NewPool(2, nomcode.Botanical)
	defer pool.Close()
	n := names.New(pool, 2)

	unknown := []string{
		"Fagus sylvatica L.",
		"Quercus dalechampii Ten.",
		"Carex pilosa Scop.",
		"Abies alba Mill.",
		"???",
	}
	res, err := n.Suggest(context.Background(), unknown, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Fagus sylvatica L.":       "Fagus sylvatica",
		"Quercus dalechampii Ten.": "Quercus dalechampii",
		"Carex pilosa Scop.":       "Carex pilosa",
	}, res)
}

func TestSuggestCanceled(t *testing.T) {
	pool := parserpool.NewPool(1, nomcode.Botanical)
	defer pool.Close()
	n := names.New(pool, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := n.Suggest(ctx, []string{"Fagus sylvatica L."}, testCatalog())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplace(t *testing.T) {
	in := []string{"Fagus sylvatica L.", "Carex pilosa", "Abies alba"}
	res := names.Replace(in, map[string]string{"Fagus sylvatica L.": "Fagus sylvatica"})
	assert.Equal(t, []string{"Fagus sylvatica", "Carex pilosa", "Abies alba"}, res)
	assert.Equal(t, "Fagus sylvatica L.", in[0])
}
