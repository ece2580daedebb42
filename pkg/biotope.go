// Package biotope contains contracts between the habitat scoring core and
// the I/O layers that feed it.
package biotope

import (
	"context"

	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
)

// Loader provides a parsed habitat catalog.
// Implementations decide where the catalog text comes from and whether
// parsed results are cached. The returned Catalog must not be modified.
type Loader interface {
	// Load reads, decodes and parses the catalog. It fails with a
	// CatalogUnreadable error if the text cannot be read or decoded, and
	// with a CatalogMalformed error if the text has no group names or no
	// frequency entries.
	Load(ctx context.Context) (*catalog.Catalog, error)
}
