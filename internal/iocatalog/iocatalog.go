// Package iocatalog implements the Loader interface. It reads the habitat
// catalog file, decodes it, and parses it or takes the parsed catalog from
// the cache.
package iocatalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iocache"
	"github.com/robertsuvada-sys/biotope-fqi-app/internal/iotext"
	biotope "github.com/robertsuvada-sys/biotope-fqi-app/pkg"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/config"
)

type loader struct {
	cfg *config.Config
}

// New creates a catalog Loader for the catalog file given in the config.
func New(cfg *config.Config) biotope.Loader {
	return &loader{cfg: cfg}
}

// Load reads the catalog file and returns the parsed catalog.
// Cache failures are logged and never stop loading.
func (l *loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	path := l.cfg.Catalog.Path

	text, enc, err := iotext.ReadCatalog(path)
	if err != nil {
		return nil, err
	}
	id := gnuuid.New(text).String()
	slog.Info("Read catalog", "path", path, "encoding", enc, "id", id)

	var cache *iocache.Cache
	if l.useCache() {
		cache = l.openCache()
	}
	if cache != nil {
		defer cache.Close()
		cat, ok, err := cache.Get(ctx, id)
		if err != nil {
			slog.Warn("Cannot read catalog from cache", "error", err)
		}
		if ok {
			slog.Info("Catalog loaded from cache",
				"id", id,
				"duration", gnfmt.TimeString(time.Since(start).Seconds()),
			)
			return cat, nil
		}
	}

	cat, err := catalog.Parse(text)
	if err != nil {
		slog.Error("Cannot parse catalog", "path", path, "error", err)
		return nil, err
	}
	cat.ID = id
	cat.Encoding = string(enc)
	logStats(cat.Stats)

	if cache != nil {
		if err = cache.Put(ctx, cat); err != nil {
			slog.Warn("Cannot store catalog in cache", "error", err)
		}
	}

	slog.Info("Catalog parsed",
		"groups", len(cat.Groups),
		"species", len(cat.Matrix),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return cat, nil
}

func (l *loader) useCache() bool {
	return l.cfg.UseCache() && l.cfg.HomeDir != ""
}

func (l *loader) openCache() *iocache.Cache {
	path := config.CacheFilePath(l.cfg.HomeDir)
	res, err := iocache.Open(path)
	if err != nil {
		slog.Warn("Catalog cache is not available", "error", err)
		return nil
	}
	return res
}

func logStats(stats catalog.ParseStats) {
	slog.Info("Catalog parse statistics",
		"lines", humanize.Comma(int64(stats.Lines)),
		"synonyms", humanize.Comma(int64(stats.SynonymEntries)),
		"duplicate_synonyms", stats.DuplicateSynonyms,
		"group_names", stats.GroupNames,
		"species_rows", humanize.Comma(int64(stats.SpeciesRows)),
		"matrix_entries", humanize.Comma(int64(stats.MatrixEntries)),
		"skipped_rows", stats.SkippedRows,
	)
	if stats.SkippedRows > 0 {
		slog.Warn("Skipped catalog rows with unusable counts",
			"rows", stats.SkippedRows)
	}
}
