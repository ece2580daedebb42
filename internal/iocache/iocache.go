// Package iocache keeps parsed catalogs in an SQLite database, so a catalog
// text that was parsed once is loaded from the database next time.
// Entries are keyed by the catalog ID, a UUID v5 of the decoded catalog
// text, so an edited catalog never hits a stale entry.
package iocache

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/catalog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const schema = `
CREATE TABLE IF NOT EXISTS catalogs (
	id         TEXT PRIMARY KEY,
	encoding   TEXT NOT NULL DEFAULT '',
	stats      BLOB,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS synonyms (
	catalog_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	canonical  TEXT NOT NULL,
	PRIMARY KEY (catalog_id, name)
);

CREATE TABLE IF NOT EXISTS habitat_groups (
	catalog_id   TEXT NOT NULL,
	group_id     TEXT NOT NULL,
	display_name TEXT NOT NULL,
	PRIMARY KEY (catalog_id, group_id)
);

CREATE TABLE IF NOT EXISTS frequencies (
	catalog_id TEXT NOT NULL,
	species    TEXT NOT NULL,
	group_id   TEXT NOT NULL,
	count      INTEGER NOT NULL,
	PRIMARY KEY (catalog_id, species, group_id)
);
`

var tables = []string{"frequencies", "habitat_groups", "synonyms", "catalogs"}

// Cache stores parsed catalogs.
type Cache struct {
	db  *sqlx.DB
	enc gnfmt.GNgob
}

// Entry describes a cached catalog.
type Entry struct {
	ID         string    `db:"id"         json:"id"         yaml:"id"`
	Encoding   string    `db:"encoding"   json:"encoding"   yaml:"encoding"`
	CreatedAt  time.Time `db:"-"          json:"createdAt"  yaml:"created_at"`
	SpeciesNum int       `db:"species"    json:"speciesNum" yaml:"species_num"`
	Created    string    `db:"created_at" json:"-"          yaml:"-"`
}

type synonymRow struct {
	Name      string `db:"name"`
	Canonical string `db:"canonical"`
}

type groupRow struct {
	GroupID     string `db:"group_id"`
	DisplayName string `db:"display_name"`
}

type frequencyRow struct {
	Species string `db:"species"`
	GroupID string `db:"group_id"`
	Count   int    `db:"count"`
}

// Open opens or creates the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, CacheOpenError(path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, CacheOpenError(path, err)
	}

	slog.Debug("Opened catalog cache", "path", path)
	return &Cache{db: db, enc: gnfmt.GNgob{}}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached catalog with the given ID. The boolean is false
// when the catalog is not in the cache.
func (c *Cache) Get(ctx context.Context, id string) (*catalog.Catalog, bool, error) {
	var head struct {
		Encoding string `db:"encoding"`
		Stats    []byte `db:"stats"`
	}
	q := "SELECT encoding, stats FROM catalogs WHERE id = ?"
	err := c.db.GetContext(ctx, &head, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, CacheReadError(id, err)
	}

	var stats catalog.ParseStats
	if len(head.Stats) > 0 {
		if err = c.enc.Decode(head.Stats, &stats); err != nil {
			return nil, false, CacheReadError(id, err)
		}
	}

	var syns []synonymRow
	q = "SELECT name, canonical FROM synonyms WHERE catalog_id = ?"
	if err = c.db.SelectContext(ctx, &syns, q, id); err != nil {
		return nil, false, CacheReadError(id, err)
	}
	synonyms := make(map[string]string, len(syns))
	for _, v := range syns {
		synonyms[v.Name] = v.Canonical
	}

	var grps []groupRow
	q = "SELECT group_id, display_name FROM habitat_groups WHERE catalog_id = ?"
	if err = c.db.SelectContext(ctx, &grps, q, id); err != nil {
		return nil, false, CacheReadError(id, err)
	}
	groups := make(map[string]string, len(grps))
	for _, v := range grps {
		groups[v.GroupID] = v.DisplayName
	}

	var freqs []frequencyRow
	q = "SELECT species, group_id, count FROM frequencies WHERE catalog_id = ?"
	if err = c.db.SelectContext(ctx, &freqs, q, id); err != nil {
		return nil, false, CacheReadError(id, err)
	}
	matrix := make(map[string]map[string]int)
	for _, v := range freqs {
		row, ok := matrix[v.Species]
		if !ok {
			row = make(map[string]int)
			matrix[v.Species] = row
		}
		row[v.GroupID] = v.Count
	}

	res := catalog.New(synonyms, groups, matrix)
	res.ID = id
	res.Encoding = head.Encoding
	res.Stats = stats
	return res, true, nil
}

// Put stores the catalog, replacing an earlier entry with the same ID.
// The ID must be the UUID content hash of the catalog file.
func (c *Cache) Put(ctx context.Context, cat *catalog.Catalog) error {
	if _, err := uuid.Parse(cat.ID); err != nil {
		return CacheWriteError(cat.ID, err)
	}

	stats, err := c.enc.Encode(cat.Stats)
	if err != nil {
		return CacheWriteError(cat.ID, err)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return CacheWriteError(cat.ID, err)
	}
	defer tx.Rollback()

	for _, v := range tables {
		col := "catalog_id"
		if v == "catalogs" {
			col = "id"
		}
		q := "DELETE FROM " + v + " WHERE " + col + " = ?"
		if _, err = tx.ExecContext(ctx, q, cat.ID); err != nil {
			return CacheWriteError(cat.ID, err)
		}
	}

	q := `INSERT INTO catalogs (id, encoding, stats, created_at)
	VALUES (?, ?, ?, ?)`
	created := time.Now().UTC().Format(time.RFC3339)
	if _, err = tx.ExecContext(ctx, q, cat.ID, cat.Encoding, stats, created); err != nil {
		return CacheWriteError(cat.ID, err)
	}

	q = "INSERT INTO synonyms (catalog_id, name, canonical) VALUES (?, ?, ?)"
	stmt, err := tx.PreparexContext(ctx, q)
	if err != nil {
		return CacheWriteError(cat.ID, err)
	}
	for k, v := range cat.Synonyms {
		if _, err = stmt.ExecContext(ctx, cat.ID, k, v); err != nil {
			stmt.Close()
			return CacheWriteError(cat.ID, err)
		}
	}
	stmt.Close()

	q = `INSERT INTO habitat_groups (catalog_id, group_id, display_name)
	VALUES (?, ?, ?)`
	stmt, err = tx.PreparexContext(ctx, q)
	if err != nil {
		return CacheWriteError(cat.ID, err)
	}
	for k, v := range cat.Groups {
		if _, err = stmt.ExecContext(ctx, cat.ID, k, v); err != nil {
			stmt.Close()
			return CacheWriteError(cat.ID, err)
		}
	}
	stmt.Close()

	q = `INSERT INTO frequencies (catalog_id, species, group_id, count)
	VALUES (?, ?, ?, ?)`
	stmt, err = tx.PreparexContext(ctx, q)
	if err != nil {
		return CacheWriteError(cat.ID, err)
	}
	for species, row := range cat.Matrix {
		for group, count := range row {
			if _, err = stmt.ExecContext(ctx, cat.ID, species, group, count); err != nil {
				stmt.Close()
				return CacheWriteError(cat.ID, err)
			}
		}
	}
	stmt.Close()

	if err = tx.Commit(); err != nil {
		return CacheWriteError(cat.ID, err)
	}

	slog.Debug("Cached catalog", "id", cat.ID, "species", len(cat.Matrix))
	return nil
}

// List returns all cached catalogs, newest first.
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	q := `
SELECT c.id, c.encoding, c.created_at,
	(SELECT COUNT(DISTINCT f.species) FROM frequencies f
		WHERE f.catalog_id = c.id) AS species
FROM catalogs c
ORDER BY c.created_at DESC, c.id`
	var res []Entry
	if err := c.db.SelectContext(ctx, &res, q); err != nil {
		return nil, CacheReadError("", err)
	}
	for i := range res {
		res[i].CreatedAt, _ = time.Parse(time.RFC3339, res[i].Created)
	}
	return res, nil
}

// Clear removes all cached catalogs and returns how many were removed.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, CacheWriteError("", err)
	}
	defer tx.Rollback()

	var res int
	for _, v := range tables {
		r, err := tx.ExecContext(ctx, "DELETE FROM "+v)
		if err != nil {
			return 0, CacheWriteError("", err)
		}
		if v == "catalogs" {
			n, _ := r.RowsAffected()
			res = int(n)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, CacheWriteError("", err)
	}
	slog.Info("Cleared catalog cache", "catalogs", res)
	return res, nil
}
