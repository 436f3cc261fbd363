// Package sqlite stores the product catalog in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"intent-router/internal/catalog/repository"
	pkgLog "intent-router/pkg/log"
)

const dsnParams = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

const schema = `CREATE TABLE IF NOT EXISTS product (
	product_link  TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	brand         TEXT NOT NULL DEFAULT '',
	price         REAL NOT NULL DEFAULT 0,
	discount      REAL NOT NULL DEFAULT 0,
	avg_rating    REAL NOT NULL DEFAULT 0,
	total_ratings INTEGER NOT NULL DEFAULT 0
);`

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Repository = (*implRepository)(nil)

// New opens (creating if needed) the catalog database at path.
func New(ctx context.Context, l pkgLog.Logger, path string) (*implRepository, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("catalog sqlite: create dir %s: %w", dir, err)
			}
		}
		dsn = path + dsnParams
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog sqlite: migrate: %w", err)
	}

	l.Infof(ctx, "catalog.repository.sqlite.New: opened %s", path)
	return &implRepository{l: l, db: db}, nil
}

func (r *implRepository) Schema() string {
	return schema
}

// Close closes the underlying database.
func (r *implRepository) Close() error {
	return r.db.Close()
}
