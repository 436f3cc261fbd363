// Package sqlite persists reference embeddings in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"intent-router/internal/intent/repository"
	pkgLog "intent-router/pkg/log"
)

const dsnParams = "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS reference_embeddings (
	encoder_id TEXT    NOT NULL,
	route_name TEXT    NOT NULL,
	utterance  TEXT    NOT NULL,
	dims       INTEGER NOT NULL,
	vector     BLOB    NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (encoder_id, route_name, utterance)
);
CREATE INDEX IF NOT EXISTS idx_reference_embeddings_route
	ON reference_embeddings (encoder_id, route_name);
`

type implRepository struct {
	l  pkgLog.Logger
	db *sql.DB
}

var _ repository.Repository = (*implRepository)(nil)

// New opens (creating if needed) the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func New(ctx context.Context, l pkgLog.Logger, path string) (*implRepository, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create dir %s: %w", dir, err)
			}
		}
		dsn = path + dsnParams
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	l.Infof(ctx, "intent.repository.sqlite.New: opened %s", path)
	return &implRepository{l: l, db: db}, nil
}

// Close closes the underlying database.
func (r *implRepository) Close() error {
	return r.db.Close()
}
