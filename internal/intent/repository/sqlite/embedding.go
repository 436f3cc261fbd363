package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"intent-router/internal/intent/repository"
	"intent-router/internal/model"
)

func (r *implRepository) ListRoutes(ctx context.Context, encoderID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT route_name FROM reference_embeddings WHERE encoder_id = ? ORDER BY route_name`,
		encoderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list routes: %w", err)
	}
	defer rows.Close()

	var routes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scan route: %w", err)
		}
		routes = append(routes, name)
	}
	return routes, rows.Err()
}

func (r *implRepository) ListEmbeddings(ctx context.Context, encoderID, route string) ([]model.ReferenceEmbedding, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT utterance, dims, vector FROM reference_embeddings
		 WHERE encoder_id = ? AND route_name = ? ORDER BY utterance`,
		encoderID, route)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list embeddings: %w", err)
	}
	defer rows.Close()

	var out []model.ReferenceEmbedding
	for rows.Next() {
		var (
			utterance string
			dims      int
			blob      []byte
		)
		if err := rows.Scan(&utterance, &dims, &blob); err != nil {
			return nil, fmt.Errorf("sqlite: scan embedding: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("sqlite: route %q utterance %q: %w", route, utterance, err)
		}
		if len(vec) != dims {
			return nil, fmt.Errorf("sqlite: route %q utterance %q: %w: dims column %d, vector %d",
				route, utterance, repository.ErrInvalidVector, dims, len(vec))
		}
		out = append(out, model.ReferenceEmbedding{RouteName: route, Utterance: utterance, Vector: vec})
	}
	return out, rows.Err()
}

func (r *implRepository) Insert(ctx context.Context, encoderID string, embs []model.ReferenceEmbedding) error {
	return r.Apply(ctx, encoderID, embs, nil)
}

func (r *implRepository) Delete(ctx context.Context, encoderID, route string, utterances []string) error {
	return r.Apply(ctx, encoderID, nil, map[string][]string{route: utterances})
}

// Apply upserts inserts and removes deletes in one transaction.
func (r *implRepository) Apply(ctx context.Context, encoderID string, inserts []model.ReferenceEmbedding, deletes map[string][]string) error {
	if encoderID == "" {
		return repository.ErrEmptyEncoderID
	}
	nDeletes := 0
	for _, utts := range deletes {
		nDeletes += len(utts)
	}
	if len(inserts) == 0 && nDeletes == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if len(inserts) > 0 {
		if err := insertEmbeddings(ctx, tx, encoderID, inserts); err != nil {
			return err
		}
	}
	if nDeletes > 0 {
		if err := deleteEmbeddings(ctx, tx, encoderID, deletes); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func insertEmbeddings(ctx context.Context, tx *sql.Tx, encoderID string, embs []model.ReferenceEmbedding) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO reference_embeddings (encoder_id, route_name, utterance, dims, vector)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range embs {
		blob, err := encodeVector(e.Vector)
		if err != nil {
			return fmt.Errorf("sqlite: route %q utterance %q: %w", e.RouteName, e.Utterance, err)
		}
		if _, err := stmt.ExecContext(ctx, encoderID, e.RouteName, e.Utterance, len(e.Vector), blob); err != nil {
			return fmt.Errorf("sqlite: insert: %w", err)
		}
	}
	return nil
}

func deleteEmbeddings(ctx context.Context, tx *sql.Tx, encoderID string, deletes map[string][]string) error {
	stmt, err := tx.PrepareContext(ctx,
		`DELETE FROM reference_embeddings WHERE encoder_id = ? AND route_name = ? AND utterance = ?`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare delete: %w", err)
	}
	defer stmt.Close()

	for route, utts := range deletes {
		for _, u := range utts {
			if _, err := stmt.ExecContext(ctx, encoderID, route, u); err != nil {
				return fmt.Errorf("sqlite: delete: %w", err)
			}
		}
	}
	return nil
}
