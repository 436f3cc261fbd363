package repository

import (
	"context"

	"intent-router/internal/faq"
)

type Repository interface {
	// EnsureCollection creates the backing collection for dims-sized vectors
	// when it does not exist yet.
	EnsureCollection(ctx context.Context, dims int) error
	Upsert(ctx context.Context, entries []faq.Entry, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, opts SearchOptions) ([]faq.Hit, error)
}

type SearchOptions struct {
	Limit    int
	MinScore float64
}
