package repository

import (
	"context"

	"intent-router/internal/catalog"
)

type Repository interface {
	// Schema returns the CREATE statement shown to the LLM.
	Schema() string
	Insert(ctx context.Context, products []catalog.Product) error
	// Query runs stmt on a read-only connection and returns at most limit rows.
	Query(ctx context.Context, stmt string, limit int) (catalog.Rows, error)
}
