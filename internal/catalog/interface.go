package catalog

import (
	"context"
	"io"
)

type UseCase interface {
	// Answer turns a product question into a read-only SQL query, runs it
	// against the catalog and phrases the rows as a reply.
	Answer(ctx context.Context, query string) (string, error)

	// Import loads products from a CSV whose header names product columns.
	Import(ctx context.Context, r io.Reader) (int, error)
}
