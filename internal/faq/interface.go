package faq

import (
	"context"
	"io"
)

type UseCase interface {
	// Ingest embeds every question of a question,answer CSV and upserts it
	// into the FAQ store. Re-ingesting the same question overwrites it.
	Ingest(ctx context.Context, r io.Reader) (IngestOutput, error)

	// Answer retrieves the closest FAQ entries and has the LLM answer from them.
	Answer(ctx context.Context, query string) (string, error)
}
