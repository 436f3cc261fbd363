package repository

import (
	"context"

	"intent-router/internal/model"
)

// Repository persists reference embeddings keyed by
// (encoder id, route name, utterance).
type Repository interface {
	ListRoutes(ctx context.Context, encoderID string) ([]string, error)
	ListEmbeddings(ctx context.Context, encoderID, route string) ([]model.ReferenceEmbedding, error)
	// Insert upserts embeddings.
	Insert(ctx context.Context, encoderID string, embs []model.ReferenceEmbedding) error
	Delete(ctx context.Context, encoderID, route string, utterances []string) error
	// Apply upserts inserts and removes deletes (route -> utterances) as one
	// atomic change. On error nothing is written.
	Apply(ctx context.Context, encoderID string, inserts []model.ReferenceEmbedding, deletes map[string][]string) error
}
