package qdrant

import (
	"context"
	"fmt"

	"intent-router/internal/faq"
	"intent-router/internal/faq/repository"
	pkgQdrant "intent-router/pkg/qdrant"
)

// upsertChunk bounds the request body of a single upsert call.
const upsertChunk = 128

func (r *implRepository) EnsureCollection(ctx context.Context, dims int) error {
	if dims <= 0 {
		return repository.ErrInvalidDims
	}
	exists, err := r.client.CollectionExists(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("faq.qdrant.EnsureCollection: %w", err)
	}
	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name:    r.collection,
		Vectors: pkgQdrant.VectorConfig{Size: dims, Distance: pkgQdrant.DistanceCosine},
	})
	if err != nil {
		return fmt.Errorf("faq.qdrant.EnsureCollection: %w", err)
	}
	r.l.Infof(ctx, "faq.qdrant.EnsureCollection: created collection %s (dims=%d)", r.collection, dims)
	return nil
}

func (r *implRepository) Upsert(ctx context.Context, entries []faq.Entry, vectors [][]float32) error {
	if len(entries) != len(vectors) {
		return repository.ErrLengthMismatch
	}

	for start := 0; start < len(entries); start += upsertChunk {
		end := min(start+upsertChunk, len(entries))
		points := make([]pkgQdrant.Point, 0, end-start)
		for i := start; i < end; i++ {
			points = append(points, pkgQdrant.Point{
				ID:     pointID(entries[i].Question),
				Vector: vectors[i],
				Payload: map[string]any{
					payloadQuestion: entries[i].Question,
					payloadAnswer:   entries[i].Answer,
				},
			})
		}
		if err := r.client.UpsertPoints(ctx, r.collection, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
			return fmt.Errorf("faq.qdrant.Upsert: %w", err)
		}
	}
	return nil
}

func (r *implRepository) Search(ctx context.Context, vector []float32, opts repository.SearchOptions) ([]faq.Hit, error) {
	req := pkgQdrant.SearchRequest{
		Vector:      vector,
		Limit:       max(opts.Limit, 1),
		WithPayload: true,
	}
	if opts.MinScore > 0 {
		req.ScoreThreshold = &opts.MinScore
	}

	resp, err := r.client.SearchPoints(ctx, r.collection, req)
	if err != nil {
		return nil, fmt.Errorf("faq.qdrant.Search: %w", err)
	}

	hits := make([]faq.Hit, 0, len(resp.Result))
	for _, p := range resp.Result {
		q, a := p.String(payloadQuestion), p.String(payloadAnswer)
		if a == "" {
			r.l.Warnf(ctx, "faq.qdrant.Search: point %s has no answer payload", p.ID)
			continue
		}
		hits = append(hits, faq.Hit{Entry: faq.Entry{Question: q, Answer: a}, Score: p.Score})
	}
	return hits, nil
}
