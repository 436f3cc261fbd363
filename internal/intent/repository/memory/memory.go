// Package memory is an in-process reference embedding store for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"intent-router/internal/intent/repository"
	"intent-router/internal/model"
)

type implRepository struct {
	mu sync.RWMutex
	// encoder id -> route -> utterance -> vector
	data map[string]map[string]map[string][]float32
}

var _ repository.Repository = (*implRepository)(nil)

func New() *implRepository {
	return &implRepository{data: make(map[string]map[string]map[string][]float32)}
}

func (r *implRepository) ListRoutes(ctx context.Context, encoderID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]string, 0, len(r.data[encoderID]))
	for name := range r.data[encoderID] {
		routes = append(routes, name)
	}
	slices.Sort(routes)
	return routes, nil
}

func (r *implRepository) ListEmbeddings(ctx context.Context, encoderID, route string) ([]model.ReferenceEmbedding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	utts := r.data[encoderID][route]
	out := make([]model.ReferenceEmbedding, 0, len(utts))
	for u, vec := range utts {
		out = append(out, model.ReferenceEmbedding{
			RouteName: route,
			Utterance: u,
			Vector:    slices.Clone(vec),
		})
	}
	slices.SortFunc(out, func(a, b model.ReferenceEmbedding) int {
		return strings.Compare(a.Utterance, b.Utterance)
	})
	return out, nil
}

func (r *implRepository) Insert(ctx context.Context, encoderID string, embs []model.ReferenceEmbedding) error {
	return r.Apply(ctx, encoderID, embs, nil)
}

func (r *implRepository) Delete(ctx context.Context, encoderID, route string, utterances []string) error {
	return r.Apply(ctx, encoderID, nil, map[string][]string{route: utterances})
}

// Apply validates the whole change before touching the store, so a rejected
// call leaves it unchanged.
func (r *implRepository) Apply(ctx context.Context, encoderID string, inserts []model.ReferenceEmbedding, deletes map[string][]string) error {
	if encoderID == "" {
		return repository.ErrEmptyEncoderID
	}
	for _, e := range inserts {
		if len(e.Vector) == 0 {
			return repository.ErrInvalidVector
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	routes, ok := r.data[encoderID]
	if !ok {
		routes = make(map[string]map[string][]float32)
		r.data[encoderID] = routes
	}
	for _, e := range inserts {
		utts, ok := routes[e.RouteName]
		if !ok {
			utts = make(map[string][]float32)
			routes[e.RouteName] = utts
		}
		utts[e.Utterance] = slices.Clone(e.Vector)
	}
	for route, remove := range deletes {
		utts, ok := routes[route]
		if !ok {
			continue
		}
		for _, u := range remove {
			delete(utts, u)
		}
		if len(utts) == 0 {
			delete(routes, route)
		}
	}
	if len(routes) == 0 {
		delete(r.data, encoderID)
	}
	return nil
}
