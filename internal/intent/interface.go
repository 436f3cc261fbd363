package intent

import (
	"context"

	"intent-router/internal/model"
)

// UseCase is the semantic intent router.
type UseCase interface {
	// Init runs the first sync. Until it succeeds the router is not ready.
	Init(ctx context.Context) error

	// Classify maps a query to a route or to model.RouteNone.
	Classify(ctx context.Context, query string) (model.Intent, error)

	// ClassifyBatch classifies queries against a single index version.
	ClassifyBatch(ctx context.Context, queries []string) ([]model.Intent, error)

	// Sync reconciles the reference index with the current registry.
	Sync(ctx context.Context) (SyncOutput, error)

	// UpdateRegistry replaces the registry and syncs. On failure the previous
	// registry and index stay in place.
	UpdateRegistry(ctx context.Context, routes []model.Route) (SyncOutput, error)

	Routes() []model.Route
	Index() []model.ReferenceEmbedding
	Ready() bool
	Stats() Stats
}
