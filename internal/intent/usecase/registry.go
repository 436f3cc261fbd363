package usecase

import (
	"context"
	"fmt"

	"intent-router/internal/intent"
	"intent-router/internal/model"
	"intent-router/internal/registry"
)

// UpdateRegistry validates routes and syncs the index against them. The new
// registry becomes current only if the sync succeeds.
func (uc *implUseCase) UpdateRegistry(ctx context.Context, routes []model.Route) (intent.SyncOutput, error) {
	normalized, err := registry.Normalize(routes)
	if err != nil {
		return intent.SyncOutput{}, fmt.Errorf("%w: %w", intent.ErrInvalidRegistry, err)
	}

	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()

	out, err := uc.syncLocked(ctx, normalized)
	if err != nil {
		return intent.SyncOutput{}, err
	}
	uc.l.Infof(ctx, "intent.usecase.UpdateRegistry: %d routes now active", len(normalized))
	return out, nil
}

// Routes returns a copy of the current registry in registration order.
func (uc *implUseCase) Routes() []model.Route {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return copyRoutes(uc.routes)
}

func copyRoutes(routes []model.Route) []model.Route {
	out := make([]model.Route, len(routes))
	for i, r := range routes {
		out[i] = model.Route{
			Name:       r.Name,
			Utterances: append([]string(nil), r.Utterances...),
		}
		if r.Threshold != nil {
			t := *r.Threshold
			out[i].Threshold = &t
		}
	}
	return out
}
