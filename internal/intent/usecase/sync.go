package usecase

import (
	"context"
	"fmt"
	"time"

	"intent-router/internal/intent"
	"intent-router/internal/model"
)

// Sync reconciles the reference index with the current registry.
func (uc *implUseCase) Sync(ctx context.Context) (intent.SyncOutput, error) {
	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()

	return uc.syncLocked(ctx, uc.Routes())
}

// syncLocked diffs routes against the persisted index for the current
// encoder, encodes what is missing in one call, removes what is stale and
// swaps in a new snapshot. The caller holds syncMu. On failure the current
// snapshot is left untouched.
func (uc *implUseCase) syncLocked(ctx context.Context, routes []model.Route) (intent.SyncOutput, error) {
	start := time.Now()
	encoderID := uc.enc.Identity()

	persisted, err := uc.loadPersisted(ctx, encoderID)
	if err != nil {
		return intent.SyncOutput{}, uc.syncFailed(ctx, err)
	}

	var (
		missingTexts []string
		missingKeys  []model.ReferenceEmbedding
		kept         int
	)
	for _, r := range routes {
		have := persisted[r.Name]
		for _, u := range r.Utterances {
			if _, ok := have[u]; ok {
				kept++
				continue
			}
			missingTexts = append(missingTexts, u)
			missingKeys = append(missingKeys, model.ReferenceEmbedding{RouteName: r.Name, Utterance: u})
		}
	}

	stale := staleUtterances(persisted, routes)
	removed := 0
	for _, utts := range stale {
		removed += len(utts)
	}

	if len(missingTexts) > 0 {
		vecs, err := uc.enc.Encode(ctx, missingTexts)
		if err != nil {
			return intent.SyncOutput{}, uc.syncFailed(ctx, intent.Wrap(intent.ErrEncoding, err))
		}
		if len(vecs) != len(missingTexts) {
			return intent.SyncOutput{}, uc.syncFailed(ctx, fmt.Errorf("%w: %d vectors for %d utterances",
				intent.ErrEncoding, len(vecs), len(missingTexts)))
		}
		for i := range missingKeys {
			missingKeys[i].Vector = vecs[i]
		}
	}

	snap, err := uc.buildSnapshot(encoderID, routes, persisted, missingKeys)
	if err != nil {
		return intent.SyncOutput{}, uc.syncFailed(ctx, err)
	}

	if err := uc.repo.Apply(ctx, encoderID, missingKeys, stale); err != nil {
		return intent.SyncOutput{}, uc.syncFailed(ctx, fmt.Errorf("persist embeddings: %w", err))
	}

	if prev := uc.snap.Load(); prev != nil {
		snap.version = prev.version + 1
	} else {
		snap.version = 1
	}
	uc.snap.Store(snap)

	uc.mu.Lock()
	uc.routes = routes
	uc.lastSync = time.Now()
	uc.lastSyncError = ""
	uc.mu.Unlock()

	out := intent.SyncOutput{
		Added:    len(missingKeys),
		Removed:  removed,
		Kept:     kept,
		Version:  snap.version,
		Duration: time.Since(start),
	}
	uc.metrics.ObserveSync("ok", out.Added, out.Removed, snap.size)
	uc.l.Infof(ctx, "intent.usecase.Sync: encoder=%s version=%d added=%d removed=%d kept=%d took=%s",
		encoderID, out.Version, out.Added, out.Removed, out.Kept, out.Duration)

	return out, nil
}

// loadPersisted returns route -> utterance -> vector for encoderID.
func (uc *implUseCase) loadPersisted(ctx context.Context, encoderID string) (map[string]map[string][]float32, error) {
	names, err := uc.repo.ListRoutes(ctx, encoderID)
	if err != nil {
		return nil, fmt.Errorf("list persisted routes: %w", err)
	}

	persisted := make(map[string]map[string][]float32, len(names))
	for _, name := range names {
		embs, err := uc.repo.ListEmbeddings(ctx, encoderID, name)
		if err != nil {
			return nil, fmt.Errorf("list persisted embeddings for %q: %w", name, err)
		}
		utts := make(map[string][]float32, len(embs))
		for _, e := range embs {
			utts[e.Utterance] = e.Vector
		}
		persisted[name] = utts
	}
	return persisted, nil
}

// staleUtterances lists persisted utterances absent from routes, by route.
func staleUtterances(persisted map[string]map[string][]float32, routes []model.Route) map[string][]string {
	wanted := make(map[string]map[string]bool, len(routes))
	for _, r := range routes {
		set := make(map[string]bool, len(r.Utterances))
		for _, u := range r.Utterances {
			set[u] = true
		}
		wanted[r.Name] = set
	}

	stale := make(map[string][]string)
	for route, utts := range persisted {
		for u := range utts {
			if !wanted[route][u] {
				stale[route] = append(stale[route], u)
			}
		}
	}
	return stale
}

// buildSnapshot assembles the new index in registry order and checks that
// every vector has the same length.
func (uc *implUseCase) buildSnapshot(
	encoderID string,
	routes []model.Route,
	persisted map[string]map[string][]float32,
	added []model.ReferenceEmbedding,
) (*snapshot, error) {
	fresh := make(map[string]map[string][]float32)
	for _, e := range added {
		if fresh[e.RouteName] == nil {
			fresh[e.RouteName] = make(map[string][]float32)
		}
		fresh[e.RouteName][e.Utterance] = e.Vector
	}

	snap := &snapshot{
		encoderID: encoderID,
		dims:      uc.enc.Dimensions(),
		routes:    routes,
		refs:      make(map[string][]reference, len(routes)),
	}

	for _, r := range routes {
		refs := make([]reference, 0, len(r.Utterances))
		for _, u := range r.Utterances {
			vec, ok := fresh[r.Name][u]
			if !ok {
				vec = persisted[r.Name][u]
			}
			if snap.dims == 0 {
				snap.dims = len(vec)
			}
			if len(vec) != snap.dims {
				return nil, fmt.Errorf("%w: route %q utterance %q has %d, want %d",
					intent.ErrDimensionMismatch, r.Name, u, len(vec), snap.dims)
			}
			refs = append(refs, newReference(u, vec))
		}
		snap.refs[r.Name] = refs
		snap.size += len(refs)
	}
	return snap, nil
}

// syncFailed records err and returns it as a sync error. Without a serving
// index it escalates to a configuration error.
func (uc *implUseCase) syncFailed(ctx context.Context, err error) error {
	err = intent.Wrap(intent.ErrSync, err)
	if uc.snap.Load() == nil {
		err = intent.Wrap(intent.ErrConfiguration, err)
	}

	uc.mu.Lock()
	uc.lastSyncError = err.Error()
	uc.mu.Unlock()

	uc.metrics.ObserveSync("error", 0, 0, 0)
	uc.l.Errorf(ctx, "intent.usecase.Sync: %v", err)
	return err
}
