package usecase

import (
	"intent-router/internal/intent"
	"intent-router/internal/model"
)

func (uc *implUseCase) Ready() bool {
	return uc.snap.Load() != nil
}

// Index returns a copy of the serving index in registry order.
func (uc *implUseCase) Index() []model.ReferenceEmbedding {
	snap := uc.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.embeddings()
}

func (uc *implUseCase) Stats() intent.Stats {
	uc.mu.RLock()
	stats := intent.Stats{
		EncoderID:     uc.enc.Identity(),
		Dimensions:    uc.enc.Dimensions(),
		Routes:        len(uc.routes),
		Threshold:     uc.threshold,
		LastSync:      uc.lastSync,
		LastSyncError: uc.lastSyncError,
	}
	uc.mu.RUnlock()

	if snap := uc.snap.Load(); snap != nil {
		stats.Ready = true
		stats.Dimensions = snap.dims
		stats.Embeddings = snap.size
		stats.Version = snap.version
	}
	return stats
}
