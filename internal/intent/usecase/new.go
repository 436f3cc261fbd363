package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"intent-router/internal/encoder"
	"intent-router/internal/intent"
	"intent-router/internal/intent/repository"
	"intent-router/internal/model"
	"intent-router/internal/registry"
	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/metrics"
)

type implUseCase struct {
	l        pkgLog.Logger
	enc      encoder.Encoder
	queryEnc encoder.Encoder
	repo     repository.Repository
	metrics  *metrics.Metrics

	threshold float64
	timeout   time.Duration

	// syncMu serializes Sync and UpdateRegistry.
	syncMu sync.Mutex

	// mu guards the fields below. Written only while holding syncMu.
	mu            sync.RWMutex
	routes        []model.Route
	lastSync      time.Time
	lastSyncError string

	snap atomic.Pointer[snapshot]
}

var _ intent.UseCase = (*implUseCase)(nil)

// New validates the registry and builds a router that is not yet ready.
// Call Init to run the first sync. m may be nil.
func New(l pkgLog.Logger, cfg intent.Config, enc encoder.Encoder, repo repository.Repository, m *metrics.Metrics) (*implUseCase, error) {
	if len(cfg.Routes) == 0 {
		return nil, intent.ErrEmptyRegistry
	}
	routes, err := registry.Normalize(cfg.Routes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", intent.ErrConfiguration, err)
	}
	if enc == nil || repo == nil {
		return nil, fmt.Errorf("%w: encoder and repository are required", intent.ErrConfiguration)
	}

	if cfg.SyncMode == intent.SyncModeRemote {
		l.Warnf(context.Background(), "intent.usecase.New: sync mode %q is not supported, using %q", cfg.SyncMode, intent.SyncModeLocal)
	}

	queryEnc := encoder.Encoder(encoder.NewInstrumented(enc, m))
	if cfg.QueryCacheSize > 0 {
		queryEnc = encoder.NewCached(queryEnc, cfg.QueryCacheSize, cfg.QueryCacheTTL)
	}

	return &implUseCase{
		l:         l,
		enc:       encoder.NewInstrumented(enc, m),
		queryEnc:  queryEnc,
		repo:      repo,
		metrics:   m,
		threshold: cfg.Threshold,
		timeout:   cfg.ClassifyTimeout,
		routes:    routes,
	}, nil
}

// Init runs the first sync. Failure leaves the router not ready.
func (uc *implUseCase) Init(ctx context.Context) error {
	out, err := uc.Sync(ctx)
	if err != nil {
		return intent.Wrap(intent.ErrConfiguration, err)
	}
	uc.l.Infof(ctx, "intent.usecase.Init: ready with %d routes, added=%d kept=%d", len(uc.Routes()), out.Added, out.Kept)
	return nil
}
