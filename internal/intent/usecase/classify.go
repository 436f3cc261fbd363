package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"intent-router/internal/encoder"
	"intent-router/internal/intent"
	"intent-router/internal/model"
)

// Classify encodes query, scores it against the current index and applies
// the decision policy. It performs no writes.
func (uc *implUseCase) Classify(ctx context.Context, query string) (model.Intent, error) {
	start := time.Now()

	q := strings.TrimSpace(query)
	if q == "" {
		return uc.classifyFailed(ctx, intent.ErrEmptyQuery)
	}

	snap := uc.snap.Load()
	if snap == nil {
		return uc.classifyFailed(ctx, intent.ErrNotReady)
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	vec, err := encoder.EncodeOne(ctx, uc.queryEnc, q)
	if err != nil {
		return uc.classifyFailed(ctx, uc.encodeError(err))
	}

	result, err := classifyVector(vec, snap, uc.threshold)
	if err != nil {
		return uc.classifyFailed(ctx, err)
	}

	elapsed := time.Since(start)
	uc.metrics.ObserveClassify(result.ChosenRoute, elapsed)
	uc.l.Debugf(ctx, "intent.usecase.Classify: route=%s score=%.4f version=%d took=%s",
		result.ChosenRoute, result.Score, snap.version, elapsed)

	return result, nil
}

// ClassifyBatch encodes all queries in one call and classifies each against
// the same index version.
func (uc *implUseCase) ClassifyBatch(ctx context.Context, queries []string) ([]model.Intent, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries", intent.ErrEmptyQuery)
	}
	if len(queries) > intent.MaxBatchQueries {
		return nil, fmt.Errorf("%w: %d > %d", intent.ErrTooManyQueries, len(queries), intent.MaxBatchQueries)
	}

	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = strings.TrimSpace(q)
		if texts[i] == "" {
			return nil, fmt.Errorf("%w: query %d", intent.ErrEmptyQuery, i)
		}
	}

	snap := uc.snap.Load()
	if snap == nil {
		return nil, intent.ErrNotReady
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	vecs, err := uc.enc.Encode(ctx, texts)
	if err != nil {
		err = uc.encodeError(err)
		uc.metrics.ClassifyFailed(intent.Category(err))
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: %d vectors for %d queries", intent.ErrEncoding, len(vecs), len(texts))
	}

	out := make([]model.Intent, len(vecs))
	for i, vec := range vecs {
		result, err := classifyVector(vec, snap, uc.threshold)
		if err != nil {
			uc.metrics.ClassifyFailed(intent.Category(err))
			return nil, err
		}
		out[i] = result
	}

	elapsed := time.Since(start)
	for _, r := range out {
		uc.metrics.ObserveClassify(r.ChosenRoute, elapsed/time.Duration(len(out)))
	}
	uc.l.Debugf(ctx, "intent.usecase.ClassifyBatch: %d queries version=%d took=%s", len(out), snap.version, elapsed)

	return out, nil
}

func classifyVector(vec []float32, snap *snapshot, threshold float64) (model.Intent, error) {
	scores, err := score(vec, snap)
	if err != nil {
		return noneIntent(), err
	}
	route, best := decide(scores, snap.routes, threshold)
	return model.Intent{
		ChosenRoute:     route,
		Score:           best,
		CandidateScores: scores,
	}, nil
}

// encodeError categorizes an encoder failure. An expired classify deadline is
// reported as ErrClassifyTimeout.
func (uc *implUseCase) encodeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", intent.ErrClassifyTimeout, err)
	}
	return intent.Wrap(intent.ErrEncoding, err)
}

// classifyFailed returns an explicit "none" intent alongside err.
func (uc *implUseCase) classifyFailed(ctx context.Context, err error) (model.Intent, error) {
	category := intent.Category(err)
	uc.metrics.ClassifyFailed(category)
	if category == "validation" {
		uc.l.Debugf(ctx, "intent.usecase.Classify: %v", err)
	} else {
		uc.l.Warnf(ctx, "intent.usecase.Classify: %v", err)
	}
	return noneIntent(), err
}

func noneIntent() model.Intent {
	return model.Intent{
		ChosenRoute:     model.RouteNone,
		Score:           math.Inf(-1),
		CandidateScores: map[string]float64{},
	}
}
