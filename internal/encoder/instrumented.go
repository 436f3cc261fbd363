package encoder

import (
	"context"
	"time"

	"intent-router/pkg/metrics"
)

// Instrumented records latency and failures of every Encode call.
type Instrumented struct {
	next    Encoder
	metrics *metrics.Metrics
}

var _ Encoder = (*Instrumented)(nil)

func NewInstrumented(next Encoder, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) Identity() string { return i.next.Identity() }

func (i *Instrumented) Dimensions() int { return i.next.Dimensions() }

func (i *Instrumented) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vecs, err := i.next.Encode(ctx, texts)
	i.metrics.ObserveEncode(i.next.Identity(), time.Since(start), err)
	return vecs, err
}
