package encoder

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultBatchSize   = 64
	defaultParallelism = 4
)

// Batched splits large inputs into chunks of at most size texts and encodes
// the chunks concurrently. Output order matches input order.
type Batched struct {
	next        Encoder
	size        int
	parallelism int
}

var _ Encoder = (*Batched)(nil)

func NewBatched(next Encoder, size int) *Batched {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &Batched{next: next, size: size, parallelism: defaultParallelism}
}

func (b *Batched) Identity() string { return b.next.Identity() }

func (b *Batched) Dimensions() int { return b.next.Dimensions() }

func (b *Batched) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) <= b.size {
		return b.next.Encode(ctx, texts)
	}

	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)

	for start := 0; start < len(texts); start += b.size {
		end := min(start+b.size, len(texts))
		g.Go(func() error {
			vecs, err := b.next.Encode(gctx, texts[start:end])
			if err != nil {
				return err
			}
			if err := checkOutput(end-start, vecs); err != nil {
				return err
			}
			copy(out[start:end], vecs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkOutput(len(texts), out); err != nil {
		return nil, err
	}
	return out, nil
}
