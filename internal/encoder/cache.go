package encoder

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultQueryCacheSize = 1024
	DefaultQueryCacheTTL  = 10 * time.Minute

	// sharedEncodeTimeout bounds a collapsed backend call, which outlives
	// the cancellation of any single caller.
	sharedEncodeTimeout = 30 * time.Second
)

// Cached memoizes single-text encodes in an expiring LRU and collapses
// concurrent requests for the same text into one backend call. Multi-text
// calls bypass the cache. The collapsed call runs detached from the callers'
// cancellation; each caller stops waiting when its own context is done.
type Cached struct {
	next  Encoder
	cache *expirable.LRU[string, []float32]
	group singleflight.Group
}

var _ Encoder = (*Cached)(nil)

func NewCached(next Encoder, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = DefaultQueryCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultQueryCacheTTL
	}
	return &Cached{
		next:  next,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

func (c *Cached) Identity() string { return c.next.Identity() }

func (c *Cached) Dimensions() int { return c.next.Dimensions() }

func (c *Cached) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return c.next.Encode(ctx, texts)
	}

	text := texts[0]
	if vec, ok := c.cache.Get(text); ok {
		return [][]float32{vec}, nil
	}

	ch := c.group.DoChan(text, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedEncodeTimeout)
		defer cancel()

		vecs, err := c.next.Encode(sctx, []string{text})
		if err != nil {
			return nil, err
		}
		if err := checkOutput(1, vecs); err != nil {
			return nil, err
		}
		c.cache.Add(text, vecs[0])
		return vecs[0], nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return [][]float32{res.Val.([]float32)}, nil
	}
}

// Len reports the number of cached texts.
func (c *Cached) Len() int {
	return c.cache.Len()
}
