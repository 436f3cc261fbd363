package usecase_test

import (
	"context"
	"errors"
	"sync"

	"intent-router/internal/encoder"
	"intent-router/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

var errModelDown = errors.New("model unavailable")

// countingEncoder wraps the hashing encoder and records how many texts it
// was asked to encode. Setting fail makes every call error.
type countingEncoder struct {
	inner *encoder.Hashing

	mu    sync.Mutex
	texts int
	calls int
	fail  bool
	gate  chan struct{} // when set, Encode blocks until it is closed or ctx ends
}

func newCountingEncoder() *countingEncoder {
	return &countingEncoder{inner: encoder.NewHashing(0)}
}

func (c *countingEncoder) Identity() string { return c.inner.Identity() }
func (c *countingEncoder) Dimensions() int  { return c.inner.Dimensions() }

func (c *countingEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	c.calls++
	c.texts += len(texts)
	fail, gate := c.fail, c.gate
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, errModelDown
	}
	return c.inner.Encode(ctx, texts)
}

func (c *countingEncoder) setFail(fail bool) {
	c.mu.Lock()
	c.fail = fail
	c.mu.Unlock()
}

func (c *countingEncoder) counts() (calls, texts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls, c.texts
}

func (c *countingEncoder) reset() {
	c.mu.Lock()
	c.calls, c.texts = 0, 0
	c.mu.Unlock()
}

func scenarioRoutes() []model.Route {
	return []model.Route{
		{Name: "faq", Utterances: []string{"How can I track my order?"}},
		{Name: "sql", Utterances: []string{"Show me books under 20 euros"}},
	}
}

func storeRoutes() []model.Route {
	return []model.Route{
		{Name: "faq", Utterances: []string{
			"What is the return policy of the products?",
			"Do I get discount with the HDFC credit card?",
			"How can I track my order?",
			"What payment methods are accepted?",
			"How long does it take to process a refund?",
		}},
		{Name: "sql", Utterances: []string{
			"Are there any books on sale?",
			"What is the price of Then She Was Gone: A Novel?",
			"Show me products under 1000",
			"Which items are discounted?",
		}},
	}
}
