package intent_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"intent-router/internal/intent"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Nil", nil, ""},
		{"Empty Query", intent.ErrEmptyQuery, "validation"},
		{"Wrapped Empty Query", fmt.Errorf("query 3: %w", intent.ErrEmptyQuery), "validation"},
		{"Not Ready", intent.ErrNotReady, "configuration"},
		{"Dimension Mismatch Inside Sync", intent.Wrap(intent.ErrSync, intent.ErrDimensionMismatch), "configuration"},
		{"Encoding", intent.Wrap(intent.ErrEncoding, errors.New("503")), "encoding"},
		{"Sync", intent.Wrap(intent.ErrSync, errors.New("disk full")), "sync"},
		{"Timeout", fmt.Errorf("%w: %w", intent.ErrClassifyTimeout, context.DeadlineExceeded), "timeout"},
		{"Unknown", errors.New("boom"), "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := intent.Category(tc.err); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("Keeps Cause", func(t *testing.T) {
		cause := errors.New("model unavailable")
		err := intent.Wrap(intent.ErrEncoding, cause)
		if !errors.Is(err, intent.ErrEncoding) || !errors.Is(err, cause) {
			t.Errorf("expected both category and cause, got %v", err)
		}
	})

	t.Run("Does Not Double Wrap", func(t *testing.T) {
		err := intent.Wrap(intent.ErrSync, errors.New("x"))
		if again := intent.Wrap(intent.ErrSync, err); again != err {
			t.Errorf("expected the same error back, got %v", again)
		}
	})

	t.Run("Nil Stays Nil", func(t *testing.T) {
		if intent.Wrap(intent.ErrSync, nil) != nil {
			t.Error("expected nil")
		}
	})
}
