package encoder

import (
	"context"
	"fmt"
	"strings"
)

// EncodeOne encodes a single text.
func EncodeOne(ctx context.Context, enc Encoder, text string) ([]float32, error) {
	vecs, err := enc.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("%w: %w: want 1, got %d", ErrEncoding, ErrCountMismatch, len(vecs))
	}
	return vecs[0], nil
}

// validateInputs rejects blank texts before any backend is called.
func validateInputs(texts []string) error {
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: input %d: %w", ErrEncoding, i, ErrEmptyText)
		}
	}
	return nil
}

// checkOutput enforces N in, N out, all the same length.
func checkOutput(n int, vecs [][]float32) error {
	if len(vecs) != n {
		return fmt.Errorf("%w: %w: want %d, got %d", ErrEncoding, ErrCountMismatch, n, len(vecs))
	}
	for i, v := range vecs {
		if len(v) == 0 || len(v) != len(vecs[0]) {
			return fmt.Errorf("%w: %w: vector %d has length %d", ErrEncoding, ErrRaggedOutput, i, len(v))
		}
	}
	return nil
}

// wrapBackend marks a backend failure as an encoding error.
func wrapBackend(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrEncoding, name, err)
}
