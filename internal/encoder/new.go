package encoder

import (
	"context"
	"fmt"
	"strings"

	"intent-router/pkg/ollama"
	"intent-router/pkg/voyage"
)

// Providers
const (
	ProviderHashing = "hashing"
	ProviderVoyage  = "voyage"
	ProviderOllama  = "ollama"
	ProviderGenAI   = "genai"
)

// Config selects and configures an encoder backend.
type Config struct {
	Provider   string
	Model      string
	Dimensions int
	BatchSize  int
	APIKey     string
	BaseURL    string
}

// New builds the configured backend wrapped in Batched. An empty provider
// selects the hashing encoder.
func New(ctx context.Context, cfg Config) (Encoder, error) {
	var (
		base Encoder
		size = cfg.BatchSize
	)

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderHashing:
		base = NewHashing(cfg.Dimensions)
	case ProviderVoyage:
		client, err := voyage.New(cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingAPIKey, err)
		}
		client.WithModel(cfg.Model).WithBaseURL(cfg.BaseURL)
		base = NewVoyage(client, cfg.Dimensions)
		if size <= 0 || size > voyage.MaxBatchSize {
			size = voyage.MaxBatchSize
		}
	case ProviderOllama:
		base = NewOllama(ollama.New(cfg.BaseURL, cfg.Model), cfg.Dimensions)
	case ProviderGenAI:
		g, err := NewGenAI(ctx, cfg.APIKey, cfg.Model, cfg.Dimensions)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	return NewBatched(base, size), nil
}
