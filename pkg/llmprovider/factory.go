package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"intent-router/config"
	"intent-router/pkg/deepseek"
	"intent-router/pkg/gemini"
	"intent-router/pkg/log"
	"intent-router/pkg/qwen"
)

// InitializeProviders creates Provider instances from config.LLMConfig.
// Returns providers sorted by priority (ascending) with disabled providers
// filtered out. Providers that fail to initialize are skipped and logged.
func InitializeProviders(ctx context.Context, l log.Logger, cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var initErrors []string
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			msg := fmt.Sprintf("provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, msg)
			l.Warnf(ctx, "llmprovider.InitializeProviders: skipping %s", msg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProvidersConfigured, strings.Join(initErrors, "; "))
	}
	return providers, nil
}

// NewFromConfig initializes providers and wraps them in a Manager.
func NewFromConfig(ctx context.Context, l log.Logger, cfg *config.LLMConfig) (*Manager, error) {
	providers, err := InitializeProviders(ctx, l, cfg)
	if err != nil {
		return nil, err
	}
	mcfg, err := ManagerConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewManager(providers, mcfg, l), nil
}

// ManagerConfig converts the string durations of config.LLMConfig.
func ManagerConfig(cfg *config.LLMConfig) (*Config, error) {
	out := &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
	}
	var err error
	if out.RetryDelay, err = parseDuration(cfg.RetryDelay); err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	if out.MaxTotalTimeout, err = parseDuration(cfg.MaxTotalTimeout); err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	return out, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	timeout, err := parseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}

	switch cfg.Name {
	case ProviderDeepSeek:
		dcfg := deepseek.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}
		if timeout > 0 {
			dcfg.HTTPClient = &http.Client{Timeout: timeout}
		}
		client, err := deepseek.New(dcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek client: %w", err)
		}
		return NewDeepSeekAdapter(client), nil

	case ProviderGemini:
		gcfg := gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, APIURL: cfg.BaseURL}
		if timeout > 0 {
			gcfg.HTTPClient = &http.Client{Timeout: timeout}
		}
		client, err := gemini.New(gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	case ProviderQwen:
		qcfg := qwen.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL}
		if timeout > 0 {
			qcfg.HTTPClient = &http.Client{Timeout: timeout}
		}
		client, err := qwen.New(qcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create qwen client: %w", err)
		}
		return NewQwenAdapter(client), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}
