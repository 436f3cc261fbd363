package llmprovider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intent-router/config"
	"intent-router/pkg/llmprovider"
	"intent-router/pkg/log"
)

func TestInitializeProviders(t *testing.T) {
	ctx := context.Background()
	l := log.NewNop()

	tests := []struct {
		name      string
		cfg       *config.LLMConfig
		wantNames []string
		wantErr   bool
	}{
		{
			name: "sorted by priority",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 2, APIKey: "g", Model: "gemini-2.5-flash"},
				{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "d", Model: "deepseek-chat", Timeout: "30s"},
				{Name: "qwen", Enabled: true, Priority: 3, APIKey: "q", Model: "qwen-plus"},
			}},
			wantNames: []string{"deepseek", "gemini", "qwen"},
		},
		{
			name: "disabled filtered and broken skipped",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: false, Priority: 1, APIKey: "g", Model: "m"},
				{Name: "mistral", Enabled: true, Priority: 2, APIKey: "q", Model: "m"},
				{Name: "deepseek", Enabled: true, Priority: 3, APIKey: "d", Model: "m"},
			}},
			wantNames: []string{"deepseek"},
		},
		{
			name:    "no providers",
			cfg:     &config.LLMConfig{},
			wantErr: true,
		},
		{
			name: "all fail",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 1, Model: "m"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := llmprovider.InitializeProviders(ctx, l, tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
					t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("InitializeProviders() error = %v", err)
			}
			if len(providers) != len(tt.wantNames) {
				t.Fatalf("got %d providers, want %d", len(providers), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if providers[i].Name() != want {
					t.Errorf("providers[%d] = %s, want %s", i, providers[i].Name(), want)
				}
			}
		})
	}
}

func TestManagerConfig(t *testing.T) {
	mcfg, err := llmprovider.ManagerConfig(&config.LLMConfig{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      "1s",
		MaxTotalTimeout: "1m",
	})
	if err != nil {
		t.Fatalf("ManagerConfig() error = %v", err)
	}
	if mcfg.RetryDelay != time.Second || mcfg.MaxTotalTimeout != time.Minute || !mcfg.FallbackEnabled {
		t.Errorf("unexpected config %+v", mcfg)
	}
	if _, err := llmprovider.ManagerConfig(&config.LLMConfig{RetryDelay: "soon"}); err == nil {
		t.Error("expected error for bad duration")
	}
}

// Primary (gemini) returns 503, fallback (deepseek) answers.
func TestManager_FallbackAcrossRealAdapters(t *testing.T) {
	geminiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer geminiSrv.Close()

	var gotSystem string
	deepseekSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 && req.Messages[0].Role == "system" {
			gotSystem = req.Messages[0].Content
		}
		w.Write([]byte(`{"id":"x","choices":[{"message":{"role":"assistant","content":"fallback answer"}}],"usage":{"total_tokens":4}}`))
	}))
	defer deepseekSrv.Close()

	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "g", Model: "gemini-2.5-flash", BaseURL: geminiSrv.URL},
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "d", Model: "deepseek-chat", BaseURL: deepseekSrv.URL},
		},
		FallbackEnabled: true,
		RetryAttempts:   1,
	}

	manager, err := llmprovider.NewFromConfig(context.Background(), log.NewNop(), cfg)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}

	resp, err := manager.GenerateContent(context.Background(), llmprovider.NewTextRequest("be brief", "hi"))
	if err != nil {
		t.Fatalf("GenerateContent() error = %v", err)
	}
	if resp.ProviderName != llmprovider.ProviderDeepSeek || resp.Text() != "fallback answer" {
		t.Errorf("unexpected response %+v", resp)
	}
	if gotSystem != "be brief" {
		t.Errorf("system prompt = %q", gotSystem)
	}
}
