package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"intent-router/pkg/ollama"
)

func TestEmbed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Input[0] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("model not loaded"))
			return
		}
		out := make([][]float32, len(req.Input))
		for i := range out {
			out[i] = []float32{float32(i), 1}
		}
		json.NewEncoder(w).Encode(map[string]any{"model": req.Model, "embeddings": out})
	}))
	defer ts.Close()

	c := ollama.New(ts.URL, "")
	if c.Model() != ollama.DefaultModel {
		t.Errorf("expected default model, got %s", c.Model())
	}

	t.Run("Success", func(t *testing.T) {
		vecs, err := c.Embed(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vecs) != 2 || vecs[1][0] != 1 {
			t.Errorf("unexpected vectors: %v", vecs)
		}
	})

	t.Run("Server Error", func(t *testing.T) {
		if _, err := c.Embed(context.Background(), []string{"cause_500"}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if _, err := c.Embed(context.Background(), nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}
