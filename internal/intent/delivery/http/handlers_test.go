package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"intent-router/internal/encoder"
	"intent-router/internal/intent"
	intentHTTP "intent-router/internal/intent/delivery/http"
	"intent-router/internal/intent/repository/memory"
	"intent-router/internal/intent/usecase"
	"intent-router/internal/middleware"
	"intent-router/internal/model"
	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/response"
)

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newServer(t *testing.T, ready bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc, err := usecase.New(pkgLog.NewNop(), intent.Config{
		Routes: []model.Route{
			{Name: "faq", Utterances: []string{"How can I track my order?"}},
			{Name: "sql", Utterances: []string{"Show me books under 20 euros"}},
		},
		Threshold: intent.DefaultThreshold,
	}, encoder.NewHashing(0), memory.New(), nil)
	if err != nil {
		t.Fatalf("usecase.New: %v", err)
	}
	if ready {
		if err := uc.Init(context.Background()); err != nil {
			t.Fatalf("Init: %v", err)
		}
	}

	r := gin.New()
	mw := middleware.New(pkgLog.NewNop(), middleware.Config{}, nil)
	intentHTTP.RegisterRoutes(r.Group("/api/v1/intents"), intentHTTP.New(pkgLog.NewNop(), uc), mw)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestClassifyHandler(t *testing.T) {
	r := newServer(t, true)

	t.Run("Routes To FAQ", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/intents/classify", gin.H{"query": "How can I track my order?"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got struct {
			ChosenRoute     string              `json:"chosen_route"`
			Matched         bool                `json:"matched"`
			CandidateScores map[string]*float64 `json:"candidate_scores"`
		}
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if got.ChosenRoute != "faq" || !got.Matched || len(got.CandidateScores) != 2 {
			t.Errorf("unexpected intent %+v", got)
		}
	})

	t.Run("None Is Not An Error", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/intents/classify", gin.H{"query": "What's the weather today?"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got struct {
			ChosenRoute string `json:"chosen_route"`
			Matched     bool   `json:"matched"`
		}
		_ = json.Unmarshal(env.Data, &got)
		if got.ChosenRoute != model.RouteNone || got.Matched {
			t.Errorf("expected none, got %+v", got)
		}
	})

	t.Run("Blank Query Is 400", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/intents/classify", gin.H{"query": "  "})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		if env.ErrorCode == 0 {
			t.Error("expected non-zero error code")
		}
	})

	t.Run("Missing Body Is 400", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v1/intents/classify", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Not Ready Is 503", func(t *testing.T) {
		cold := newServer(t, false)
		w, _ := do(t, cold, http.MethodPost, "/api/v1/intents/classify", gin.H{"query": "hello"})
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503, got %d", w.Code)
		}
	})
}

func TestClassifyBatchHandler(t *testing.T) {
	r := newServer(t, true)

	w, env := do(t, r, http.MethodPost, "/api/v1/intents/classify/batch", gin.H{
		"queries": []string{"Show me books under 20 euros", "What's the weather today?"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got struct {
		Intents []struct {
			ChosenRoute string `json:"chosen_route"`
		} `json:"intents"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if len(got.Intents) != 2 || got.Intents[0].ChosenRoute != "sql" || got.Intents[1].ChosenRoute != model.RouteNone {
		t.Errorf("unexpected intents %+v", got)
	}
}

func TestRoutesHandlers(t *testing.T) {
	r := newServer(t, true)

	t.Run("List", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/api/v1/intents/routes", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got struct {
			Routes []struct {
				Name string `json:"name"`
			} `json:"routes"`
		}
		_ = json.Unmarshal(env.Data, &got)
		if len(got.Routes) != 2 || got.Routes[0].Name != "faq" {
			t.Errorf("unexpected routes %+v", got)
		}
	})

	t.Run("Update Then Classify", func(t *testing.T) {
		w, env := do(t, r, http.MethodPut, "/api/v1/intents/routes", gin.H{
			"routes": []gin.H{
				{"name": "faq", "utterances": []string{"How can I track my order?"}},
				{"name": "sql", "utterances": []string{"Show me books under 20 euros"}},
				{"name": "weather", "utterances": []string{"What's the weather today?"}},
			},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var out struct {
			Added int `json:"added"`
			Kept  int `json:"kept"`
		}
		_ = json.Unmarshal(env.Data, &out)
		if out.Added != 1 || out.Kept != 2 {
			t.Errorf("unexpected sync output %+v", out)
		}

		_, env = do(t, r, http.MethodPost, "/api/v1/intents/classify", gin.H{"query": "What's the weather today?"})
		var got struct {
			ChosenRoute string `json:"chosen_route"`
		}
		_ = json.Unmarshal(env.Data, &got)
		if got.ChosenRoute != "weather" {
			t.Errorf("expected weather, got %q", got.ChosenRoute)
		}
	})

	t.Run("Invalid Update Is 400", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPut, "/api/v1/intents/routes", gin.H{
			"routes": []gin.H{{"name": "faq", "utterances": []string{}}},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestSyncAndStatsHandlers(t *testing.T) {
	r := newServer(t, true)

	w, env := do(t, r, http.MethodPost, "/api/v1/intents/sync", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out struct {
		Added   int    `json:"added"`
		Version uint64 `json:"version"`
	}
	_ = json.Unmarshal(env.Data, &out)
	if out.Added != 0 || out.Version != 2 {
		t.Errorf("unexpected sync output %+v", out)
	}

	w, env = do(t, r, http.MethodGet, "/api/v1/intents/stats", nil)
	if w.Code != http.StatusOK || env.Message != response.MessageSuccess {
		t.Fatalf("unexpected stats response %d %q", w.Code, env.Message)
	}
	var stats struct {
		Ready      bool `json:"ready"`
		Embeddings int  `json:"embeddings"`
	}
	_ = json.Unmarshal(env.Data, &stats)
	if !stats.Ready || stats.Embeddings != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
