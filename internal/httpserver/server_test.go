package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"intent-router/internal/encoder"
	"intent-router/internal/httpserver"
	"intent-router/internal/intent"
	"intent-router/internal/intent/repository/memory"
	"intent-router/internal/intent/usecase"
	"intent-router/internal/middleware"
	"intent-router/internal/model"
	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/metrics"
)

func newServer(t *testing.T, ready bool) http.Handler {
	t.Helper()

	l := pkgLog.NewNop()
	m := metrics.New("test")
	router, err := usecase.New(l, intent.Config{
		Routes: []model.Route{
			{Name: "faq", Utterances: []string{"how can I track my order"}},
			{Name: "sql", Utterances: []string{"show me products under 1000"}},
		},
		Threshold: 0.3,
	}, encoder.NewHashing(0), memory.New(), m)
	if err != nil {
		t.Fatalf("usecase.New: %v", err)
	}
	if ready {
		if err := router.Init(context.Background()); err != nil {
			t.Fatalf("Init: %v", err)
		}
	}

	srv, err := httpserver.New(l, httpserver.Config{
		Port:       8080,
		Mode:       gin.TestMode,
		Middleware: middleware.New(l, middleware.Config{}, m),
		Metrics:    m,
		Router:     router,
	})
	if err != nil {
		t.Fatalf("httpserver.New: %v", err)
	}
	return srv.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSystemRoutes(t *testing.T) {
	t.Run("Ready After Init", func(t *testing.T) {
		h := newServer(t, true)
		for _, path := range []string{"/health", "/live", "/ready"} {
			if w := get(h, path); w.Code != http.StatusOK {
				t.Errorf("%s: status = %d", path, w.Code)
			}
		}
	})

	t.Run("Not Ready Before Init", func(t *testing.T) {
		h := newServer(t, false)
		if w := get(h, "/ready"); w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d", w.Code)
		}
		if w := get(h, "/live"); w.Code != http.StatusOK {
			t.Errorf("live status = %d", w.Code)
		}
	})

	t.Run("Metrics Exposed", func(t *testing.T) {
		h := newServer(t, true)
		w := get(h, "/metrics")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "test_") {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("Trace Id Echoed", func(t *testing.T) {
		h := newServer(t, true)
		if w := get(h, "/live"); w.Header().Get(middleware.HeaderRequestID) == "" {
			t.Error("missing request id header")
		}
	})

	t.Run("Intent Routes Mounted", func(t *testing.T) {
		h := newServer(t, true)
		if w := get(h, "/api/v1/intents/routes"); w.Code != http.StatusOK {
			t.Errorf("status = %d", w.Code)
		}
		if w := get(h, "/api/v1/chat/routes"); w.Code != http.StatusNotFound {
			t.Errorf("chat without usecase: status = %d", w.Code)
		}
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := httpserver.New(pkgLog.NewNop(), httpserver.Config{Port: 1, Mode: gin.TestMode}); err == nil {
		t.Error("expected error without router")
	}
}
