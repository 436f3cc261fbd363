package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"intent-router/internal/middleware"
	pkgLog "intent-router/pkg/log"
)

func newEngine(mw middleware.Middleware, h ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", append(h, func(c *gin.Context) {
		c.String(http.StatusOK, pkgLog.TraceID(c.Request.Context()))
	})...)
	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("Rejects Over Budget", func(t *testing.T) {
		mw := middleware.New(pkgLog.NewNop(), middleware.Config{RateLimitPerMin: 10}, nil)
		r := newEngine(mw, mw.RateLimit())

		codes := make([]int, 0, 3)
		for range 3 {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			r.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		// burst is 10/10 = 1
		if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
			t.Errorf("unexpected status sequence %v", codes)
		}
	})

	t.Run("Clients Have Separate Budgets", func(t *testing.T) {
		mw := middleware.New(pkgLog.NewNop(), middleware.Config{RateLimitPerMin: 10}, nil)
		r := newEngine(mw, mw.RateLimit())
		for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			req.RemoteAddr = addr
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("%s: expected 200, got %d", addr, w.Code)
			}
		}
	})

	t.Run("Disabled When Zero", func(t *testing.T) {
		mw := middleware.New(pkgLog.NewNop(), middleware.Config{}, nil)
		r := newEngine(mw, mw.RateLimit())
		for range 5 {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		}
	})
}

func TestTraceID(t *testing.T) {
	mw := middleware.New(pkgLog.NewNop(), middleware.Config{}, nil)
	r := newEngine(mw, mw.TraceID())

	t.Run("Propagates Caller ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")
		r.ServeHTTP(w, req)
		if w.Body.String() != "abc-123" || w.Header().Get(middleware.HeaderRequestID) != "abc-123" {
			t.Errorf("trace id not propagated: body=%q header=%q", w.Body.String(), w.Header().Get(middleware.HeaderRequestID))
		}
	})

	t.Run("Generates When Missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		if w.Body.String() == "" {
			t.Error("expected a generated trace id")
		}
	})
}

func TestWebhookSecret(t *testing.T) {
	mw := middleware.New(pkgLog.NewNop(), middleware.Config{WebhookSecret: "s3cret"}, nil)
	r := newEngine(mw, mw.WebhookSecret())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"Missing", "", http.StatusUnauthorized},
		{"Wrong", "nope", http.StatusUnauthorized},
		{"Correct", "s3cret", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			if tc.header != "" {
				req.Header.Set(middleware.HeaderWebhookSecret, tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
