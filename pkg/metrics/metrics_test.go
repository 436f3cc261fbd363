package metrics_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"intent-router/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Run("Nil Metrics Is A No-op", func(t *testing.T) {
		var m *metrics.Metrics
		m.ObserveClassify("faq", time.Millisecond)
		m.ClassifyFailed("encoding")
		m.ObserveEncode("hashing:512", time.Millisecond, errors.New("boom"))
		m.ObserveSync("ok", 1, 2, 3)
		m.RateLimited()
		m.ObserveChat("faq", "answered")
		m.ObserveAnswer("faq", time.Millisecond)
		if m.Registry() != nil {
			t.Error("expected nil registry")
		}
	})

	t.Run("Records And Exposes Collectors", func(t *testing.T) {
		m := metrics.New("test")
		m.ObserveClassify("faq", 10*time.Millisecond)
		m.ObserveClassify("faq", 10*time.Millisecond)
		m.ObserveSync("ok", 3, 1, 7)
		m.ObserveEncode("hashing:512", time.Millisecond, errors.New("boom"))
		m.ObserveChat("none", "unhandled")

		n, err := testutil.GatherAndCount(m.Registry(), "test_classifications_total")
		if err != nil {
			t.Fatalf("gather: %v", err)
		}
		if n != 1 {
			t.Errorf("expected one classification series, got %d", n)
		}

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		body, _ := io.ReadAll(rec.Body)
		for _, want := range []string{
			`test_classifications_total{route="faq"} 2`,
			`test_reference_index_size 7`,
			`test_sync_embeddings_total{op="added"} 3`,
			`test_encode_errors_total{encoder="hashing:512"} 1`,
			`test_chat_replies_total{outcome="unhandled",route="none"} 1`,
		} {
			if !strings.Contains(string(body), want) {
				t.Errorf("metrics output missing %q", want)
			}
		}
	})

	t.Run("Failed Sync Does Not Touch Index Size", func(t *testing.T) {
		m := metrics.New("test")
		m.ObserveSync("ok", 2, 0, 2)
		m.ObserveSync("error", 0, 0, 0)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		body, _ := io.ReadAll(rec.Body)
		if !strings.Contains(string(body), `test_reference_index_size 2`) {
			t.Error("index size changed on failed sync")
		}
		if !strings.Contains(string(body), `test_sync_runs_total{result="error"} 1`) {
			t.Error("failed sync not counted")
		}
	})
}
