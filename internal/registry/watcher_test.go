package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"intent-router/internal/model"
	"intent-router/internal/registry"
	"intent-router/pkg/log"
)

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reloaded := make(chan []model.Route, 4)
	w := registry.NewWatcher(path, func(ctx context.Context, routes []model.Route) error {
		reloaded <- routes
		return nil
	}, log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	updated := `
routes:
  - name: faq
    utterances: ["How can I track my order?", "What payment methods are accepted?"]
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case routes := <-reloaded:
		if len(routes) != 1 || len(routes[0].Utterances) != 2 {
			t.Errorf("unexpected reloaded registry: %+v", routes)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not reload")
	}
}

func TestWatcherContextCancel(t *testing.T) {
	ignore := goleak.IgnoreCurrent()

	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w := registry.NewWatcher(path, func(ctx context.Context, routes []model.Route) error {
		return nil
	}, log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()

	// The event loop and the fsnotify reader must both exit without Stop.
	goleak.VerifyNone(t, ignore)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked after context cancel")
	}

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	if err := w.Start(ctx2); err != nil {
		t.Fatalf("restart: %v", err)
	}
	w.Stop()
}
