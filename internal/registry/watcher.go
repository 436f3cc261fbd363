package registry

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"intent-router/internal/model"
	pkgLog "intent-router/pkg/log"
)

const defaultDebounce = 500 * time.Millisecond

// ReloadFunc receives a freshly parsed registry.
type ReloadFunc func(ctx context.Context, routes []model.Route) error

// Watcher re-reads the registry file whenever it changes on disk.
type Watcher struct {
	path     string
	onReload ReloadFunc
	l        pkgLog.Logger
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher for the registry file at path.
func NewWatcher(path string, onReload ReloadFunc, l pkgLog.Logger) *Watcher {
	return &Watcher{
		path:     path,
		onReload: onReload,
		l:        l,
		debounce: defaultDebounce,
	}
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are still observed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	w.watcher = fw
	w.done = make(chan struct{})
	go w.run(ctx, fw, w.done)

	w.l.Infof(ctx, "registry.Watcher: watching %s", w.path)
	return nil
}

// Stop stops watching and waits for the event loop to exit. Cancelling the
// context passed to Start has the same effect.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fw, done := w.watcher, w.done
	w.watcher = nil
	w.mu.Unlock()

	if fw == nil {
		return
	}
	fw.Close()
	<-done
}

// detach forgets fw if it is still the active watcher, so Stop becomes a
// no-op and Start may watch again.
func (w *Watcher) detach(fw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == fw {
		w.watcher = nil
	}
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	target := filepath.Clean(w.path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.detach(fw)
			if err := fw.Close(); err != nil {
				w.l.Warnf(ctx, "registry.Watcher: close: %v", err)
			}
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.reload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.l.Warnf(ctx, "registry.Watcher: %v", err)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	routes, err := LoadFile(w.path)
	if err != nil {
		w.l.Warnf(ctx, "registry.Watcher: keeping current registry, reload failed: %v", err)
		return
	}
	if err := w.onReload(ctx, routes); err != nil {
		w.l.Errorf(ctx, "registry.Watcher: apply reloaded registry: %v", err)
		return
	}
	w.l.Infof(ctx, "registry.Watcher: applied %d routes from %s", len(routes), w.path)
}
