package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"souk/pkg/core"
)

// debounceDelay coalesces the burst of fsnotify events a single atomic
// rename can produce into one ChangeEvent.
const debounceDelay = 50 * time.Millisecond

// Watch emits a ChangeEvent for every external mutation of a collection
// whose key matches the doublestar pattern. Our own writes are filtered
// out, so the stream only carries the cross-process changes a browser
// would see as the cross-tab storage event.
func (b *Backend) Watch(ctx context.Context, pattern string) (<-chan core.ChangeEvent, error) {
	if pattern == "" {
		pattern = "*"
	}
	events := make(chan core.ChangeEvent, 64)
	w := newWatchWorker(b, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	backend *Backend
	pattern string
	events  chan core.ChangeEvent
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc

	mu       sync.Mutex
	debounce map[string]*time.Timer
	closed   bool
}

func newWatchWorker(backend *Backend, pattern string, events chan core.ChangeEvent) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("profile-watcher"),
		backend:    backend,
		pattern:    pattern,
		events:     events,
		debounce:   make(map[string]*time.Timer),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.backend.Dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch profile directory: %w", err)
	}
	w.watcher = watcher

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.backend.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			if logger != nil {
				logger.Error("watcher panic",
					"error", fmt.Errorf("watcher panic: %v", recovered),
					"stack", string(debug.Stack()),
				)
			}
		}
	}()
	defer w.shutdown()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if logger != nil {
				logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}

// handleEvent filters, maps and debounces a raw fsnotify event.
func (w *watchWorker) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || !strings.HasSuffix(name, ".json") {
		return
	}
	key := strings.TrimSuffix(name, ".json")

	if matched, err := doublestar.Match(w.pattern, key); err != nil || !matched {
		return
	}
	if w.backend.isSelfWrite(key) {
		return
	}

	var op core.ChangeOp
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		op = core.ChangeDelete
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		op = core.ChangeModify
	default:
		return
	}

	if logger := w.backend.config.Logger; logger != nil {
		logger.Debug("external change observed", "key", key, "op", string(op))
	}
	w.sendDebounced(key, op)
}

// sendDebounced schedules delivery of one coalesced event per key.
func (w *watchWorker) sendDebounced(key string, op core.ChangeOp) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[key]; ok {
		timer.Stop()
	}
	w.debounce[key] = time.AfterFunc(debounceDelay, func() {
		w.deliver(core.ChangeEvent{
			Op:        op,
			Key:       key,
			Timestamp: time.Now().Unix(),
		})
	})
}

func (w *watchWorker) deliver(e core.ChangeEvent) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.debounce, e.Key)
	w.mu.Unlock()

	select {
	case w.events <- e:
	default:
		// Slow consumer; dropping is preferable to blocking the loop.
		if logger := w.backend.config.Logger; logger != nil {
			logger.Warn("dropping change event, consumer too slow", "key", e.Key)
		}
	}
}

// shutdown stops in-flight debounce timers before the events channel is
// closed, so no timer can fire into a closed channel.
func (w *watchWorker) shutdown() {
	w.mu.Lock()
	w.closed = true
	for key, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, key)
	}
	w.mu.Unlock()

	close(w.events)
}
