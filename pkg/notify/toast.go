package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"souk/pkg/core"
	"souk/pkg/sched"
)

// Default toast durations by severity.
const (
	DurationInfo    = 4000 * time.Millisecond
	DurationSuccess = 5000 * time.Millisecond
	DurationUrgent  = 6000 * time.Millisecond
)

// Toasts owns the on-screen toast list. Each toast with a positive
// duration gets exactly one expiry timer, measured from its own
// creation; a zero duration means the toast stays until removed.
type Toasts struct {
	sched  *sched.Scheduler
	logger *slog.Logger
	newID  func() string

	mu      sync.Mutex
	items   []core.Toast
	cancels map[string]sched.CancelFunc
}

// ToastsConfig configures a Toasts list. Scheduler is required.
type ToastsConfig struct {
	Scheduler *sched.Scheduler
	Logger    *slog.Logger
	NewID     func() string
}

// NewToasts creates an empty toast list.
func NewToasts(cfg ToastsConfig) *Toasts {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Toasts{
		sched:   cfg.Scheduler,
		logger:  cfg.Logger,
		newID:   cfg.NewID,
		cancels: make(map[string]sched.CancelFunc),
	}
}

// Add appends a toast, assigns its id and schedules its expiry.
func (t *Toasts) Add(toast core.Toast) core.Toast {
	t.mu.Lock()
	toast.ID = t.newID()
	t.items = append(t.items, toast)
	if toast.Duration > 0 {
		id := toast.ID
		t.cancels[id] = t.sched.After(toast.Duration, func() {
			t.Remove(id)
		})
	}
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Debug("toast shown", "id", toast.ID, "type", toast.Type, "duration", toast.Duration)
	}
	return toast
}

// Remove drops a toast and cancels its pending expiry. Removing an
// absent toast is a no-op, so a timer fire racing a manual dismissal
// never double-removes.
func (t *Toasts) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cancel, ok := t.cancels[id]; ok {
		cancel()
		delete(t.cancels, id)
	}
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the toasts in insertion order.
func (t *Toasts) List() []core.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Toast, len(t.items))
	copy(out, t.items)
	return out
}

// Close cancels every pending expiry timer. The remaining toasts are
// left in place for a final render.
func (t *Toasts) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, cancel := range t.cancels {
		cancel()
		delete(t.cancels, id)
	}
}
