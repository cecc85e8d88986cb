// Package notify implements the persistent notification list, the
// ephemeral toast scheduler and the role-based notification schedules.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/google/uuid"

	"souk/pkg/bus"
	"souk/pkg/core"
)

// Engine owns the notification list and its unread counter. The list is
// newest-first and the only state transition a notification undergoes
// is unread to read.
type Engine struct {
	bus    *bus.Bus
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu     sync.Mutex
	items  []*core.Notification
	unread int
}

// EngineConfig configures an Engine. Bus is required for the
// notifications-updated signal; Now and NewID default to time.Now and
// uuid.
type EngineConfig struct {
	Bus    *bus.Bus
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// NewEngine creates an empty notification engine.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Engine{
		bus:    cfg.Bus,
		logger: cfg.Logger,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}
}

// publishUnread must be called outside e.mu: bus handlers may call back
// into the engine.
func (e *Engine) publishUnread(count int) {
	if e.bus != nil {
		e.bus.Publish(core.SignalNotificationsUpdated, core.NotificationsDetail{UnreadCount: count})
	}
}

// Add prepends a notification, assigning its id and timestamp. New
// notifications always start unread.
func (e *Engine) Add(n core.Notification) core.Notification {
	e.mu.Lock()
	n.ID = e.newID()
	n.Timestamp = e.now()
	n.Read = false
	if n.Priority == "" {
		n.Priority = core.PriorityMedium
	}
	stored := n
	e.items = append([]*core.Notification{&stored}, e.items...)
	e.unread++
	count := e.unread
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Debug("notification added", "id", n.ID, "type", n.Type, "unread", count)
	}
	e.publishUnread(count)
	return stored
}

// MarkAsRead flips one notification to read. Marking an already-read or
// absent notification is a no-op and publishes nothing.
func (e *Engine) MarkAsRead(id string) bool {
	e.mu.Lock()
	var changed bool
	for _, n := range e.items {
		if n.ID == id && !n.Read {
			n.Read = true
			changed = true
			break
		}
	}
	if !changed {
		e.mu.Unlock()
		return false
	}
	if e.unread > 0 {
		e.unread--
	}
	count := e.unread
	e.mu.Unlock()

	e.publishUnread(count)
	return true
}

// MarkAllAsRead flips every notification to read.
func (e *Engine) MarkAllAsRead() {
	e.mu.Lock()
	changed := e.unread != 0
	for _, n := range e.items {
		n.Read = true
	}
	e.unread = 0
	e.mu.Unlock()

	if changed {
		e.publishUnread(0)
	}
}

// Delete removes a notification. Deleting an unread one decrements the
// counter; deleting a read one does not. Absent ids are a no-op.
func (e *Engine) Delete(id string) bool {
	e.mu.Lock()
	idx := -1
	for i, n := range e.items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		e.mu.Unlock()
		return false
	}

	wasUnread := !e.items[idx].Read
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	if wasUnread && e.unread > 0 {
		e.unread--
	}
	count := e.unread
	e.mu.Unlock()

	if wasUnread {
		e.publishUnread(count)
	}
	return true
}

// List returns the notifications newest-first.
func (e *Engine) List() []core.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.Notification, len(e.items))
	for i, n := range e.items {
		out[i] = *n
	}
	return out
}

// Prune drops read notifications with a timestamp before cutoff and
// returns how many were removed. Unread notifications are never pruned,
// so the unread counter is unaffected.
func (e *Engine) Prune(cutoff time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	removed := 0
	for _, n := range e.items {
		if n.Read && n.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	e.items = kept
	return removed
}

// Unread returns the current unread count.
func (e *Engine) Unread() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unread
}

// EngineState exposes internal state for observability.
type EngineState struct {
	Notifications int `json:"notifications"`
	Unread        int `json:"unread"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EngineState{Notifications: len(e.items), Unread: e.unread}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "notification-engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
