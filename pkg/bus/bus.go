// Package bus is the in-process publish/subscribe channel that keeps
// independently rendered components consistent without polling.
package bus

import (
	"log/slog"
	"sync"

	"souk/pkg/core"
)

// Handler receives the detail payload of a published signal. The payload
// is shared across subscribers and must be treated as read-only.
type Handler func(detail any)

type subscription struct {
	handler Handler
	active  bool
}

type delivery struct {
	signal core.Signal
	detail any
}

// Bus delivers signals synchronously, in subscription order, at most once
// per subscriber per publish. A publish issued from inside a handler is
// queued and delivered after the current pass drains, so no signal is
// ever delivered re-entrantly.
type Bus struct {
	mu       sync.Mutex
	subs     map[core.Signal][]*subscription
	queue    []delivery
	draining bool
	logger   *slog.Logger
}

// New creates an empty bus. A nil logger disables handler-panic logging.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[core.Signal][]*subscription),
		logger: logger,
	}
}

// Subscribe registers a handler for a signal and returns its unsubscribe
// function. Unsubscribing twice is a no-op; unsubscribing during a
// delivery pass does not disturb deliveries to other subscribers.
func (b *Bus) Subscribe(signal core.Signal, h Handler) (unsubscribe func()) {
	sub := &subscription{handler: h, active: true}

	b.mu.Lock()
	b.subs[signal] = append(b.subs[signal], sub)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if !sub.active {
			return
		}
		sub.active = false
		list := b.subs[signal]
		for i, s := range list {
			if s == sub {
				b.subs[signal] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers detail to every current subscriber of signal. Nested
// publishes are queued behind the in-flight pass.
func (b *Bus) Publish(signal core.Signal, detail any) {
	b.mu.Lock()
	b.queue = append(b.queue, delivery{signal: signal, detail: detail})
	if b.draining {
		// A delivery pass further up the stack will drain the queue.
		b.mu.Unlock()
		return
	}
	b.draining = true

	for len(b.queue) > 0 {
		d := b.queue[0]
		b.queue = b.queue[1:]

		// Snapshot so that subscribers added during this pass do not
		// receive the in-flight publish.
		snapshot := make([]*subscription, len(b.subs[d.signal]))
		copy(snapshot, b.subs[d.signal])
		b.mu.Unlock()

		for _, sub := range snapshot {
			b.mu.Lock()
			alive := sub.active
			b.mu.Unlock()
			if !alive {
				continue
			}
			b.invoke(sub, d)
		}

		b.mu.Lock()
	}

	b.draining = false
	b.mu.Unlock()
}

// invoke calls a single handler, containing any panic so the remaining
// subscribers still receive the signal.
func (b *Bus) invoke(sub *subscription, d delivery) {
	defer func() {
		if r := recover(); r != nil {
			if b.logger != nil {
				b.logger.Error("event handler panic", "signal", string(d.signal), "panic", r)
			}
		}
	}()
	sub.handler(d.detail)
}
