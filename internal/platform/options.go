package platform

import (
	"log/slog"

	"souk/pkg/bus"
	"souk/pkg/core"
	"souk/pkg/sched"
)

// options holds the internal configuration for the platform.
type options struct {
	backend   core.Backend
	session   core.SessionStore
	bus       *bus.Bus
	clock     sched.Clock
	logger    *slog.Logger
	adapter   string
	watch     bool
	retention string
}

// Option defines a functional option for configuring the platform.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		watch:   true,
	}
}

// WithBackend injects a custom storage backend. If provided, the
// adapter selection is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithAdapter selects the storage adapter by name: "memory", "fs" or
// "sqlite". Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBus injects an externally owned event bus, so the embedding
// application can observe signals on its own bus instance.
func WithBus(b *bus.Bus) Option {
	return func(o *options) {
		o.bus = b
	}
}

// WithClock sets the clock behind every timer. Tests pass a manual
// clock to drive expiry deterministically.
func WithClock(c sched.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithSessionStore injects the session flag store backing the
// once-per-session guards.
func WithSessionStore(s core.SessionStore) Option {
	return func(o *options) {
		o.session = s
	}
}

// WithWatch enables or disables bridging external profile changes onto
// the bus. Enabled by default; only backends that support watching are
// bridged.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithRetentionSchedule sets the cron expression for the notification
// retention job (e.g. "@hourly"). Empty leaves the job stopped.
func WithRetentionSchedule(schedule string) Option {
	return func(o *options) {
		o.retention = schedule
	}
}
