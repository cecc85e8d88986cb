package souk

import (
	"log/slog"

	"souk/internal/platform"
	"souk/pkg/bus"
	"souk/pkg/core"
	"souk/pkg/sched"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Platform is the assembled marketplace data layer.
type Platform = platform.Platform

// Signal is a named event bus channel.
type Signal = core.Signal

// Re-exported domain entities, so embedders rarely need pkg/core.
type (
	Product       = core.Product
	Partner       = core.Partner
	MarketItem    = core.MarketItem
	ShippingOrder = core.ShippingOrder
	Exhibition    = core.Exhibition
	Notification  = core.Notification
	Toast         = core.Toast
)

// --- Configuration ---

// Option defines a functional option for configuring the platform.
type Option = platform.Option

// WithBackend injects a custom storage backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithAdapter selects the storage adapter by name: "memory", "fs" or "sqlite".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBus injects an externally owned event bus.
func WithBus(b *bus.Bus) Option {
	return platform.WithBus(b)
}

// WithClock sets the clock behind every timer.
func WithClock(c sched.Clock) Option {
	return platform.WithClock(c)
}

// WithSessionStore injects the session flag store.
func WithSessionStore(s core.SessionStore) Option {
	return platform.WithSessionStore(s)
}

// WithWatch enables or disables bridging external profile changes onto the bus.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithRetentionSchedule sets the cron expression for the notification
// retention job.
func WithRetentionSchedule(schedule string) Option {
	return platform.WithRetentionSchedule(schedule)
}

// --- Factory ---

// Open assembles a platform over the profile at path. The path is
// adapter-specific: a directory for "fs", a database file for "sqlite",
// ignored for "memory".
func Open(path string, opts ...Option) (*Platform, error) {
	return platform.New(path, opts...)
}

// FindProfile looks upwards from startDir for a profile root marker
// (souk.yaml or a .souk directory).
func FindProfile(startDir string) (string, error) {
	return platform.FindProfile(startDir)
}
