// Package platform assembles the marketplace data layer: it picks the
// storage backend, wires the bus, repositories and notification
// components together and bridges external profile changes onto the bus.
package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"

	"souk/pkg/adapters/fs"
	lifecycleadapter "souk/pkg/adapters/lifecycle"
	"souk/pkg/adapters/memory"
	"souk/pkg/adapters/sqlite"
	"souk/pkg/bus"
	"souk/pkg/core"
	"souk/pkg/market"
	"souk/pkg/notify"
	"souk/pkg/sched"
)

// Platform is the assembled data layer handed to embedding applications.
type Platform struct {
	Backend core.Backend
	Bus     *bus.Bus
	Session core.SessionStore

	Repos         *market.Repositories
	Notifications *notify.Engine
	Toasts        *notify.Toasts
	Schedules     *notify.Schedules
	Cleanup       *notify.Cleanup

	scheduler *sched.Scheduler
	logger    *slog.Logger
	adapter   string
	stopWatch context.CancelFunc
}

// New builds a platform over the profile at uri. The uri is
// adapter-specific: a directory for "fs", a database file for "sqlite",
// ignored for "memory".
func New(uri string, opts ...Option) (*Platform, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend, adapter, err := initBackend(uri, o)
	if err != nil {
		return nil, err
	}

	b := o.bus
	if b == nil {
		b = bus.New(o.logger)
	}
	session := o.session
	if session == nil {
		session = memory.NewSession()
	}
	scheduler := sched.New(o.clock)

	repos := market.NewRepositories(market.Deps{
		Backend: backend,
		Bus:     b,
		Logger:  o.logger,
	})
	engine := notify.NewEngine(notify.EngineConfig{Bus: b, Logger: o.logger})
	toasts := notify.NewToasts(notify.ToastsConfig{Scheduler: scheduler, Logger: o.logger})

	p := &Platform{
		Backend:       backend,
		Bus:           b,
		Session:       session,
		Repos:         repos,
		Notifications: engine,
		Toasts:        toasts,
		Schedules:     notify.NewSchedules(engine, toasts, scheduler, session, o.logger),
		Cleanup:       notify.NewCleanup(engine, 0, o.logger),
		scheduler:     scheduler,
		logger:        o.logger,
		adapter:       adapter,
	}

	if o.watch {
		if err := p.bridgeWatch(); err != nil {
			backend.Close()
			return nil, err
		}
	}
	if o.retention != "" {
		if err := p.Cleanup.Start(o.retention); err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to start retention job: %w", err)
		}
	}
	return p, nil
}

// initBackend picks the storage backend from the options.
func initBackend(uri string, o *options) (core.Backend, string, error) {
	if o.backend != nil {
		return o.backend, "custom", nil
	}

	switch o.adapter {
	case "memory":
		return memory.NewBackend(), o.adapter, nil
	case "fs":
		backend, err := fs.NewBackend(fs.Config{Dir: uri, Logger: o.logger})
		if err != nil {
			return nil, "", err
		}
		return backend, o.adapter, nil
	case "sqlite":
		backend, err := sqlite.NewBackend(uri)
		if err != nil {
			return nil, "", err
		}
		return backend, o.adapter, nil
	default:
		return nil, "", fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// bridgeWatch republishes external profile changes as storage-updated
// signals, the same way another tab's write would surface. Backends
// without watch support are silently skipped.
func (p *Platform) bridgeWatch() error {
	watchable, ok := p.Backend.(core.Watchable)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	events, err := watchable.Watch(ctx, "*")
	if err != nil {
		cancel()
		return fmt.Errorf("failed to watch profile: %w", err)
	}
	p.stopWatch = cancel

	// The source runs the channel bridge under a supervised goroutine.
	source := lifecycleadapter.NewSource(events)
	if err := source.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to start watch bridge: %w", err)
	}

	go func() {
		for e := range source.Events() {
			event, ok := e.(core.ChangeEvent)
			if !ok {
				continue
			}
			if p.logger != nil {
				p.logger.Debug("external profile change", "key", event.Key, "op", string(event.Op))
			}
			p.Bus.Publish(core.SignalStorageUpdated, core.StorageDetail{Key: event.Key})
		}
	}()
	return nil
}

// Scheduler exposes the timer service, mainly for tests driving a
// manual clock.
func (p *Platform) Scheduler() *sched.Scheduler { return p.scheduler }

// Close tears the platform down: watcher, retention job, timers, then
// the backend.
func (p *Platform) Close() error {
	if p.stopWatch != nil {
		p.stopWatch()
		p.stopWatch = nil
	}
	p.Cleanup.Stop()
	p.Toasts.Close()
	p.scheduler.Stop()
	return p.Backend.Close()
}

// PlatformState exposes internal state for observability.
type PlatformState struct {
	Adapter       string `json:"adapter"`
	PendingTimers int    `json:"pending_timers"`
	Watching      bool   `json:"watching"`
}

// State implements introspection.Introspectable.
func (p *Platform) State() any {
	return PlatformState{
		Adapter:       p.adapter,
		PendingTimers: p.scheduler.Pending(),
		Watching:      p.stopWatch != nil,
	}
}

// ComponentType implements introspection.Component.
func (p *Platform) ComponentType() string {
	return "platform"
}

var _ introspection.Introspectable = (*Platform)(nil)
var _ introspection.Component = (*Platform)(nil)
