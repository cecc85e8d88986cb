// Package store implements the generic collection repository: a typed,
// validated read-modify-write layer over a raw key/value Backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"souk/pkg/bus"
	"souk/pkg/core"
)

// Config wires a Collection to its backend, bus and hooks. T must be a
// pointer type embedding core.Meta (e.g. *core.Product).
type Config[T core.Record] struct {
	// Key is the stable collection name in the backend.
	Key     string
	Backend core.Backend
	Bus     *bus.Bus
	// Signal, when set, is published alongside the generic
	// storage-updated signal after every successful mutation. Its detail
	// is the mutated record.
	Signal core.Signal
	Logger *slog.Logger

	// Prepare applies defaults and derived fields before validation. It
	// runs on Add and again after every Update mutator.
	Prepare func(T)
	// Check runs entity-specific validation after the struct tags pass.
	Check func(T) error

	// Migrate rewrites legacy field encodings when a collection is loaded.
	// It reports whether the record changed; a changed collection is
	// written back once, without publishing signals.
	Migrate func(T) bool

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Collection is a typed repository over one array-valued storage key.
//
// Every operation reads the collection fresh from the backend before
// acting, so interleaved calls from separate components never work from
// a stale in-memory snapshot. A per-collection mutex serializes writers
// in this process; writers in other processes are last-writer-wins by
// design.
type Collection[T core.Record] struct {
	cfg Config[T]
	mu  sync.Mutex
}

// New creates a collection repository for cfg.Key.
func New[T core.Record](cfg Config[T]) *Collection[T] {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Collection[T]{cfg: cfg}
}

// Key returns the collection's storage key.
func (c *Collection[T]) Key() string { return c.cfg.Key }

// load reads and decodes the whole collection. A missing key and corrupt
// JSON both come back as an empty collection: corruption is logged, never
// surfaced, so a damaged profile cannot crash the caller.
func (c *Collection[T]) load(ctx context.Context) []T {
	data, ok, err := c.cfg.Backend.Read(ctx, c.cfg.Key)
	if err != nil {
		if c.cfg.Logger != nil {
			c.cfg.Logger.Error("failed to read collection", "key", c.cfg.Key, "error", err)
		}
		return nil
	}
	if !ok {
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		if c.cfg.Logger != nil {
			c.cfg.Logger.Warn("corrupt collection, treating as empty", "key", c.cfg.Key, "error", err)
		}
		return nil
	}

	if c.cfg.Migrate != nil {
		changed := false
		for _, item := range items {
			if c.cfg.Migrate(item) {
				changed = true
			}
		}
		if changed {
			if err := c.persist(ctx, items); err != nil && c.cfg.Logger != nil {
				c.cfg.Logger.Warn("failed to persist migrated collection", "key", c.cfg.Key, "error", err)
			}
		}
	}
	return items
}

func (c *Collection[T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", c.cfg.Key, err)
	}
	if err := c.cfg.Backend.Write(ctx, c.cfg.Key, data); err != nil {
		return err
	}
	return nil
}

func (c *Collection[T]) notify(record T) {
	if c.cfg.Bus == nil {
		return
	}
	if c.cfg.Signal != "" {
		c.cfg.Bus.Publish(c.cfg.Signal, record)
	}
	c.cfg.Bus.Publish(core.SignalStorageUpdated, core.StorageDetail{Key: c.cfg.Key})
}

// List returns the current contents of the collection, newest last.
func (c *Collection[T]) List(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for _, item := range c.load(ctx) {
		if item.RecordID() == id {
			return item, true
		}
	}
	return zero, false
}

// Add validates item, assigns its id and creation timestamp, appends it
// and persists the whole collection before returning the canonical
// stored record. A validation failure leaves the collection untouched.
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	var zero T
	c.mu.Lock()

	if c.cfg.Prepare != nil {
		c.cfg.Prepare(item)
	}
	item.Stamp(c.cfg.NewID(), c.cfg.Now())

	if err := core.Validate(item); err != nil {
		c.mu.Unlock()
		return zero, err
	}
	if c.cfg.Check != nil {
		if err := c.cfg.Check(item); err != nil {
			c.mu.Unlock()
			return zero, err
		}
	}

	items := append(c.load(ctx), item)
	if err := c.persist(ctx, items); err != nil {
		c.mu.Unlock()
		return zero, err
	}
	c.mu.Unlock()

	// Published outside the lock: handlers may read the collection back.
	c.notify(item)
	return item, nil
}

// Update applies mutate to the record with the given id and persists the
// collection. It reports false (with no error) when the id is absent, so
// a second call with the same id is a harmless no-op. Identity fields are
// restored after the mutator runs; a validation failure aborts the write.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(T)) (bool, error) {
	c.mu.Lock()

	items := c.load(ctx)
	idx := -1
	for i, item := range items {
		if item.RecordID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return false, nil
	}

	item := items[idx]
	createdAt := item.RecordCreatedAt()
	mutate(item)
	if c.cfg.Prepare != nil {
		c.cfg.Prepare(item)
	}
	// id and createdAt are immutable no matter what the mutator did.
	item.Stamp(id, createdAt)

	if err := core.Validate(item); err != nil {
		c.mu.Unlock()
		return false, err
	}
	if c.cfg.Check != nil {
		if err := c.cfg.Check(item); err != nil {
			c.mu.Unlock()
			return false, err
		}
	}

	if err := c.persist(ctx, items); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.mu.Unlock()

	c.notify(item)
	return true, nil
}

// Delete removes the record with the given id. It reports false when the
// id is absent; deleting twice never errors.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()

	items := c.load(ctx)
	kept := items[:0]
	var removed T
	found := false
	for _, item := range items {
		if item.RecordID() == id {
			removed = item
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		c.mu.Unlock()
		return false, nil
	}

	if err := c.persist(ctx, kept); err != nil {
		c.mu.Unlock()
		return false, err
	}
	c.mu.Unlock()

	c.notify(removed)
	return true, nil
}
