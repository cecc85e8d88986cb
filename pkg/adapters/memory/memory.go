// Package memory provides the in-memory Backend and SessionStore used by
// tests and ephemeral profiles.
package memory

import (
	"context"
	"sync"

	"souk/pkg/core"
)

// Backend implements core.Backend on a plain map.
type Backend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewBackend creates an empty in-memory backend.
func NewBackend() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

// Read returns the stored bytes for key.
func (b *Backend) Read(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers can't mutate the stored value in place.
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Write stores data under key.
func (b *Backend) Write(ctx context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = stored
	return nil
}

// Remove deletes key. Absent keys are a no-op.
func (b *Backend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Keys lists all present keys.
func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Close is a no-op for the in-memory backend.
func (b *Backend) Close() error { return nil }

var _ core.Backend = (*Backend)(nil)

// Session implements core.SessionStore for the lifetime of the process.
type Session struct {
	mu    sync.Mutex
	flags map[string]bool
}

// NewSession creates an empty session store.
func NewSession() *Session {
	return &Session{flags: make(map[string]bool)}
}

// Flag reports whether key was set this session.
func (s *Session) Flag(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[key]
}

// SetFlag marks key for the rest of the session.
func (s *Session) SetFlag(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = true
}

var _ core.SessionStore = (*Session)(nil)
