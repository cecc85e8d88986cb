// Package fs stores each collection as a single JSON file inside a
// profile directory. Writes are atomic (temp file + rename) and external
// mutations can be observed through Watch.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"souk/pkg/core"
)

// selfWriteWindow is how long after one of our own writes an fsnotify
// event for the same key is treated as an echo rather than an external
// change.
const selfWriteWindow = time.Second

// Config holds the configuration for the filesystem backend.
type Config struct {
	// Dir is the profile directory holding one <key>.json per collection.
	Dir string
	// MustExist refuses to create Dir when it is missing.
	MustExist bool
	Logger    *slog.Logger
}

// Backend implements core.Backend and core.Watchable on a directory of
// JSON files.
type Backend struct {
	Dir    string
	config Config

	mu         sync.Mutex
	selfWrites map[string]time.Time
}

// NewBackend prepares the profile directory and returns the backend.
func NewBackend(config Config) (*Backend, error) {
	if config.MustExist {
		info, err := os.Stat(config.Dir)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile path does not exist: %s", config.Dir)
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("profile path is not a directory: %s", config.Dir)
		}
	} else {
		if err := os.MkdirAll(config.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	return &Backend{
		Dir:        config.Dir,
		config:     config,
		selfWrites: make(map[string]time.Time),
	}, nil
}

func (b *Backend) keyFile(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

// Read returns the raw bytes for key; a missing file reads as absent.
func (b *Backend) Read(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.keyFile(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return data, true, nil
}

// Write atomically replaces the file for key.
func (b *Backend) Write(ctx context.Context, key string, data []byte) error {
	b.markSelfWrite(key)
	if err := writeFileAtomic(b.keyFile(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

// Remove deletes the file for key; absent files are a no-op.
func (b *Backend) Remove(ctx context.Context, key string) error {
	b.markSelfWrite(key)
	err := os.Remove(b.keyFile(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove collection %s: %w", key, err)
	}
	return nil
}

// Keys lists the collections present in the profile.
func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.Dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

// Close is a no-op; watchers are bound to their own contexts.
func (b *Backend) Close() error { return nil }

func (b *Backend) markSelfWrite(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selfWrites[key] = time.Now()
}

// isSelfWrite reports whether a change to key is an echo of our own
// recent write rather than another process touching the profile.
func (b *Backend) isSelfWrite(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	at, ok := b.selfWrites[key]
	if !ok {
		return false
	}
	if time.Since(at) > selfWriteWindow {
		delete(b.selfWrites, key)
		return false
	}
	return true
}

var (
	_ core.Backend   = (*Backend)(nil)
	_ core.Watchable = (*Backend)(nil)
)
