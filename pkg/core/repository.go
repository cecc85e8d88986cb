package core

import "context"

// Backend defines the contract for the raw key/value document storage.
// Adhering to this interface keeps the collections independent of the
// underlying persistence (memory, filesystem, SQLite).
type Backend interface {
	// Read returns the raw bytes stored under key. A missing key is
	// reported via ok=false, never as an error.
	Read(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Write persists data under key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// Keys returns all keys currently present.
	Keys(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Watchable is an optional backend capability: observing mutations made
// by other processes on the same profile. It is the analog of the
// browser's cross-tab storage event; in-process writers do not echo here.
type Watchable interface {
	// Watch emits a ChangeEvent for every external mutation whose key
	// matches the doublestar pattern.
	Watch(ctx context.Context, pattern string) (<-chan ChangeEvent, error)
}

// SessionStore holds flags scoped to the current session (process
// lifetime). It backs the once-per-session guards such as the welcome
// toast.
type SessionStore interface {
	Flag(key string) bool
	SetFlag(key string)
}

// WelcomeFlagKey is the session flag guarding the per-role welcome toast.
func WelcomeFlagKey(role UserRole) string {
	return "hasWelcomed-" + string(role)
}
