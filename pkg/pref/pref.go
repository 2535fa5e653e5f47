// Package pref persists user preferences as string key/value pairs.
//
// The launcher stores a single preference today, the explicit theme choice
// under the key "theme". Two backends are provided:
//
//	store := pref.NewMemoryStore()
//
//	store, err := pref.OpenSQLite(ctx, "launcher.sqlite")
//	defer store.Close()
//
//	_ = store.Set(ctx, "theme", "dark")
//	v, err := store.Get(ctx, "theme") // "dark"
//
// Callers treat every store error as non-fatal: a preference that cannot be
// read is the same as one that was never written.
package pref

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("pref: not found")

// Store is a persistent key/value preference store.
type Store interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Entry is a stored preference with its last write time.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lookup reads key and reports whether a usable value exists. Errors other
// than ErrNotFound are returned so callers may log them.
func Lookup(ctx context.Context, s Store, key string) (string, bool, error) {
	if s == nil {
		return "", false, nil
	}
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
