// Package registry implements the name to constructor lookup shared by the
// fractal kind and palette registries.
//
// Keys are normalized before every operation: surrounding white space is
// trimmed and the key is case folded, so "Burning_Ship" and "burning_ship"
// address the same entry.
package registry

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ErrNotFound is returned by Create for a key that was never registered.
var ErrNotFound = errors.New("registry: not found")

// Factory creates a fresh value for a registry entry.
type Factory[T any] func() T

// Entry describes one registered constructor.
type Entry struct {
	// Key is the normalized lookup key.
	Key string

	// Name is the human readable display name.
	Name string
}

type record[T any] struct {
	name    string
	factory Factory[T]
}

// Registry maps normalized keys to factories.
//
// Thread safety: Registry is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]record[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]record[T])}
}

// Normalize returns the canonical form of key.
func Normalize(key string) string {
	return cases.Fold().String(strings.TrimSpace(key))
}

// Register adds a factory under key. An existing entry with the same key is
// replaced. Empty keys and nil factories are ignored.
func (r *Registry[T]) Register(key, name string, factory Factory[T]) {
	key = Normalize(key)
	if key == "" || factory == nil {
		return
	}
	if name == "" {
		name = key
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = record[T]{name: name, factory: factory}
}

// Unregister removes key from the registry.
func (r *Registry[T]) Unregister(key string) {
	key = Normalize(key)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// IsRegistered reports whether key has a factory.
func (r *Registry[T]) IsRegistered(key string) bool {
	key = Normalize(key)

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Create returns a new value built by the factory registered under key.
// The factory runs outside the registry lock.
func (r *Registry[T]) Create(key string) (T, error) {
	norm := Normalize(key)

	r.mu.RLock()
	rec, ok := r.entries[norm]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec.factory(), nil
}

// List returns all entries sorted by key.
func (r *Registry[T]) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Entry, 0, len(r.entries))
	for key, rec := range r.entries {
		list = append(list, Entry{Key: key, Name: rec.name})
	}
	slices.SortFunc(list, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return list
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
