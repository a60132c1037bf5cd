package utils

import (
	"fmt"
	"sync"
)

// Registry provides a generic, thread-safe registry of first-come owners
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewRegistry creates a new generic registry
func NewRegistry[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
	}
}

// DuplicateKeyError is returned by RegisterUnique when key is already taken
type DuplicateKeyError[K comparable, V any] struct {
	Key      K
	Existing V
}

func (e *DuplicateKeyError[K, V]) Error() string {
	return fmt.Sprintf("key %v already registered", e.Key)
}

// RegisterUnique adds an item unless the key is already present, in which
// case a *DuplicateKeyError carrying the existing value is returned
func (r *Registry[K, V]) RegisterUnique(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.items[key]; exists {
		return &DuplicateKeyError[K, V]{Key: key, Existing: existing}
	}
	r.items[key] = value
	return nil
}

// Get retrieves an item from the registry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, exists := r.items[key]
	return value, exists
}

// Clear removes all items from the registry
func (r *Registry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[K]V)
}
