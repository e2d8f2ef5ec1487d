package csync

import (
	"encoding/json"
	"iter"
	"maps"
	"sync"
)

// LazyMap is a concurrent map whose values are computed on first lookup.
// Each key has its own [Lazy], so a slow loader only blocks callers asking
// for the same key.
type LazyMap[K comparable, V any] struct {
	inner  map[K]*Lazy[V]
	mu     sync.RWMutex
	loader func(K) (V, error)
}

// NewLazyMap creates a map that computes missing values with loader. It
// panics with an [ArgumentError] if loader is nil.
func NewLazyMap[K comparable, V any](loader func(K) (V, error)) *LazyMap[K, V] {
	if loader == nil {
		panic(nilArgument("loader"))
	}
	return &LazyMap[K, V]{
		inner:  make(map[K]*Lazy[V]),
		loader: loader,
	}
}

func (m *LazyMap[K, V]) entry(key K) *Lazy[V] {
	m.mu.RLock()
	l, ok := m.inner[key]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.inner[key]; ok {
		return l
	}
	l = NewLazyWithError(func() (V, error) {
		return m.loader(key)
	})
	m.inner[key] = l
	return l
}

// Get returns the value for key, loading it if needed. A failed load is
// retried by the next Get for the same key.
func (m *LazyMap[K, V]) Get(key K) (V, error) {
	return m.entry(key).Get()
}

// Peek returns the value for key if it has already been loaded.
func (m *LazyMap[K, V]) Peek(key K) (V, bool) {
	m.mu.RLock()
	l, ok := m.inner[key]
	m.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	return l.Peek()
}

// Forget drops key so that the next Get loads it again. Callers already
// waiting on the old entry still receive its value.
func (m *LazyMap[K, V]) Forget(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inner, key)
}

// Len returns the number of keys, loaded or not.
func (m *LazyMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inner)
}

// Seq2 returns an iter.Seq2 over the loaded key-value pairs. Keys whose
// value is still pending are skipped.
func (m *LazyMap[K, V]) Seq2() iter.Seq2[K, V] {
	m.mu.RLock()
	dst := make(map[K]*Lazy[V], len(m.inner))
	maps.Copy(dst, m.inner)
	m.mu.RUnlock()
	return func(yield func(K, V) bool) {
		for k, l := range dst {
			v, ok := l.Peek()
			if !ok {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

var _ json.Marshaler = &LazyMap[string, any]{}

// MarshalJSON implements json.Marshaler. Only loaded values are encoded.
func (m *LazyMap[K, V]) MarshalJSON() ([]byte, error) {
	loaded := make(map[K]V)
	for k, v := range m.Seq2() {
		loaded[k] = v
	}
	return json.Marshal(loaded)
}
