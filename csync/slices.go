package csync

import (
	"iter"
)

// LazySlice is a thread-safe lazy-loaded slice.
type LazySlice[K any] struct {
	inner *Lazy[[]K]
}

// NewLazySlice creates a new slice that runs the [load] function the first
// time it is iterated.
func NewLazySlice[K any](load func() []K) *LazySlice[K] {
	return &LazySlice[K]{inner: NewLazy(load)}
}

// Loaded reports whether the slice has been loaded.
func (s *LazySlice[K]) Loaded() bool {
	return s.inner.IsInitialized()
}

// Prefetch starts loading the slice in a goroutine.
func (s *LazySlice[K]) Prefetch() {
	go s.inner.MustGet()
}

// Seq returns an iterator that yields elements from the slice, loading it
// first if needed.
func (s *LazySlice[K]) Seq() iter.Seq[K] {
	inner := s.inner.MustGet()
	return func(yield func(K) bool) {
		for _, v := range inner {
			if !yield(v) {
				return
			}
		}
	}
}
