// Package csync provides concurrency-safe containers, most notably [Lazy], a
// value computed on first use and cached afterwards.
package csync

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const notInitialized = "[Not initialized]"

// Lazy is a thread-safe lazily computed value.
//
// The initializer runs at most once successfully, no matter how many
// goroutines call [Lazy.Get] concurrently. Once the value is set, Get is a
// single atomic load and never takes a lock.
//
// If the initializer fails (returns an error or panics) the holder stays
// uninitialized and the next Get runs it again. Calling Get on a holder from
// inside its own initializer deadlocks, as with [sync.Once].
//
// A Lazy must not be copied after first use.
type Lazy[T any] struct {
	// value is nil until initialization succeeds. It is the only field
	// read without holding mu.
	value atomic.Pointer[T]

	mu   sync.Mutex
	lock AutoLock
	init func() (T, error)
}

// NewLazy returns a holder that computes its value with fn on first use. It
// panics with an [ArgumentError] if fn is nil.
func NewLazy[T any](fn func() T) *Lazy[T] {
	if fn == nil {
		panic(nilArgument("fn"))
	}
	return NewLazyWithError(func() (T, error) {
		return fn(), nil
	})
}

// NewLazyWithError is like [NewLazy] for initializers that can fail. A
// failed attempt leaves the holder uninitialized.
func NewLazyWithError[T any](fn func() (T, error)) *Lazy[T] {
	if fn == nil {
		panic(nilArgument("fn"))
	}
	l := &Lazy[T]{init: fn}
	l.lock = NewAutoLock(&l.mu)
	return l
}

// Ready returns a holder that is already initialized with v.
func Ready[T any](v T) *Lazy[T] {
	l := &Lazy[T]{}
	l.lock = NewAutoLock(&l.mu)
	l.value.Store(&v)
	return l
}

// IsInitialized reports whether the value has been computed. It never blocks
// and never runs the initializer. An initialized holder may still hold a nil
// value.
func (l *Lazy[T]) IsInitialized() bool {
	return l.value.Load() != nil
}

// Get returns the value, running the initializer if it has not succeeded
// yet. Concurrent first callers block until one of them has finished; all
// of them observe the same value. An initializer error is returned as is.
func (l *Lazy[T]) Get() (T, error) {
	if v := l.value.Load(); v != nil {
		return *v, nil
	}
	return l.initialize()
}

func (l *Lazy[T]) initialize() (T, error) {
	defer l.lock.Lock()()

	// Another goroutine may have finished while we waited for the lock.
	if v := l.value.Load(); v != nil {
		return *v, nil
	}

	v, err := l.init()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value.Store(&v)
	l.init = nil
	return v, nil
}

// MustGet is like [Lazy.Get] but panics if the initializer fails.
func (l *Lazy[T]) MustGet() T {
	v, err := l.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns the value and true if it has been computed, without running
// the initializer.
func (l *Lazy[T]) Peek() (T, bool) {
	if v := l.value.Load(); v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// IfPresent calls fn with the value if it has been computed; otherwise it
// does nothing. fn must not be nil once the holder is initialized.
func (l *Lazy[T]) IfPresent(fn func(T)) {
	v, ok := l.Peek()
	if !ok {
		return
	}
	if fn == nil {
		panic(nilArgument("fn"))
	}
	fn(v)
}

// GetOrErr returns the value if it has been computed. Otherwise it returns
// the error built by errFn, without running the initializer. A nil errFn, or
// one returning nil, yields [ErrNotInitialized].
func (l *Lazy[T]) GetOrErr(errFn func() error) (T, error) {
	if v, ok := l.Peek(); ok {
		return v, nil
	}
	var zero T
	if errFn == nil {
		return zero, ErrNotInitialized
	}
	if err := errFn(); err != nil {
		return zero, err
	}
	return zero, ErrNotInitialized
}

// String returns the value formatted with [fmt.Sprint], or a fixed marker
// if it has not been computed. It never runs the initializer.
func (l *Lazy[T]) String() string {
	if v, ok := l.Peek(); ok {
		return fmt.Sprint(v)
	}
	return notInitialized
}

// MapLazy applies fn to the value of l if it has been computed and reports
// whether it did. It never runs the initializer.
func MapLazy[T, R any](l *Lazy[T], fn func(T) R) (R, bool) {
	v, ok := l.Peek()
	if !ok {
		var zero R
		return zero, false
	}
	if fn == nil {
		panic(nilArgument("fn"))
	}
	return fn(v), true
}
