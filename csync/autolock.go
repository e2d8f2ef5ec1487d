package csync

import "sync"

// AutoLock scopes a [sync.Locker] to a block of code. Lock returns the
// release function, so the usual form is:
//
//	defer l.Lock()()
type AutoLock struct {
	l sync.Locker
}

// NewAutoLock wraps l. It panics with an [ArgumentError] if l is nil.
func NewAutoLock(l sync.Locker) AutoLock {
	if l == nil {
		panic(nilArgument("locker"))
	}
	return AutoLock{l: l}
}

// Lock blocks until the lock is held and returns the function that releases
// it. Calling the release function more than once is a no-op.
func (a AutoLock) Lock() (release func()) {
	a.l.Lock()
	return sync.OnceFunc(a.l.Unlock)
}

// Do runs fn with the lock held. The lock is released on every exit path,
// including a panic in fn.
func (a AutoLock) Do(fn func() error) error {
	if fn == nil {
		return nilArgument("fn")
	}
	defer a.Lock()()
	return fn()
}
