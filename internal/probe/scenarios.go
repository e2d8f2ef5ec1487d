package probe

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/yumosx/lazy/csync"
	"golang.org/x/sync/errgroup"
)

var scenarios = []Scenario{
	{
		Name:        "single-invocation",
		Description: "concurrent first callers run the initializer once and agree on the value",
		Run:         singleInvocation,
	},
	{
		Name:        "idempotence",
		Description: "repeated Get on an initialized holder returns the first value",
		Run:         idempotence,
	},
	{
		Name:        "introspection",
		Description: "IfPresent, MapLazy and Peek never force the holder",
		Run:         introspection,
	},
	{
		Name:        "display",
		Description: "String reports the marker and does not force the holder",
		Run:         display,
	},
	{
		Name:        "equality",
		Description: "Equal forces both holders and compares their values",
		Run:         equality,
	},
	{
		Name:        "force",
		Description: "first Get computes, later Gets reuse the value",
		Run:         force,
	},
	{
		Name:        "failure-retry",
		Description: "a failing initializer leaves the holder retryable",
		Run:         failureRetry,
	},
	{
		Name:        "panic-retry",
		Description: "a panicking initializer releases the lock and stays retryable",
		Run:         panicRetry,
	},
	{
		Name:        "nil-value",
		Description: "a nil value is distinct from no value",
		Run:         nilValue,
	},
	{
		Name:        "get-or-err",
		Description: "GetOrErr fails before forcing and returns the value after",
		Run:         getOrErr,
	},
	{
		Name:        "lazy-map",
		Description: "each LazyMap key loads once under contention",
		Run:         lazyMap,
	},
}

// forceConcurrently releases n goroutines at once on l and returns what each
// of them observed.
func forceConcurrently[T any](ctx context.Context, l *csync.Lazy[T], n int) ([]T, error) {
	results := make([]T, n)
	start := make(chan struct{})

	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			select {
			case <-start:
			case <-ctx.Done():
				return ctx.Err()
			}
			v, err := l.Get()
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	close(start)
	return results, g.Wait()
}

func singleInvocation(ctx context.Context, opts Options) error {
	var ids atomic.Int64
	for round := range opts.Iterations {
		if err := ctx.Err(); err != nil {
			return err
		}

		var calls atomic.Int32
		l := csync.NewLazy(func() int64 {
			calls.Add(1)
			return ids.Add(1)
		})

		results, err := forceConcurrently(ctx, l, opts.Goroutines)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		if n := calls.Load(); n != 1 {
			return fmt.Errorf("round %d: initializer ran %d times, want 1", round, n)
		}
		for i, v := range results {
			if v != results[0] {
				return fmt.Errorf("round %d: caller %d saw %d, caller 0 saw %d", round, i, v, results[0])
			}
		}
	}
	return nil
}

func idempotence(ctx context.Context, opts Options) error {
	var calls atomic.Int32
	l := csync.NewLazy(func() *int {
		calls.Add(1)
		v := 1
		return &v
	})

	first, err := l.Get()
	if err != nil {
		return err
	}
	for i := range opts.Iterations {
		v, err := l.Get()
		if err != nil {
			return err
		}
		if v != first {
			return fmt.Errorf("call %d returned a different value", i)
		}
	}
	if n := calls.Load(); n != 1 {
		return fmt.Errorf("initializer ran %d times, want 1", n)
	}
	return nil
}

func introspection(ctx context.Context, opts Options) error {
	var calls atomic.Int32
	l := csync.NewLazy(func() int {
		calls.Add(1)
		return 21
	})

	if l.IsInitialized() {
		return errors.New("fresh holder reports initialized")
	}
	acted := false
	l.IfPresent(func(int) { acted = true })
	if acted {
		return errors.New("IfPresent ran its action on a fresh holder")
	}
	if _, ok := csync.MapLazy(l, func(v int) int { return v * 2 }); ok {
		return errors.New("MapLazy returned a value for a fresh holder")
	}
	if _, ok := l.Peek(); ok {
		return errors.New("Peek returned a value for a fresh holder")
	}
	if l.IsInitialized() || calls.Load() != 0 {
		return errors.New("introspection forced the holder")
	}

	l.MustGet()
	if v, ok := csync.MapLazy(l, func(v int) int { return v * 2 }); !ok || v != 42 {
		return fmt.Errorf("MapLazy after Get = (%d, %t), want (42, true)", v, ok)
	}
	return nil
}

func display(ctx context.Context, opts Options) error {
	l := csync.NewLazy(func() string { return "shown" })
	if s := l.String(); s != "[Not initialized]" {
		return fmt.Errorf("String on a fresh holder = %q", s)
	}
	if l.IsInitialized() {
		return errors.New("String forced the holder")
	}
	l.MustGet()
	if s := l.String(); s != "shown" {
		return fmt.Errorf("String after Get = %q, want %q", s, "shown")
	}
	return nil
}

func equality(ctx context.Context, opts Options) error {
	h1 := csync.NewLazy(func() int { return 42 })
	h2 := csync.NewLazy(func() int { return 42 })

	eq, err := csync.Equal(h1, h2)
	if err != nil {
		return err
	}
	if !eq {
		return errors.New("holders with equal values compare unequal")
	}
	if !h1.IsInitialized() || !h2.IsInitialized() {
		return errors.New("Equal did not force both holders")
	}

	s1, err := csync.Hash(h1)
	if err != nil {
		return err
	}
	s2, err := csync.Hash(h2)
	if err != nil {
		return err
	}
	if s1 != s2 {
		return fmt.Errorf("equal holders hash differently: %x != %x", s1, s2)
	}
	return nil
}

func force(ctx context.Context, opts Options) error {
	var calls atomic.Int32
	l := csync.NewLazy(func() string {
		calls.Add(1)
		return "hello"
	})

	if l.IsInitialized() {
		return errors.New("fresh holder reports initialized")
	}
	for range 2 {
		v, err := l.Get()
		if err != nil {
			return err
		}
		if v != "hello" {
			return fmt.Errorf("Get = %q, want %q", v, "hello")
		}
		if !l.IsInitialized() {
			return errors.New("holder not initialized after Get")
		}
	}
	if n := calls.Load(); n != 1 {
		return fmt.Errorf("initializer ran %d times, want 1", n)
	}
	return nil
}

var errBoom = errors.New("boom")

func failureRetry(ctx context.Context, opts Options) error {
	var calls atomic.Int32
	l := csync.NewLazyWithError(func() (string, error) {
		if calls.Add(1) == 1 {
			return "", errBoom
		}
		return "second time lucky", nil
	})

	if _, err := l.Get(); !errors.Is(err, errBoom) {
		return fmt.Errorf("Get error = %v, want %v", err, errBoom)
	}
	if l.IsInitialized() {
		return errors.New("failed initializer left the holder initialized")
	}

	// Every concurrent retry must agree and only one of them may run it.
	results, err := forceConcurrently(ctx, l, opts.Goroutines)
	if err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	for _, v := range results {
		if v != "second time lucky" {
			return fmt.Errorf("retry returned %q", v)
		}
	}
	if n := calls.Load(); n != 2 {
		return fmt.Errorf("initializer ran %d times, want 2", n)
	}
	return nil
}

func panicRetry(ctx context.Context, opts Options) (err error) {
	var calls atomic.Int32
	l := csync.NewLazy(func() int {
		if calls.Add(1) == 1 {
			panic(errBoom)
		}
		return 7
	})

	func() {
		defer func() {
			if r := recover(); r == nil {
				err = errors.New("panic did not propagate to the caller")
			}
		}()
		l.MustGet()
	}()
	if err != nil {
		return err
	}
	if l.IsInitialized() {
		return errors.New("panicking initializer left the holder initialized")
	}

	v, err := l.Get()
	if err != nil {
		return err
	}
	if v != 7 {
		return fmt.Errorf("Get after panic = %d, want 7", v)
	}
	return nil
}

func nilValue(ctx context.Context, opts Options) error {
	l := csync.NewLazy(func() *struct{} { return nil })

	v, err := l.Get()
	if err != nil {
		return err
	}
	if v != nil {
		return errors.New("Get returned a non-nil value")
	}
	if !l.IsInitialized() {
		return errors.New("holder with a nil value reports uninitialized")
	}
	return nil
}

type missingError struct{}

func (missingError) Error() string { return "missing" }

func getOrErr(ctx context.Context, opts Options) error {
	l := csync.NewLazy(func() string { return "value" })

	var factoryCalls int
	missing := func() error {
		factoryCalls++
		return missingError{}
	}

	if _, err := l.GetOrErr(missing); !errors.As(err, new(missingError)) {
		return fmt.Errorf("GetOrErr on a fresh holder = %v, want missing", err)
	}
	if l.IsInitialized() {
		return errors.New("GetOrErr forced the holder")
	}

	l.MustGet()
	v, err := l.GetOrErr(missing)
	if err != nil {
		return err
	}
	if v != "value" {
		return fmt.Errorf("GetOrErr = %q, want %q", v, "value")
	}
	if factoryCalls != 1 {
		return fmt.Errorf("error factory ran %d times, want 1", factoryCalls)
	}
	return nil
}

func lazyMap(ctx context.Context, opts Options) error {
	const keys = 8

	var calls [keys]atomic.Int32
	m := csync.NewLazyMap(func(k int) (int, error) {
		calls[k].Add(1)
		return k * 10, nil
	})

	g, ctx := errgroup.WithContext(ctx)
	for i := range opts.Goroutines * keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			k := i % keys
			v, err := m.Get(k)
			if err != nil {
				return err
			}
			if v != k*10 {
				return fmt.Errorf("key %d = %d, want %d", k, v, k*10)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for k := range keys {
		if n := calls[k].Load(); n != 1 {
			return fmt.Errorf("key %d loaded %d times, want 1", k, n)
		}
	}
	return nil
}
