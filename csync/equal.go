package csync

import (
	"fmt"
	"reflect"

	"github.com/zeebo/xxh3"
)

// Equal reports whether a and b hold equal values.
//
// Unlike most equality checks this has a side effect: both holders are
// initialized if they were not already, since two holders are equal only
// when their computed values are. A holder is always equal to itself, and
// that case does not force anything. An initializer error is returned.
//
// When T is an interface type, comparing dynamic values that are not
// comparable (a slice held in a Lazy[any], say) panics, as == does.
func Equal[T comparable](a, b *Lazy[T]) (bool, error) {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like [Equal] using eq to compare the values.
func EqualFunc[T any](a, b *Lazy[T], eq func(T, T) bool) (bool, error) {
	if a == b {
		return true, nil
	}
	if a == nil || b == nil {
		return false, nil
	}
	if eq == nil {
		panic(nilArgument("eq"))
	}
	x, err := a.Get()
	if err != nil {
		return false, err
	}
	y, err := b.Get()
	if err != nil {
		return false, err
	}
	return eq(x, y), nil
}

// EqualValue forces l and reports whether its value equals v.
func EqualValue[T comparable](l *Lazy[T], v T) (bool, error) {
	if l == nil {
		return false, nil
	}
	x, err := l.Get()
	if err != nil {
		return false, err
	}
	return x == v, nil
}

// Hash forces l and returns a hash of its value, so that holders for which
// [Equal] is true hash alike. The value is hashed through its Go-syntax
// representation. Negative zero is hashed as zero when T has a float or
// complex kind; floats nested in structs or arrays are hashed as printed, so
// a value holding -0 there may hash apart from one holding 0. A nil holder
// hashes to 0.
func Hash[T comparable](l *Lazy[T]) (uint64, error) {
	if l == nil {
		return 0, nil
	}
	v, err := l.Get()
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(fmt.Appendf(nil, "%#v", canonicalZero(v))), nil
}

// canonicalZero maps -0 to +0 in float and complex values, which compare
// equal with == but print differently.
func canonicalZero(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.Float() == 0 {
			return reflect.Zero(rv.Type()).Interface()
		}
	case reflect.Complex64, reflect.Complex128:
		re, im := real(rv.Complex()), imag(rv.Complex())
		if re == 0 {
			re = 0
		}
		if im == 0 {
			im = 0
		}
		out := reflect.New(rv.Type()).Elem()
		out.SetComplex(complex(re, im))
		return out.Interface()
	}
	return v
}
