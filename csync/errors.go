package csync

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every [ArgumentError].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotInitialized is returned by [Lazy.GetOrErr] when the value was not
	// computed yet and the caller did not supply an error of its own.
	ErrNotInitialized = errors.New("lazy value not initialized")
)

// ArgumentError reports a required callback or lock that was nil.
type ArgumentError struct {
	Name string
}

func nilArgument(name string) *ArgumentError {
	return &ArgumentError{Name: name}
}

func (e *ArgumentError) Error() string {
	if e.Name == "" {
		return "argument must not be nil"
	}
	return fmt.Sprintf("argument '%s' must not be nil", e.Name)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
