package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Env is a read-only view of process environment variables.
type Env interface {
	Get(key string) string
	Lookup(key string) (string, bool)
	Env() []string
}

type osEnv struct{}

// Get implements Env.
func (o *osEnv) Get(key string) string {
	return os.Getenv(key)
}

// Lookup implements Env.
func (o *osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Env implements Env.
func (o *osEnv) Env() []string {
	env := os.Environ()
	if len(env) == 0 {
		return nil
	}
	return env
}

func New() Env {
	return &osEnv{}
}

type mapEnv struct {
	m map[string]string
}

// Get implements Env.
func (m *mapEnv) Get(key string) string {
	return m.m[key]
}

// Lookup implements Env.
func (m *mapEnv) Lookup(key string) (string, bool) {
	v, ok := m.m[key]
	return v, ok
}

// Env implements Env.
func (m *mapEnv) Env() []string {
	if len(m.m) == 0 {
		return nil
	}
	env := make([]string, 0, len(m.m))
	for k, v := range m.m {
		env = append(env, k+"="+v)
	}
	return env
}

func NewFromMap(m map[string]string) Env {
	if m == nil {
		m = make(map[string]string)
	}
	return &mapEnv{m: m}
}

// Int returns the integer value of key, or fallback if it is unset or
// empty.
func Int(e Env, key string, fallback int) (int, error) {
	v, ok := e.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("invalid integer in %s: %w", key, err)
	}
	return n, nil
}

// Bool returns the boolean value of key, or fallback if it is unset or
// empty.
func Bool(e Env, key string, fallback bool) (bool, error) {
	v, ok := e.Lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("invalid boolean in %s: %w", key, err)
	}
	return b, nil
}
