package env

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOsEnv_Get(t *testing.T) {
	env := New()

	t.Setenv("LAZYCTL_TEST_VAR", "test_value")

	require.Equal(t, "test_value", env.Get("LAZYCTL_TEST_VAR"))
	require.Equal(t, "", env.Get("LAZYCTL_NON_EXISTENT_VAR"))

	v, ok := env.Lookup("LAZYCTL_TEST_VAR")
	require.True(t, ok)
	require.Equal(t, "test_value", v)

	_, ok = env.Lookup("LAZYCTL_NON_EXISTENT_VAR")
	require.False(t, ok)
}

func TestOsEnv_Env(t *testing.T) {
	t.Setenv("LAZYCTL_TEST_VAR", "x")

	envVars := New().Env()
	require.NotEmpty(t, envVars)
	for _, envVar := range envVars {
		require.Contains(t, envVar, "=")
	}
}

func TestMapEnv(t *testing.T) {
	t.Run("get and lookup", func(t *testing.T) {
		env := NewFromMap(map[string]string{
			"KEY1":      "value1",
			"EMPTY_KEY": "",
		})

		require.Equal(t, "value1", env.Get("KEY1"))
		require.Equal(t, "", env.Get("NON_EXISTENT"))

		v, ok := env.Lookup("EMPTY_KEY")
		require.True(t, ok)
		require.Equal(t, "", v)

		_, ok = env.Lookup("NON_EXISTENT")
		require.False(t, ok)
	})

	t.Run("env format", func(t *testing.T) {
		env := NewFromMap(map[string]string{
			"KEY_WITH_EQUALS": "value=with=equals",
			"KEY_WITH_SPACES": "value with spaces",
		})

		envVars := env.Env()
		require.Len(t, envVars, 2)

		envMap := make(map[string]string)
		for _, envVar := range envVars {
			parts := strings.SplitN(envVar, "=", 2)
			require.Len(t, parts, 2)
			envMap[parts[0]] = parts[1]
		}
		require.Equal(t, "value=with=equals", envMap["KEY_WITH_EQUALS"])
		require.Equal(t, "value with spaces", envMap["KEY_WITH_SPACES"])
	})

	t.Run("nil map", func(t *testing.T) {
		require.Nil(t, NewFromMap(nil).Env())
	})
}

func TestInt(t *testing.T) {
	env := NewFromMap(map[string]string{
		"N":     " 12 ",
		"EMPTY": "",
		"BAD":   "twelve",
	})

	n, err := Int(env, "N", 1)
	require.NoError(t, err)
	require.Equal(t, 12, n)

	n, err = Int(env, "EMPTY", 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = Int(env, "MISSING", 3)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = Int(env, "BAD", 4)
	require.ErrorContains(t, err, "invalid integer in BAD")
	require.Equal(t, 4, n)
}

func TestBool(t *testing.T) {
	env := NewFromMap(map[string]string{
		"YES": "true",
		"NO":  "0",
		"BAD": "maybe",
	})

	b, err := Bool(env, "YES", false)
	require.NoError(t, err)
	require.True(t, b)

	b, err = Bool(env, "NO", true)
	require.NoError(t, err)
	require.False(t, b)

	b, err = Bool(env, "MISSING", true)
	require.NoError(t, err)
	require.True(t, b)

	_, err = Bool(env, "BAD", false)
	require.ErrorContains(t, err, "invalid boolean in BAD")
}
