package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Console(&buf, false)

	logger.Debug("hidden")
	logger.Info("scenario passed", "scenario", "force")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "scenario passed")
	require.Contains(t, out, "force")
}

func TestConsole_Debug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Console(&buf, true)
	require.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger.Debug("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	require.Equal(t, slog.DiscardHandler, logger.Handler())
	require.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	file := filepath.Join(t.TempDir(), "logs", "lazyctl.log")
	Setup(file, false)
	require.True(t, Initialized())

	slog.Info("run started", "run", "r1")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), `"run":"r1"`)
}

func TestRecoverPanic_NoPanic(t *testing.T) {
	t.Parallel()

	called := false
	func() {
		defer RecoverPanic("test", func() { called = true })
	}()
	require.False(t, called)
}
