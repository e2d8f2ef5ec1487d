package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yumosx/lazy/internal/env"
	"github.com/yumosx/lazy/internal/format"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	exitVal := m.Run()
	os.Exit(exitVal)
}

func TestConfig_LoadFromReaders(t *testing.T) {
	data1 := strings.NewReader(`{"options": {"goroutines": 8, "format": "json"}}`)
	data2 := strings.NewReader(`{"options": {"goroutines": 16}}`)
	data3 := strings.NewReader(`{"options": {}}`)

	loadedConfig, err := loadFromReaders([]io.Reader{data1, data2, data3})

	require.NoError(t, err)
	require.NotNil(t, loadedConfig)
	require.Equal(t, 16, loadedConfig.Options.Goroutines)
	require.Equal(t, format.JSON, loadedConfig.Options.Format)
}

func TestConfig_LoadFromReadersEmpty(t *testing.T) {
	cfg, err := loadFromReaders(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Nil(t, cfg.Options)
}

func TestConfig_LoadReaderInvalid(t *testing.T) {
	_, err := LoadReader(strings.NewReader(`{"options": `))
	require.Error(t, err)
}

func TestConfig_setDefaults(t *testing.T) {
	cfg := &Config{}

	cfg.setDefaults("/tmp")

	require.NotNil(t, cfg.Options)
	require.Equal(t, defaultGoroutines, cfg.Options.Goroutines)
	require.Equal(t, defaultIterations, cfg.Options.Iterations)
	require.Equal(t, format.Text, cfg.Options.Format)
	require.Equal(t, filepath.Join("/tmp", ".lazyctl"), cfg.Options.DataDirectory)
	require.Equal(t, "/tmp", cfg.WorkingDir())
	require.Equal(t, filepath.Join("/tmp", ".lazyctl", "logs", "lazyctl.log"), cfg.LogFile())
}

func TestConfig_setDefaultsRelativeDataDirectory(t *testing.T) {
	cfg := &Config{Options: &Options{DataDirectory: "data"}}
	cfg.setDefaults("/work")
	require.Equal(t, filepath.Join("/work", "data"), cfg.Options.DataDirectory)

	cfg = &Config{Options: &Options{DataDirectory: "/abs/data"}}
	cfg.setDefaults("/work")
	require.Equal(t, "/abs/data", cfg.Options.DataDirectory)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		options *Options
		wantErr string
	}{
		{
			name:    "valid",
			options: &Options{Goroutines: 1, Iterations: 1, Format: format.Text},
		},
		{
			name:    "missing options",
			wantErr: "options are missing",
		},
		{
			name:    "zero goroutines",
			options: &Options{Goroutines: 0, Iterations: 1, Format: format.Text},
			wantErr: "goroutines must be positive, got 0",
		},
		{
			name:    "negative iterations",
			options: &Options{Goroutines: 1, Iterations: -3, Format: format.JSON},
			wantErr: "iterations must be positive, got -3",
		},
		{
			name:    "unknown format",
			options: &Options{Goroutines: 1, Iterations: 1, Format: "yaml"},
			wantErr: `invalid format: "yaml"`,
		},
		{
			name:    "blank scenario",
			options: &Options{Goroutines: 1, Iterations: 1, Format: format.Text, Scenarios: []string{"force", " "}},
			wantErr: "scenario 1 has an empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Options: tt.options}
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_applyEnv(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults("/tmp")

	e := env.NewFromMap(map[string]string{
		"LAZYCTL_GOROUTINES":       "4",
		"LAZYCTL_ITERATIONS":       "10",
		"LAZYCTL_DEBUG":            "true",
		"LAZYCTL_FORMAT":           "json",
		"LAZYCTL_DISABLE_LOG_FILE": "1",
	})
	require.NoError(t, cfg.applyEnv(e))
	require.True(t, cfg.Options.DisableLogFile)
	require.Equal(t, 4, cfg.Options.Goroutines)
	require.Equal(t, 10, cfg.Options.Iterations)
	require.True(t, cfg.Options.Debug)
	require.Equal(t, format.JSON, cfg.Options.Format)

	err := cfg.applyEnv(env.NewFromMap(map[string]string{"LAZYCTL_GOROUTINES": "many"}))
	require.ErrorContains(t, err, "LAZYCTL_GOROUTINES")
}

func TestConfig_load(t *testing.T) {
	configHome := t.TempDir()
	workingDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(configHome, "lazyctl"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(configHome, "lazyctl", "lazyctl.json"),
		[]byte(`{"options": {"goroutines": 2, "iterations": 5}}`),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(workingDir, ".lazyctl.json"),
		[]byte(`{"options": {"iterations": 7}}`),
		0o644,
	))

	e := env.NewFromMap(map[string]string{
		"XDG_CONFIG_HOME":    configHome,
		"LAZYCTL_GOROUTINES": "3",
	})

	cfg, err := load(e, workingDir, true)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Options.Goroutines)
	require.Equal(t, 7, cfg.Options.Iterations)
	require.True(t, cfg.Options.Debug)
	require.Equal(t, workingDir, cfg.WorkingDir())
}

func TestConfig_loadInvalid(t *testing.T) {
	workingDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(workingDir, "lazyctl.json"),
		[]byte(`{"options": {"format": "xml"}}`),
		0o644,
	))

	e := env.NewFromMap(map[string]string{"XDG_CONFIG_HOME": t.TempDir()})
	_, err := load(e, workingDir, false)
	require.ErrorContains(t, err, "configuration validation failed")
}

func TestGlobalConfig(t *testing.T) {
	e := env.NewFromMap(map[string]string{"XDG_CONFIG_HOME": "/xdg"})
	require.Equal(t, filepath.Join("/xdg", "lazyctl", "lazyctl.json"), GlobalConfig(e))
}

func TestInitAndGet(t *testing.T) {
	t.Cleanup(func() { instance.Store(nil) })
	instance.Store(nil)

	_, err := Get()
	require.ErrorIs(t, err, ErrNotLoaded)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	workingDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(workingDir, "lazyctl.json"),
		[]byte(`{"options": {"format": "xml"}}`),
		0o644,
	))

	// A failed load leaves the singleton unset and is retried.
	_, err = Init(workingDir, false)
	require.Error(t, err)
	_, err = Get()
	require.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, os.Remove(filepath.Join(workingDir, "lazyctl.json")))

	cfg1, err := Init(workingDir, false)
	require.NoError(t, err)

	cfg2, err := Init(t.TempDir(), true)
	require.NoError(t, err)
	require.Same(t, cfg1, cfg2)

	cfg3, err := Get()
	require.NoError(t, err)
	require.Same(t, cfg1, cfg3)
}

func TestConfig_loadExpandsDataDirectory(t *testing.T) {
	workingDir := t.TempDir()
	stateDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(workingDir, "lazyctl.json"),
		[]byte(`{"options": {"data_directory": "$LAZYCTL_STATE/runs"}}`),
		0o644,
	))

	e := env.NewFromMap(map[string]string{
		"XDG_CONFIG_HOME": t.TempDir(),
		"LAZYCTL_STATE":   stateDir,
	})
	cfg, err := load(e, workingDir, false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "runs"), cfg.Options.DataDirectory)
}

func TestConfig_ValidateNormalizesFormat(t *testing.T) {
	cfg := &Config{Options: &Options{Goroutines: 1, Iterations: 1, Format: " JSON"}}
	require.NoError(t, cfg.Validate())
	require.Equal(t, format.JSON, cfg.Options.Format)
}
