package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/qjebbs/go-jsons"
	"github.com/yumosx/lazy/internal/env"
	"github.com/yumosx/lazy/internal/format"
	"github.com/yumosx/lazy/internal/fsext"
)

// LoadReader config via io.Reader.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, err
}

// Load loads the configuration from the default paths and the environment.
func Load(workingDir string, debug bool) (*Config, error) {
	return load(env.New(), workingDir, debug)
}

func load(e env.Env, workingDir string, debug bool) (*Config, error) {
	paths := configPaths(e, workingDir)
	cfg, err := loadFromConfigPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", paths, err)
	}

	if cfg.Options != nil {
		dir, err := fsext.Expand(e, cfg.Options.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to expand data directory %q: %w", cfg.Options.DataDirectory, err)
		}
		cfg.Options.DataDirectory = dir
	}
	cfg.setDefaults(workingDir)

	if err := cfg.applyEnv(e); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	if debug {
		cfg.Options.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	slog.Debug("Loaded config", "goroutines", cfg.Options.Goroutines, "iterations", cfg.Options.Iterations)
	return cfg, nil
}

func (c *Config) applyEnv(e env.Env) error {
	var err error
	if c.Options.Goroutines, err = env.Int(e, "LAZYCTL_GOROUTINES", c.Options.Goroutines); err != nil {
		return err
	}
	if c.Options.Iterations, err = env.Int(e, "LAZYCTL_ITERATIONS", c.Options.Iterations); err != nil {
		return err
	}
	if c.Options.Debug, err = env.Bool(e, "LAZYCTL_DEBUG", c.Options.Debug); err != nil {
		return err
	}
	if c.Options.DisableLogFile, err = env.Bool(e, "LAZYCTL_DISABLE_LOG_FILE", c.Options.DisableLogFile); err != nil {
		return err
	}
	if f := e.Get("LAZYCTL_FORMAT"); f != "" {
		c.Options.Format = format.OutputFormat(f)
	}
	return nil
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}

	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(bytes.NewReader(merged))
}
