package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/yumosx/lazy/csync"
	"github.com/yumosx/lazy/internal/format"
)

const (
	appName              = "lazyctl"
	defaultDataDirectory = ".lazyctl"
	defaultGoroutines    = 64
	defaultIterations    = 1000
)

// ErrNotLoaded is returned by Get before Init has succeeded.
var ErrNotLoaded = errors.New("config not loaded, call Init first")

type Options struct {
	// Number of goroutines racing to force each holder.
	Goroutines int `json:"goroutines,omitempty" jsonschema:"description=Number of goroutines racing to force each holder,minimum=1,default=64"`
	// Number of rounds for the repeated-access scenarios.
	Iterations int `json:"iterations,omitempty" jsonschema:"description=Number of rounds for repeated-access scenarios,minimum=1,default=1000"`
	// Scenarios to run. Empty means all of them.
	Scenarios []string            `json:"scenarios,omitempty" jsonschema:"description=Scenarios to run; empty runs all of them"`
	Format    format.OutputFormat `json:"format,omitempty" jsonschema:"description=Report format,enum=text,enum=json,default=text"`
	Debug     bool                `json:"debug,omitempty" jsonschema:"description=Enable debug logging"`
	// Skip the rotated log file, e.g. on a read-only filesystem.
	DisableLogFile bool `json:"disable_log_file,omitempty" jsonschema:"description=Do not write the rotated log file,default=false"`
	// Relative to the cwd
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and run artifacts,default=.lazyctl"`
}

// Config holds the configuration for lazyctl.
type Config struct {
	Options *Options `json:"options,omitempty"`

	// Internal
	workingDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// LogFile is where the rotated JSON log is written.
func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName))
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.Goroutines == 0 {
		c.Options.Goroutines = defaultGoroutines
	}
	if c.Options.Iterations == 0 {
		c.Options.Iterations = defaultIterations
	}
	if c.Options.Format == "" {
		c.Options.Format = format.Text
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	} else if !filepath.IsAbs(c.Options.DataDirectory) {
		c.Options.DataDirectory = filepath.Join(workingDir, c.Options.DataDirectory)
	}
}

// Validate checks the loaded options.
func (c *Config) Validate() error {
	var errs []error
	if c.Options == nil {
		return errors.New("options are missing")
	}
	if c.Options.Goroutines < 1 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", c.Options.Goroutines))
	}
	if c.Options.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be positive, got %d", c.Options.Iterations))
	}
	if f, err := format.Parse(c.Options.Format.String()); err != nil {
		errs = append(errs, err)
	} else {
		c.Options.Format = f
	}
	for i, s := range c.Options.Scenarios {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Errorf("scenario %d has an empty name", i))
		}
	}
	return errors.Join(errs...)
}

var instance atomic.Pointer[csync.Lazy[*Config]]

// Init loads the configuration once for the whole process. Later calls
// return the same instance regardless of their arguments; if loading
// failed, the next call tries again.
func Init(workingDir string, debug bool) (*Config, error) {
	instance.CompareAndSwap(nil, csync.NewLazyWithError(func() (*Config, error) {
		return Load(workingDir, debug)
	}))
	return instance.Load().Get()
}

// Get returns the configuration loaded by Init. It never loads anything
// itself.
func Get() (*Config, error) {
	l := instance.Load()
	if l == nil {
		return nil, ErrNotLoaded
	}
	return l.GetOrErr(func() error { return ErrNotLoaded })
}
