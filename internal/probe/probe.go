// Package probe runs the csync.Lazy contract checks behind `lazyctl check`.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/yumosx/lazy/csync"
)

// Options tune how hard each scenario pushes on the holder.
type Options struct {
	// Goroutines is the number of callers racing on a fresh holder.
	Goroutines int
	// Iterations is the number of rounds for the repeated scenarios.
	Iterations int
	// Logger receives per-scenario progress. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Goroutines < 1 {
		o.Goroutines = 1
	}
	if o.Iterations < 1 {
		o.Iterations = 1
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Scenario is a single named check.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, opts Options) error
}

var scenarioNames = csync.NewLazySlice(func() []string {
	names := make([]string, 0, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
})

// Names returns the names of the built-in scenarios in run order.
func Names() []string {
	return slices.Collect(scenarioNames.Seq())
}

// Scenarios returns the built-in scenarios in run order.
func Scenarios() []Scenario {
	return slices.Clone(scenarios)
}

// Lookup resolves scenario names. No names selects all of them. A name
// may be a glob such as "*-retry". Unknown names are reported together,
// with a suggestion when one is close. A scenario is selected at most once.
func Lookup(names ...string) ([]Scenario, error) {
	if len(names) == 0 {
		return Scenarios(), nil
	}

	known := Names()
	picked := make([]bool, len(known))
	var order []int
	pick := func(i int) {
		if !picked[i] {
			picked[i] = true
			order = append(order, i)
		}
	}

	var errs []error
	for _, name := range names {
		if i := slices.Index(known, name); i >= 0 {
			pick(i)
			continue
		}
		if isPattern(name) {
			if !doublestar.ValidatePattern(name) {
				errs = append(errs, fmt.Errorf("invalid scenario pattern %q", name))
				continue
			}
			matched := false
			for i, k := range known {
				if ok, _ := doublestar.Match(name, k); ok {
					pick(i)
					matched = true
				}
			}
			if !matched {
				errs = append(errs, fmt.Errorf("no scenario matches %q", name))
			}
			continue
		}
		if matches := fuzzy.Find(name, known); len(matches) > 0 {
			errs = append(errs, fmt.Errorf("unknown scenario %q, did you mean %q?", name, matches[0].Str))
			continue
		}
		errs = append(errs, fmt.Errorf("unknown scenario %q", name))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	selected := make([]Scenario, 0, len(order))
	for _, i := range order {
		selected = append(selected, scenarios[i])
	}
	return selected, nil
}

func isPattern(name string) bool {
	return strings.ContainsAny(name, "*?[{")
}

// Run executes the named scenarios, or all of them, and collects a report.
// A failing scenario does not stop the run; a cancelled context does.
func Run(ctx context.Context, opts Options, names ...string) (*Report, error) {
	selected, err := Lookup(names...)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	report := &Report{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		Goroutines: opts.Goroutines,
		Iterations: opts.Iterations,
	}
	logger := opts.Logger.With("run", report.ID)
	logger.Info("Starting probe", "scenarios", len(selected), "goroutines", opts.Goroutines, "iterations", opts.Iterations)

	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("probe interrupted before %s: %w", s.Name, err)
		}

		start := time.Now()
		err := runScenario(ctx, s, opts)
		result := Result{
			Name:        s.Name,
			Description: s.Description,
			Passed:      err == nil,
			Duration:    time.Since(start),
		}
		if err != nil {
			result.Error = err.Error()
			logger.Error("Scenario failed", "scenario", s.Name, "error", err)
		} else {
			logger.Debug("Scenario passed", "scenario", s.Name, "duration", result.Duration)
		}
		report.Results = append(report.Results, result)
	}

	logger.Info("Probe finished", "passed", report.Passed(), "failed", report.Failed())
	return report, nil
}

// runScenario turns a panic escaping a scenario into a failure.
func runScenario(ctx context.Context, s Scenario, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Run(ctx, opts)
}
