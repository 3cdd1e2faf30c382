package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/davetashner/dashkit/internal/config"
	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/dataset"
)

// loadResult is the outcome of building one configured dashboard.
type loadResult struct {
	Name      string
	Config    config.DashboardConfig
	Dashboard *dashboard.Dashboard
	Err       error
	Elapsed   time.Duration
}

// selectDashboards returns the dashboards named on the command line, or every
// enabled dashboard when none are named. Naming a disabled dashboard selects
// it anyway.
func selectDashboards(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		names := cfg.EnabledDashboards()
		if len(names) == 0 {
			return nil, exitError(ExitConfigError, "dashkit: no dashboards enabled")
		}
		return names, nil
	}

	seen := make(map[string]bool, len(args))
	names := make([]string, 0, len(args))
	for _, name := range args {
		if _, ok := cfg.Dashboards[name]; !ok {
			return nil, exitError(ExitInvalidArgs, "dashkit: unknown dashboard %q (configured: %s)",
				name, strings.Join(configuredNames(cfg), ", "))
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

func configuredNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Dashboards))
	for name := range cfg.Dashboards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tableCache loads each dataset path once, even when several dashboards
// read it concurrently. Tables are immutable, so sharing is safe.
type tableCache struct {
	group  singleflight.Group
	mu     sync.Mutex
	tables map[string]*dataset.Table
}

func newTableCache() *tableCache {
	return &tableCache{tables: make(map[string]*dataset.Table)}
}

func (c *tableCache) load(path string) (*dataset.Table, error) {
	c.mu.Lock()
	t, ok := c.tables[path]
	c.mu.Unlock()
	if ok {
		return t, nil
	}

	v, err, shared := c.group.Do(path, func() (any, error) {
		t, err := dataset.Load(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[path] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "path", path, "rows", v.(*dataset.Table).Len(), "shared", shared)
	return v.(*dataset.Table), nil
}

// loadDashboards loads datasets and builds the named dashboards
// concurrently. Every dashboard gets a result; results keep the order of
// names.
func loadDashboards(ctx context.Context, cfg *config.Config, names []string) []loadResult {
	results := make([]loadResult, len(names))
	cache := newTableCache()

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			dc := cfg.Dashboards[name]
			d, err := buildDashboard(ctx, cache, name, dc)
			results[i] = loadResult{Name: name, Config: dc, Dashboard: d, Err: err, Elapsed: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func buildDashboard(ctx context.Context, cache *tableCache, name string, dc config.DashboardConfig) (*dashboard.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kindName := dc.KindName(name)
	kind := dashboard.Get(kindName)
	if kind == nil {
		return nil, fmt.Errorf("unknown kind %q", kindName)
	}
	t, err := cache.load(dc.Dataset)
	if err != nil {
		return nil, err
	}
	return kind.Build(dashboard.Spec{
		Name:    name,
		Heading: dc.Heading,
		Theme:   dc.Theme,
		Dataset: dc.Dataset,
	}, t)
}

// loadError joins the failures in results, each prefixed with its
// dashboard name. It returns nil if every dashboard was built.
func loadError(results []loadResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("dashboard %s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

// built returns the dashboards of successful results.
func built(results []loadResult) []*dashboard.Dashboard {
	ds := make([]*dashboard.Dashboard, 0, len(results))
	for _, r := range results {
		if r.Dashboard != nil {
			ds = append(ds, r.Dashboard)
		}
	}
	return ds
}

// loadSelected is the common path of commands that need built dashboards:
// resolve config, select, load, and fail with ExitDatasetError on any
// failure.
func loadSelected(ctx context.Context, flags *config.Config, args []string) (*config.Config, []*dashboard.Dashboard, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	names, err := selectDashboards(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	results := loadDashboards(ctx, cfg, names)
	if err := loadError(results); err != nil {
		return nil, nil, exitError(ExitDatasetError, "dashkit: %v", err)
	}
	return cfg, built(results), nil
}
