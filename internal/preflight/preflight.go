package preflight

import (
	"context"

	"portfolio/internal/catalog"
	"portfolio/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, c *catalog.Catalog) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDirectory("Source directory", cfg.Paths.SourceDir),
		CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir),
		CheckCreatableDirectory("State directory", cfg.Paths.StateDir),
	}

	if c != nil {
		results = append(results, CheckSourceCategories(c, catalog.NewWalker(cfg.Paths.SourceDir)))
	}

	if cfg.Publish.PublicBaseURL != "" {
		results = append(results, CheckPublicBaseURL(ctx, cfg.Publish.PublicBaseURL))
	}

	if cfg.History.Enabled {
		if err := cfg.EnsureDirectories(); err != nil {
			results = append(results, Result{Name: "Run history", Detail: err.Error()})
		} else {
			results = append(results, CheckHistory(cfg.HistoryPath()))
		}
	}

	return results
}

// Failed counts failed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
