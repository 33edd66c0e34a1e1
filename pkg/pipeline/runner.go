package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowband/flowband/pkg/fetch"
	"github.com/flowband/flowband/pkg/flow"
)

// Runner encapsulates pipeline execution. It is stateless except for
// the fetcher and logger; it never stores pipeline results or caches
// computed layouts. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Fetcher *fetch.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given fetcher and logger.
// If fetcher is nil, an uncached default fetcher is used.
func NewRunner(f *fetch.Fetcher, logger *log.Logger) *Runner {
	if f == nil {
		f = fetch.New()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: f,
		Logger:  logger,
	}
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	recs, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RecordCount = len(recs)
	result.Stats.LeftCount = len(recs.Labels(flow.SideLeft))
	result.Stats.RightCount = len(recs.Labels(flow.SideRight))

	r.Logger.Info("loaded records",
		"records", result.Stats.RecordCount,
		"left", result.Stats.LeftCount,
		"right", result.Stats.RightCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := r.ComputeLayout(ctx, recs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	for _, w := range l.Warnings {
		r.Logger.Warn("layout", "warning", w)
	}
	r.Logger.Info("computed layout",
		"bands", len(l.Bands),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
