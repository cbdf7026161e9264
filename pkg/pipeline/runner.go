package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lycosa9527/mindgraph/pkg/cache"
	"github.com/lycosa9527/mindgraph/pkg/config"
	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
	"github.com/lycosa9527/mindgraph/pkg/observability"
	"github.com/lycosa9527/mindgraph/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the engines, cache, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Graphs *graphmap.Engine
	Trees  *mindmap.Engine
	Logger *log.Logger

	cfg config.Config
}

// NewRunner creates a runner with the given cache and configuration.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, cfg config.Config, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Graphs: graphmap.New(cfg.Graph),
		Trees:  mindmap.New(cfg.Tree),
		Logger: logger,
		cfg:    cfg,
	}
}

// Execute runs the complete enhance → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	kind := "mind_map"
	if opts.IsGraph() {
		kind = "concept_map"
	}

	// Stage 1: Enhance
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, kind)
	if err := r.EnhanceWithCacheInfo(ctx, &opts, result); err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, kind, 0, time.Since(layoutStart), err)
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = r.nodeCount(result)
	observability.Pipeline().OnLayoutComplete(ctx, kind, result.Stats.NodeCount, result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"cached", result.CacheInfo.LayoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EnhanceWithCacheInfo computes the layout with caching and fills the
// result's enhanced spec, spec hash, and layout cache info.
func (r *Runner) EnhanceWithCacheInfo(ctx context.Context, opts *Options, result *Result) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	r.applyLogger(opts)

	if opts.IsGraph() {
		return r.enhanceGraph(ctx, opts, result)
	}
	return r.enhanceTree(ctx, opts, result)
}

func (r *Runner) enhanceGraph(ctx context.Context, opts *Options, result *Result) error {
	specData, err := json.Marshal(opts.Graph)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "serialize spec")
	}
	result.SpecHash = cache.Hash(specData)

	// Strategy and seed defaults mirror the engine so the cache key
	// matches what Enhance will actually compute.
	strategy := opts.Strategy
	if strategy == "" {
		strategy = string(graphmap.StrategyLayered)
		if len(opts.Graph.Keys) > 0 {
			strategy = string(graphmap.StrategySector)
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = r.cfg.Graph.Seed
	}
	cacheKey := cache.GraphKey(result.SpecHash, strategy, seed)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached graphmap.Enhanced
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Graph = &cached
				result.CacheInfo.LayoutHit = true
				return nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	enhanced, err := r.Graphs.Enhance(ctx, *opts.Graph, graphmap.Options{
		Strategy: graphmap.Strategy(opts.Strategy),
		Seed:     opts.Seed,
		Logger:   opts.Logger,
	})
	if err != nil {
		return err
	}
	result.Graph = enhanced

	if data, err := json.Marshal(enhanced); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return nil
}

func (r *Runner) enhanceTree(ctx context.Context, opts *Options, result *Result) error {
	specData, err := json.Marshal(opts.Tree)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "serialize spec")
	}
	result.SpecHash = cache.Hash(specData)

	complexity, err := mindmap.ParseComplexity(opts.Complexity)
	if err != nil {
		return err
	}
	cacheKey := cache.TreeKey(result.SpecHash, string(complexity))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached mindmap.Enhanced
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				result.Tree = &cached
				result.CacheInfo.LayoutHit = true
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	enhanced, err := r.Trees.Enhance(ctx, *opts.Tree, mindmap.Options{
		Complexity: complexity,
		Logger:     opts.Logger,
	})
	if err != nil {
		return err
	}
	result.Tree = enhanced

	if data, err := json.Marshal(enhanced); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(r.enhancedOf(result))
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := cache.ArtifactKey(layoutHash, format, opts.Labeled)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(result, format, opts)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := cache.ArtifactKey(layoutHash, format, opts.Labeled)
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

func (r *Runner) renderFormat(result *Result, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(r.enhancedOf(result), "", "  ")
	}

	if result.Graph != nil {
		dot := render.ToDOT(result.Graph, render.DOTOptions{Labeled: opts.Labeled})
		switch format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatSVG:
			return render.RenderSVG(dot)
		case FormatPNG:
			return render.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			return render.RenderPDF(dot)
		}
	}

	switch format {
	case FormatSVG:
		return render.RenderTreeSVG(result.Tree), nil
	case FormatPNG:
		return render.RenderTreePNG(result.Tree, opts.Scale)
	case FormatPDF:
		return render.RenderTreePDF(result.Tree)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}

// enhancedOf returns whichever enhanced spec the result carries.
func (r *Runner) enhancedOf(result *Result) any {
	if result.Graph != nil {
		return result.Graph
	}
	return result.Tree
}

func (r *Runner) nodeCount(result *Result) int {
	if result.Graph != nil {
		return len(result.Graph.Layout.Positions)
	}
	if result.Tree != nil {
		return len(result.Tree.Layout.Positions)
	}
	return 0
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
