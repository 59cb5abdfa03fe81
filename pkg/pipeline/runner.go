package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/expogrid/hallplan/pkg/cache"
	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/observability"
	"github.com/expogrid/hallplan/pkg/placement"
	"github.com/expogrid/hallplan/pkg/region"
	"github.com/expogrid/hallplan/pkg/render"
	"github.com/expogrid/hallplan/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the HTTP server use this to avoid duplicating cache logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// run results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete plan → validate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result, err := r.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, result.PlanHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo computes the layout with caching.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	g := hall.Default()
	if err := g.Validate(); err != nil {
		return nil, err
	}

	cacheKey := r.Keyer.PlanKey(opts.PlanKeyOpts(g))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, err := layout.FromJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return &Result{
					Layout:    l,
					PlanHash:  cache.Hash(data),
					Artifacts: make(map[string][]byte),
					CacheInfo: CacheInfo{PlanHit: true},
				}, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	result, err := r.plan(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	data, err := result.Layout.JSON()
	if err != nil {
		return nil, err
	}
	result.PlanHash = cache.Hash(data)

	if !opts.Refresh {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan)
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}
	return result, nil
}

// Plan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts Options) (*layout.Layout, error) {
	result, err := r.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	return result.Layout, nil
}

// plan runs the four planning stages without any caching.
func (r *Runner) plan(ctx context.Context, g hall.Geometry, opts Options) (*Result, error) {
	result := &Result{Artifacts: make(map[string][]byte)}

	corridorStart := time.Now()
	observability.Pipeline().OnCorridorsStart(ctx)
	net, err := corridor.Build(g, opts.CorridorOptions())
	result.Stats.CorridorTime = time.Since(corridorStart)
	observability.Pipeline().OnCorridorsComplete(ctx, segmentCount(net), result.Stats.CorridorTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("built corridor network",
		"segments", len(net.Segments),
		"area", net.Area(),
		"duration", result.Stats.CorridorTime)

	regionStart := time.Now()
	observability.Pipeline().OnDecomposeStart(ctx)
	arena := region.Decompose(g, net)
	result.Stats.RegionTime = time.Since(regionStart)
	observability.Pipeline().OnDecomposeComplete(ctx, len(arena.Live()), result.Stats.RegionTime)
	r.Logger.Info("decomposed free regions",
		"regions", len(arena.Live()),
		"waste", arena.WasteArea(),
		"duration", result.Stats.RegionTime)

	placeStart := time.Now()
	observability.Pipeline().OnPlaceStart(ctx, hall.TotalCount(opts.Inventory))
	res, err := placement.Place(g, net, arena, opts.PlacementOptions())
	result.Stats.PlaceTime = time.Since(placeStart)
	if err != nil {
		observability.Pipeline().OnPlaceComplete(ctx, 0, 0, result.Stats.PlaceTime, err)
		return nil, err
	}
	observability.Pipeline().OnPlaceComplete(ctx, len(res.Booths), res.UnusedCount(), result.Stats.PlaceTime, nil)
	r.Logger.Info("placed booths",
		"placed", len(res.Booths),
		"unused", res.UnusedCount(),
		"area", res.PlacedArea(),
		"duration", result.Stats.PlaceTime)

	validateStart := time.Now()
	report := validate.Check(g, net, res.Booths, opts.Inventory)
	result.Stats.ValidateTime = time.Since(validateStart)
	observability.Pipeline().OnValidateComplete(ctx, len(report.Violations), result.Stats.ValidateTime)
	if !report.Passed() {
		r.Logger.Warn("validation found violations", "count", len(report.Violations))
	}

	result.Layout = layout.Assemble(g, net, res, arena, report)
	return result, nil
}

// RenderWithCacheInfo renders the requested artifacts with per-format caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, planHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte)
	allCached := true

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := r.renderFormat(l, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, allCached, nil
}

func (r *Runner) renderFormat(l *layout.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.SVG(l, render.WithScale(opts.Scale)), nil
	case FormatDOT:
		net := corridor.NewNetwork(l.Hall, l.Corridors)
		return []byte(render.ToDOT(net)), nil
	case FormatJSON:
		return l.JSON()
	}
	return nil, ValidateFormat(format)
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

func segmentCount(n *corridor.Network) int {
	if n == nil {
		return 0
	}
	return len(n.Segments)
}
