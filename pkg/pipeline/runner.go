package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/entitree/pkg/cache"
	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/io"
	"github.com/matzehuels/entitree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	w, _, err := r.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)
	r.Logger.Info("loaded scene",
		"entities", w.Len(),
		"duration", loadTime)

	result, err := r.RenderScene(ctx, w, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// RenderScene selects the roots named by opts.Root in an already loaded
// world and renders them. Callers that load the scene themselves, for
// example to let the user pick a root first, use it instead of Execute.
func (r *Runner) RenderScene(ctx context.Context, w *ecs.World, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	roots, err := SelectRoots(w, opts.Root)
	if err != nil {
		return nil, err
	}
	result := &Result{World: w, Roots: roots}
	result.Stats.EntityCount = w.Len()

	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, w, roots, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"roots", len(roots),
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes and spawns the scene file at path.
func (r *Runner) Load(ctx context.Context, path string) (*ecs.World, []ecs.Entity, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	w, roots, err := io.ImportFile(path)

	count := 0
	if w != nil {
		count = w.Len()
	}
	hooks.OnLoadComplete(ctx, path, count, time.Since(start), err)
	return w, roots, err
}

// RenderWithCacheInfo renders every requested format and reports which
// image formats were served from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, w *ecs.World, roots []ecs.Entity, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, CacheInfo{}, err
	}

	info := CacheInfo{RenderHit: true, Hits: make(map[string]bool)}
	artifacts := make(map[string][]byte, len(opts.Formats))
	label := rootLabel(roots)

	// DOT is shared by the dot format and every image format.
	var dot string
	dotReady := false
	getDOT := func() (string, error) {
		if dotReady {
			return dot, nil
		}
		var err error
		if dot, err = RenderDOT(w, roots, opts); err != nil {
			return "", err
		}
		dotReady = true
		return dot, nil
	}

	hooks := observability.Pipeline()
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, CacheInfo{}, err
		}

		hooks.OnRenderStart(ctx, format, label)
		start := time.Now()

		var (
			data []byte
			hit  bool
			err  error
		)
		switch format {
		case FormatText:
			data, err = RenderText(ctx, w, roots, opts)
		case FormatJSON:
			data, err = RenderJSON(w, roots)
		case FormatDOT:
			var d string
			if d, err = getDOT(); err == nil {
				data = []byte(d)
			}
		case FormatSVG, FormatPNG, FormatPDF:
			var d string
			if d, err = getDOT(); err == nil {
				data, hit, err = r.renderImageCached(ctx, d, format, opts)
			}
			info.Hits[format] = hit
			info.RenderHit = info.RenderHit && hit
		}

		hooks.OnRenderComplete(ctx, format, label, len(data), time.Since(start), err)
		if err != nil {
			return nil, CacheInfo{}, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	if len(info.Hits) == 0 {
		info.RenderHit = false
	}
	return artifacts, info, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, w *ecs.World, roots []ecs.Entity, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, w, roots, opts)
	return artifacts, err
}

// renderImageCached renders an image format, consulting the cache first.
func (r *Runner) renderImageCached(ctx context.Context, dot, format string, opts Options) ([]byte, bool, error) {
	hooks := observability.Cache()
	key := r.Keyer.ArtifactKey(cache.SourceHash(dot), opts.ArtifactKeyOpts(format))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	data, err := RenderImage(ctx, dot, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
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

func rootLabel(roots []ecs.Entity) string {
	ids := make([]string, len(roots))
	for i, e := range roots {
		ids[i] = e.String()
	}
	return strings.Join(ids, ",")
}
