// Package pipeline provides the load → render pipeline behind the entitree CLI.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Decode a scene file and spawn it into an [ecs.World]
//  2. Render: Produce one artifact per requested format for a set of roots
//
// Text, DOT and JSON artifacts are cheap and always rendered fresh. SVG, PNG
// and PDF go through Graphviz (and rsvg-convert), so the [Runner] caches them
// keyed by the hash of the DOT source.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "scene.json", pipeline.Options{
//	    Formats: []string{pipeline.FormatText, pipeline.FormatSVG},
//	    Color:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
//
// Run individual stages:
//
//	world, roots, err := runner.Load(ctx, "scene.toml")
//	roots, err = pipeline.SelectRoots(world, "3v0")
//	artifacts, err := runner.Render(ctx, world, roots, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/entitree/pkg/cache"
	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// ArtifactTTL is how long rendered images stay in the cache.
	ArtifactTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// formatNames lists ValidFormats in help-text order.
var formatNames = []string{FormatText, FormatDOT, FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// IsImage reports whether format is produced by Graphviz and therefore cached.
func IsImage(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Root selects a single entity ("3v0", or a bare index "3") to render.
	// Empty means every root entity of the world.
	Root string `json:"root,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Color    bool     `json:"color,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Component lists in diagram labels
	Scale    float64  `json:"scale,omitempty"`    // PNG only

	// Refresh bypasses cached artifacts and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// World is the loaded scene.
	World *ecs.World

	// Roots are the entities that were rendered.
	Roots []ecs.Entity

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount int
	LoadTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for image formats.
type CacheInfo struct {
	RenderHit bool            // Whether every image artifact came from cache
	Hits      map[string]bool // Per-format hit, image formats only
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(formatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Color:    o.Color,
		Detailed: o.Detailed,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
