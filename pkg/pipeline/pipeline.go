// Package pipeline provides the core planning pipeline: corridors → regions →
// placement → validation, with optional artifact rendering.
//
// This package centralizes the stage sequencing and caching so the CLI and
// the HTTP server behave identically. The planning stages themselves are pure
// functions of the fixed inputs; the pipeline adds orchestration, caching and
// logging around them.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/expogrid/hallplan/pkg/cache"
	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/placement"
	"github.com/expogrid/hallplan/pkg/render"
	"github.com/expogrid/hallplan/pkg/scoring"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, json)", format)
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
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Corridor options.
	SecondaryWidth  float64 `json:"secondary_width,omitempty"`
	MaxSpanDepth    float64 `json:"max_span_depth,omitempty"`
	StarvationWidth float64 `json:"starvation_width,omitempty"`

	// Placement options.
	Weights   scoring.Weights  `json:"weights,omitempty"`
	Inventory []hall.BoothSpec `json:"inventory,omitempty"`

	// Render options.
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	co := o.CorridorOptions()
	if err := co.Validate(); err != nil {
		return err
	}
	if o.Weights == (scoring.Weights{}) {
		o.Weights = scoring.DefaultWeights()
	}
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	if o.Inventory == nil {
		o.Inventory = hall.DefaultInventory()
	}
	if err := hall.ValidateInventory(o.Inventory); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CorridorOptions converts the pipeline options to corridor builder options.
func (o *Options) CorridorOptions() corridor.Options {
	co := corridor.Options{
		SecondaryWidth:          o.SecondaryWidth,
		MaxSpanDepth:            o.MaxSpanDepth,
		FrontageStarvationWidth: o.StarvationWidth,
	}
	co.SetDefaults()
	return co
}

// PlacementOptions converts the pipeline options to placement options.
func (o *Options) PlacementOptions() placement.Options {
	return placement.Options{
		Weights:   o.Weights,
		Inventory: o.Inventory,
	}
}

// PlanKeyOpts returns cache key options covering every planning input.
func (o *Options) PlanKeyOpts(g hall.Geometry) cache.PlanKeyOpts {
	co := o.CorridorOptions()
	return cache.PlanKeyOpts{
		GeometryHash:    hashJSON(g),
		InventoryHash:   hashJSON(o.Inventory),
		SecondaryWidth:  co.SecondaryWidth,
		MaxSpanDepth:    co.MaxSpanDepth,
		StarvationWidth: co.FrontageStarvationWidth,
		WeightsHash:     hashJSON(o.Weights),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
	}
}

func hashJSON(v any) string {
	data, _ := json.Marshal(v)
	return cache.Hash(data)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the finished plan.
	Layout *layout.Layout

	// PlanHash is the content hash of the serialized layout.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CorridorTime time.Duration
	RegionTime   time.Duration
	PlaceTime    time.Duration
	ValidateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
