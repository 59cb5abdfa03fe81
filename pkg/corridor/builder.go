package corridor

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// =============================================================================
// Builder options
// =============================================================================

const (
	// MinSecondaryWidth and MaxSecondaryWidth bound the width of proposed
	// secondary/tertiary corridors.
	MinSecondaryWidth = 2.5
	MaxSecondaryWidth = 3.5

	// DefaultSecondaryWidth keeps booth edges on the 0.25 m grid after
	// subtraction for the default zone table.
	DefaultSecondaryWidth = 3.0
)

// Options tunes the secondary/tertiary corridor heuristics.
type Options struct {
	// SecondaryWidth is the width of proposed secondary/tertiary segments,
	// within [MinSecondaryWidth, MaxSecondaryWidth].
	SecondaryWidth float64

	// MaxSpanDepth is the largest vertical span allowed between two
	// horizontal corridor edges before a tertiary corridor bisects it.
	// Defaults to twice the maximum admissible booth side (24 m).
	MaxSpanDepth float64

	// FrontageStarvationWidth is the largest zone width tolerated without a
	// vertical spur. Zones wider than this receive secondary corridors
	// bisecting them until every span is within the limit.
	FrontageStarvationWidth float64
}

// SetDefaults fills zero fields with default values.
func (o *Options) SetDefaults() {
	if o.SecondaryWidth == 0 {
		o.SecondaryWidth = DefaultSecondaryWidth
	}
	if o.MaxSpanDepth == 0 {
		o.MaxSpanDepth = 2 * hall.MaxBoothSide
	}
	if o.FrontageStarvationWidth == 0 {
		o.FrontageStarvationWidth = 2 * hall.MaxBoothSide
	}
}

// Validate rejects out-of-range widths before any segment is proposed.
func (o *Options) Validate() error {
	if o.SecondaryWidth < MinSecondaryWidth-geometry.Epsilon || o.SecondaryWidth > MaxSecondaryWidth+geometry.Epsilon {
		return errors.New(errors.ErrCodeInvalidConfig,
			"secondary corridor width %.2f outside [%.1f, %.1f]", o.SecondaryWidth, MinSecondaryWidth, MaxSecondaryWidth)
	}
	if d := geometry.Snap(o.SecondaryWidth) - o.SecondaryWidth; d > geometry.Epsilon || d < -geometry.Epsilon {
		return errors.New(errors.ErrCodeInvalidConfig,
			"secondary corridor width %.2f is not grid-aligned", o.SecondaryWidth)
	}
	return nil
}

// =============================================================================
// Build
// =============================================================================

// Build materializes the full corridor network for the given hall geometry:
// the three fixed main corridors, then secondary/tertiary proposals for every
// zone that allows them. The result is deterministic: same inputs, same
// segments in the same order.
func Build(g hall.Geometry, opts Options) (*Network, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := &Network{hallBounds: g.Bounds}
	n.Segments = append(n.Segments, mainSegments(g)...)

	for _, z := range g.Zones {
		if !z.AllowsSecondaryCorridors {
			continue
		}
		n.Segments = append(n.Segments, proposeForZone(z, opts)...)
	}
	return n, nil
}

// mainSegments returns the three fixed main corridors. The two intersections
// with the vertical corridor are intentional overlaps; Network.Area counts
// them once.
func mainSegments(g hall.Geometry) []Segment {
	half := hall.MainCorridorWidth / 2
	return []Segment{
		{
			ID:    fmt.Sprintf("main-x%.0f", hall.MainAxisX),
			Kind:  KindMain,
			Width: hall.MainCorridorWidth,
			Rect:  geometry.Rect{X: hall.MainAxisX - half, Y: g.Bounds.Y, W: hall.MainCorridorWidth, H: g.Bounds.H},
		},
		{
			ID:    fmt.Sprintf("main-y%.0f", hall.MainAxisYUpper),
			Kind:  KindMain,
			Width: hall.MainCorridorWidth,
			Rect:  geometry.Rect{X: g.Bounds.X, Y: hall.MainAxisYUpper - half, W: g.Bounds.W, H: hall.MainCorridorWidth},
		},
		{
			ID:    fmt.Sprintf("main-y%.0f", hall.MainAxisYLower),
			Kind:  KindMain,
			Width: hall.MainCorridorWidth,
			Rect:  geometry.Rect{X: g.Bounds.X, Y: hall.MainAxisYLower - half, W: g.Bounds.W, H: hall.MainCorridorWidth},
		},
	}
}

// proposeForZone generates the secondary and tertiary segments for one inner
// zone. Both heuristics bisect recursively until every span is within limits,
// which for the fixed geometry yields one vertical spur and one tertiary cut
// per zone.
//
// Every proposed segment spans the zone completely along its axis, so both
// ends terminate on the zone boundary, which adjoins a main corridor — no
// dead ends can be produced.
func proposeForZone(z hall.Zone, opts Options) []Segment {
	var out []Segment

	// Vertical spurs: cut zone widths that starve interior frontage.
	spurs := bisectSpans(z.Bounds.X, z.Bounds.MaxX(), opts.FrontageStarvationWidth, opts.SecondaryWidth)
	for i, x := range spurs {
		out = append(out, Segment{
			ID:    fmt.Sprintf("sec-%s-%d", z.ID, i+1),
			Kind:  KindSecondary,
			Width: opts.SecondaryWidth,
			Zone:  z.ID,
			Rect:  geometry.Rect{X: x, Y: z.Bounds.Y, W: opts.SecondaryWidth, H: z.Bounds.H},
		})
	}

	// Tertiary cuts: split vertical spans deeper than two booth rows.
	cuts := bisectSpans(z.Bounds.Y, z.Bounds.MaxY(), opts.MaxSpanDepth, opts.SecondaryWidth)
	for i, y := range cuts {
		out = append(out, Segment{
			ID:    fmt.Sprintf("ter-%s-%d", z.ID, i+1),
			Kind:  KindTertiary,
			Width: opts.SecondaryWidth,
			Zone:  z.ID,
			Rect:  geometry.Rect{X: z.Bounds.X, Y: y, W: z.Bounds.W, H: opts.SecondaryWidth},
		})
	}
	return out
}

// bisectSpans returns the grid-snapped low coordinates of corridor strips
// that subdivide [lo, hi] until no remaining span exceeds limit. Cuts are
// placed at span centers, centered on the strip width.
func bisectSpans(lo, hi, limit, width float64) []float64 {
	if hi-lo <= limit+geometry.Epsilon {
		return nil
	}
	center := geometry.Snap((lo+hi)/2 - width/2)
	var out []float64
	// Left spans first so the output stays sorted.
	out = append(out, bisectSpans(lo, center, limit, width)...)
	out = append(out, center)
	out = append(out, bisectSpans(center+width, hi, limit, width)...)
	return out
}
