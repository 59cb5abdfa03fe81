// Package hall defines the fixed facts of the exhibition hall: the hall
// rectangle, the zone table, the entrance nodes, the main corridor axes, and
// the booth inventory with its allowed shapes.
//
// Everything in this package is immutable input for the planning pipeline.
// The values can be overridden by an external configuration document, but the
// downstream components treat whatever they receive as read-only.
//
// # Coordinate system
//
// The hall is the rectangle (0,0)–(80,40), x growing east and y growing
// north. The three main corridors run at centerlines x=50, y=35 and y=5,
// each 4 m wide, so their rectangles are x∈[48,52] (full height) and
// y∈[33,37], y∈[3,7] (full width).
package hall

import (
	"fmt"
	"sort"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/geometry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Width and Height are the hall dimensions in metres.
	Width  = 80.0
	Height = 40.0

	// MinBoothSide is the minimum booth side length.
	MinBoothSide = 3.0

	// MaxAspectRatio is the maximum long/short side ratio for a booth.
	MaxAspectRatio = 4.0

	// MaxBoothSide is the longest admissible booth side, implied by the
	// aspect limit and the minimum side (4 × 3 m).
	MaxBoothSide = MinBoothSide * MaxAspectRatio

	// MainCorridorWidth is the fixed width of the three main corridors.
	MainCorridorWidth = 4.0

	// StripDepth is the usable booth depth in the outer zones C/D/E/F after
	// the adjacent main corridor eats 2 m of their nominal 5 m depth.
	StripDepth = 3.0
)

// Main corridor centerlines. These are never altered.
const (
	MainAxisX      = 50.0 // vertical corridor
	MainAxisYUpper = 35.0 // upper horizontal corridor
	MainAxisYLower = 5.0  // lower horizontal corridor
)

// =============================================================================
// Zones
// =============================================================================

// ZoneID identifies one of the six fixed zones.
type ZoneID string

const (
	ZoneA ZoneID = "A"
	ZoneB ZoneID = "B"
	ZoneC ZoneID = "C"
	ZoneD ZoneID = "D"
	ZoneE ZoneID = "E"
	ZoneF ZoneID = "F"
)

// Zone is a fixed rectangular sub-area of the hall with its own depth and
// corridor rules.
type Zone struct {
	ID ZoneID `json:"id" bson:"id"`

	// Bounds is the nominal zone rectangle. For the outer strips C/D/E/F
	// this includes the 2 m overlapped by the adjacent main corridor; the
	// region decomposer subtracts that overlap.
	Bounds geometry.Rect `json:"bounds" bson:"bounds"`

	// MaxBoothDepth constrains the short booth side in this zone.
	// Zero means unconstrained (subject only to corridor carving).
	MaxBoothDepth float64 `json:"max_booth_depth,omitempty" bson:"max_booth_depth,omitempty"`

	// AllowsSecondaryCorridors is true only for the inner zones A and B.
	AllowsSecondaryCorridors bool `json:"allows_secondary_corridors,omitempty" bson:"allows_secondary_corridors,omitempty"`
}

// IsStrip reports whether the zone is a fixed-depth outer strip (C/D/E/F).
func (z Zone) IsStrip() bool { return z.MaxBoothDepth > 0 }

// =============================================================================
// Entrances
// =============================================================================

// Entrance is a fixed access point on the hall boundary. Entrances are
// scoring references and corridor-connectivity anchors; they are never moved.
type Entrance struct {
	Label    string         `json:"label" bson:"label"`
	Position geometry.Point `json:"position" bson:"position"`
}

// =============================================================================
// Geometry aggregate
// =============================================================================

// Geometry bundles the fixed hall facts consumed by the pipeline.
type Geometry struct {
	Bounds    geometry.Rect `json:"bounds" bson:"bounds"`
	Zones     []Zone        `json:"zones" bson:"zones"`
	Entrances []Entrance    `json:"entrances" bson:"entrances"`
}

// Default returns the fixed hall geometry for this venue.
func Default() Geometry {
	return Geometry{
		Bounds: geometry.Rect{X: 0, Y: 0, W: Width, H: Height},
		Zones: []Zone{
			{ID: ZoneA, Bounds: geometry.Rect{X: 0, Y: 7, W: 48, H: 26}, AllowsSecondaryCorridors: true},
			{ID: ZoneB, Bounds: geometry.Rect{X: 52, Y: 7, W: 28, H: 26}, AllowsSecondaryCorridors: true},
			{ID: ZoneC, Bounds: geometry.Rect{X: 0, Y: 35, W: 48, H: 5}, MaxBoothDepth: StripDepth},
			{ID: ZoneD, Bounds: geometry.Rect{X: 52, Y: 35, W: 28, H: 5}, MaxBoothDepth: StripDepth},
			{ID: ZoneE, Bounds: geometry.Rect{X: 0, Y: 0, W: 48, H: 5}, MaxBoothDepth: StripDepth},
			{ID: ZoneF, Bounds: geometry.Rect{X: 52, Y: 0, W: 28, H: 5}, MaxBoothDepth: StripDepth},
		},
		Entrances: []Entrance{
			{Label: "north", Position: geometry.Point{X: MainAxisX, Y: Height}},
			{Label: "south", Position: geometry.Point{X: MainAxisX, Y: 0}},
			{Label: "west", Position: geometry.Point{X: 0, Y: MainAxisYUpper}},
			{Label: "east", Position: geometry.Point{X: Width, Y: MainAxisYLower}},
		},
	}
}

// MainEntrance returns the primary entrance used as the scoring reference.
func (g Geometry) MainEntrance() geometry.Point {
	for _, e := range g.Entrances {
		if e.Label == "north" {
			return e.Position
		}
	}
	return geometry.Point{X: MainAxisX, Y: Height}
}

// Zone returns the zone with the given id.
func (g Geometry) Zone(id ZoneID) (Zone, bool) {
	for _, z := range g.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// Validate rejects malformed fixed geometry before any placement attempt.
// It checks grid alignment, zone containment and zone disjointness.
func (g Geometry) Validate() error {
	if g.Bounds.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidGeometry, "hall rectangle is empty")
	}
	if !g.Bounds.OnGrid() {
		return errors.New(errors.ErrCodeInvalidGeometry, "hall rectangle is not grid-aligned")
	}
	for i, z := range g.Zones {
		if !z.Bounds.OnGrid() {
			return errors.New(errors.ErrCodeInvalidGeometry, "zone %s is not grid-aligned", z.ID)
		}
		if !g.Bounds.Contains(z.Bounds) {
			return errors.New(errors.ErrCodeInvalidGeometry, "zone %s exceeds the hall rectangle", z.ID)
		}
		for _, other := range g.Zones[i+1:] {
			if z.Bounds.Overlaps(other.Bounds) {
				return errors.New(errors.ErrCodeInvalidGeometry, "zones %s and %s overlap", z.ID, other.ID)
			}
		}
	}
	for _, e := range g.Entrances {
		p := e.Position
		onBoundary := eqf(p.X, g.Bounds.X) || eqf(p.X, g.Bounds.MaxX()) ||
			eqf(p.Y, g.Bounds.Y) || eqf(p.Y, g.Bounds.MaxY())
		if !onBoundary {
			return errors.New(errors.ErrCodeInvalidGeometry, "entrance %q is not on the hall boundary", e.Label)
		}
	}
	return nil
}

func eqf(a, b float64) bool {
	d := a - b
	return d < geometry.Epsilon && d > -geometry.Epsilon
}

// =============================================================================
// Inventory
// =============================================================================

// BoothSpec is one inventory line: a fixed booth area and how many booths of
// that area exist. Count is never exceeded; the planner may leave some unused.
type BoothSpec struct {
	Area  float64 `json:"area" bson:"area"`
	Count int     `json:"count" bson:"count"`
}

// Areas is the fixed set of allowed booth areas, largest first.
var Areas = []float64{200, 100, 90, 80, 60, 48, 40, 30, 20, 18, 15, 12}

// DefaultInventory returns the fixed 12-line booth inventory
// (48 booths, 2,232 m² in total).
func DefaultInventory() []BoothSpec {
	return []BoothSpec{
		{Area: 200, Count: 2},
		{Area: 100, Count: 3},
		{Area: 90, Count: 2},
		{Area: 80, Count: 3},
		{Area: 60, Count: 4},
		{Area: 48, Count: 5},
		{Area: 40, Count: 4},
		{Area: 30, Count: 5},
		{Area: 20, Count: 5},
		{Area: 18, Count: 5},
		{Area: 15, Count: 4},
		{Area: 12, Count: 6},
	}
}

// AllowedArea reports whether a is one of the fixed inventory areas.
func AllowedArea(a float64) bool {
	for _, v := range Areas {
		if eqf(a, v) {
			return true
		}
	}
	return false
}

// ValidateInventory rejects malformed inventory tables: unknown areas,
// negative counts, duplicate lines.
func ValidateInventory(specs []BoothSpec) error {
	seen := make(map[float64]bool, len(specs))
	for _, s := range specs {
		if !AllowedArea(s.Area) {
			return errors.New(errors.ErrCodeInvalidInventory, "unknown booth area %.2f", s.Area)
		}
		if s.Count < 0 {
			return errors.New(errors.ErrCodeInvalidInventory, "negative count for area %.0f", s.Area)
		}
		if seen[s.Area] {
			return errors.New(errors.ErrCodeInvalidInventory, "duplicate inventory line for area %.0f", s.Area)
		}
		seen[s.Area] = true
	}
	return nil
}

// SortByPriority orders specs in placement priority: descending area.
// Instances within a spec keep stable input order, so the whole ordering is
// deterministic.
func SortByPriority(specs []BoothSpec) []BoothSpec {
	out := make([]BoothSpec, len(specs))
	copy(out, specs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Area > out[j].Area })
	return out
}

// =============================================================================
// Shapes
// =============================================================================

// Shape is one admissible width×height realization of a booth area.
// All shapes are grid-aligned with min side ≥ 3 m and aspect ratio ≤ 4:1.
type Shape struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// shapes maps each booth area to its admissible unrotated shapes.
// Rotation by 90° is handled by the placement engine.
var shapes = map[float64][]Shape{
	200: {{W: 20, H: 10}},
	100: {{W: 10, H: 10}},
	90:  {{W: 10, H: 9}},
	80:  {{W: 10, H: 8}},
	60:  {{W: 10, H: 6}},
	48:  {{W: 8, H: 6}},
	40:  {{W: 8, H: 5}},
	30:  {{W: 10, H: 3}, {W: 6, H: 5}},
	20:  {{W: 5, H: 4}},
	18:  {{W: 6, H: 3}, {W: 4.5, H: 4}},
	15:  {{W: 5, H: 3}, {W: 3.75, H: 4}},
	12:  {{W: 4, H: 3}},
}

// Shapes returns the admissible shapes for a booth area, including the 90°
// rotations. The unrotated variants come first; order is deterministic.
func Shapes(area float64) []Shape {
	base := shapes[area]
	out := make([]Shape, 0, 2*len(base))
	out = append(out, base...)
	for _, s := range base {
		if !eqf(s.W, s.H) {
			out = append(out, Shape{W: s.H, H: s.W})
		}
	}
	return out
}

// StripShape returns the shape for area whose depth equals the outer-strip
// depth of 3 m, if one exists. Only these shapes are admissible in C/D/E/F.
func StripShape(area float64) (Shape, bool) {
	for _, s := range shapes[area] {
		if eqf(s.H, StripDepth) && s.W <= MaxBoothSide+geometry.Epsilon {
			return s, true
		}
		if eqf(s.W, StripDepth) && s.H <= MaxBoothSide+geometry.Epsilon {
			return Shape{W: s.H, H: s.W}, true
		}
	}
	return Shape{}, false
}

// =============================================================================
// Priority tiers
// =============================================================================

// Tier groups booth areas into the four placement/reporting categories.
type Tier string

const (
	TierXL Tier = "xl" // 150 m² and above
	TierLG Tier = "lg" // 80–149 m²
	TierMD Tier = "md" // 40–79 m²
	TierSM Tier = "sm" // below 40 m²
)

// TierOf returns the priority tier for a booth area.
func TierOf(area float64) Tier {
	switch {
	case area >= 150:
		return TierXL
	case area >= 80:
		return TierLG
	case area >= 40:
		return TierMD
	default:
		return TierSM
	}
}

// TotalArea sums area×count over the inventory.
func TotalArea(specs []BoothSpec) float64 {
	var total float64
	for _, s := range specs {
		total += s.Area * float64(s.Count)
	}
	return total
}

// TotalCount sums the counts over the inventory.
func TotalCount(specs []BoothSpec) int {
	var n int
	for _, s := range specs {
		n += s.Count
	}
	return n
}

// String implements fmt.Stringer for diagnostics.
func (s BoothSpec) String() string {
	return fmt.Sprintf("%d×%.0f m²", s.Count, s.Area)
}
