// Package region turns the hall's zones minus the corridor network into the
// set of rectangular free regions the placement engine consumes, and provides
// the guillotine re-partitioning applied after each booth is carved out.
//
// Regions live in an arena with explicit lifetime: a region is created by
// decomposition or by a split, consumed exactly once by a carve, and never
// shared mutably between components. Degenerate leftovers (any side below the
// 3 m minimum booth side) are recorded as waste instead of re-entering the
// arena.
package region

import (
	"fmt"
	"sort"

	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// FreeRegion is a rectangular area available for booth placement.
type FreeRegion struct {
	ID   int           `json:"id" bson:"id"`
	Zone hall.ZoneID   `json:"zone" bson:"zone"`
	Rect geometry.Rect `json:"rect" bson:"rect"`

	// MaxDepth is inherited from the zone: 3 m in the outer strips,
	// 0 (unconstrained) in A/B.
	MaxDepth float64 `json:"max_depth,omitempty" bson:"max_depth,omitempty"`

	consumed bool
}

// Consumed reports whether the region has been carved and retired.
func (r *FreeRegion) Consumed() bool { return r.consumed }

// String implements fmt.Stringer for diagnostics.
func (r *FreeRegion) String() string {
	return fmt.Sprintf("region %d [%s %.2f×%.2f at (%.2f,%.2f)]", r.ID, r.Zone, r.Rect.W, r.Rect.H, r.Rect.X, r.Rect.Y)
}

// Waste is a leftover area too small to host any booth. Waste is reported,
// never silently dropped.
type Waste struct {
	Zone   hall.ZoneID   `json:"zone" bson:"zone"`
	Rect   geometry.Rect `json:"rect" bson:"rect"`
	Reason string        `json:"reason" bson:"reason"`
}

// =============================================================================
// Arena
// =============================================================================

// Arena owns every FreeRegion of a planning run. Regions are appended during
// decomposition and splitting; consumption marks them retired without
// removing them, so ids stay stable for diagnostics.
type Arena struct {
	regions []*FreeRegion
	waste   []Waste
	nextID  int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add appends a new live region and returns it.
func (a *Arena) Add(zone hall.ZoneID, maxDepth float64, rect geometry.Rect) *FreeRegion {
	a.nextID++
	r := &FreeRegion{ID: a.nextID, Zone: zone, MaxDepth: maxDepth, Rect: rect}
	a.regions = append(a.regions, r)
	return r
}

// AddWaste records an unusable leftover.
func (a *Arena) AddWaste(zone hall.ZoneID, rect geometry.Rect, reason string) {
	a.waste = append(a.waste, Waste{Zone: zone, Rect: rect, Reason: reason})
}

// Consume retires a region. Consuming twice is a programming error and
// panics, because it means two booths were carved from the same area.
func (a *Arena) Consume(r *FreeRegion) {
	if r.consumed {
		panic(fmt.Sprintf("region %d consumed twice", r.ID))
	}
	r.consumed = true
}

// Live returns the regions still available for placement, ordered by id.
// The slice is rebuilt on each call; callers must not retain it across carves.
func (a *Arena) Live() []*FreeRegion {
	var out []*FreeRegion
	for _, r := range a.regions {
		if !r.consumed {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Waste returns all recorded unusable leftovers.
func (a *Arena) Waste() []Waste {
	return a.waste
}

// WasteArea sums the area of all recorded waste.
func (a *Arena) WasteArea() float64 {
	var total float64
	for _, w := range a.waste {
		total += w.Rect.Area()
	}
	return total
}

// FreeArea sums the area of all live regions.
func (a *Arena) FreeArea() float64 {
	var total float64
	for _, r := range a.regions {
		if !r.consumed {
			total += r.Rect.Area()
		}
	}
	return total
}
