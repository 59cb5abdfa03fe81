// Package validate re-derives every layout invariant from the final booth and
// corridor lists alone. It never trusts intermediate placement state: free
// space is recomputed by rectangle subtraction, counts by re-aggregation.
// Validation reports, it never repairs.
package validate

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/placement"
)

// Rule identifies one checked invariant in the report.
type Rule string

const (
	RuleGridAlignment   Rule = "grid-alignment"
	RuleMinSide         Rule = "min-side"
	RuleAspectRatio     Rule = "aspect-ratio"
	RuleAllowedArea     Rule = "allowed-area"
	RuleShapeArea       Rule = "shape-area"
	RuleStripDepth      Rule = "strip-depth"
	RuleZoneContainment Rule = "zone-containment"
	RuleBoothOverlap    Rule = "booth-overlap"
	RuleCorridorOverlap Rule = "corridor-overlap"
	RuleFrontage        Rule = "frontage"
	RuleInventoryBound  Rule = "inventory-bound"
	RuleAreaBudget      Rule = "area-budget"
	RuleConnectivity    Rule = "corridor-connectivity"
	RuleDeadEnd         Rule = "corridor-dead-end"
	RuleEntranceAccess  Rule = "entrance-access"
	RuleUnexplainedGap  Rule = "unexplained-gap"
)

// NegligibleGapArea is the free-pocket area below which a gap needs no
// explanation.
const NegligibleGapArea = 1.0

// Violation is one failed invariant with the offending entity ids.
type Violation struct {
	Rule     Rule     `json:"rule" bson:"rule"`
	Entities []string `json:"entities,omitempty" bson:"entities,omitempty"`
	Message  string   `json:"message" bson:"message"`
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	if len(v.Entities) == 0 {
		return fmt.Sprintf("[%s] %s", v.Rule, v.Message)
	}
	return fmt.Sprintf("[%s] %v: %s", v.Rule, v.Entities, v.Message)
}

// Report is the structured validation outcome.
type Report struct {
	Violations []Violation `json:"violations,omitempty" bson:"violations,omitempty"`

	PlacedArea   float64 `json:"placed_area" bson:"placed_area"`
	CorridorArea float64 `json:"corridor_area" bson:"corridor_area"`
	PlacedCount  int     `json:"placed_count" bson:"placed_count"`
}

// Passed reports whether every invariant held.
func (r *Report) Passed() bool { return len(r.Violations) == 0 }

func (r *Report) add(rule Rule, entities []string, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Rule:     rule,
		Entities: entities,
		Message:  fmt.Sprintf(format, args...),
	})
}

// =============================================================================
// Checker
// =============================================================================

// Check validates a finished layout against the full invariant list.
func Check(g hall.Geometry, net *corridor.Network, booths []placement.Booth, inventory []hall.BoothSpec) *Report {
	r := &Report{
		CorridorArea: net.Area(),
		PlacedCount:  len(booths),
	}
	for _, b := range booths {
		r.PlacedArea += b.Area
	}

	checkBooths(r, g, net, booths)
	checkOverlaps(r, net, booths)
	checkInventory(r, booths, inventory)
	checkAreaBudget(r, g)
	checkCorridors(r, g, net)
	checkGaps(r, g, net, booths, inventory)
	return r
}

func checkBooths(r *Report, g hall.Geometry, net *corridor.Network, booths []placement.Booth) {
	for _, b := range booths {
		id := []string{b.ID}

		if !b.Rect.OnGrid() {
			r.add(RuleGridAlignment, id, "coordinates not multiples of %.2f m", geometry.Grid)
		}
		if b.Rect.MinSide() < hall.MinBoothSide-geometry.Epsilon {
			r.add(RuleMinSide, id, "short side %.2f m below %.0f m minimum", b.Rect.MinSide(), float64(hall.MinBoothSide))
		}
		if b.Rect.AspectRatio() > hall.MaxAspectRatio+geometry.Epsilon {
			r.add(RuleAspectRatio, id, "aspect ratio %.2f exceeds %.0f:1", b.Rect.AspectRatio(), float64(hall.MaxAspectRatio))
		}
		if !hall.AllowedArea(b.Area) {
			r.add(RuleAllowedArea, id, "area %.2f m² not in the inventory set", b.Area)
		}
		if d := b.Rect.Area() - b.Area; d > geometry.Epsilon || d < -geometry.Epsilon {
			r.add(RuleShapeArea, id, "rectangle area %.2f m² does not match declared %.2f m²", b.Rect.Area(), b.Area)
		}

		z, ok := g.Zone(b.Zone)
		if !ok {
			r.add(RuleZoneContainment, id, "unknown zone %s", b.Zone)
			continue
		}
		if !z.Bounds.Contains(b.Rect) {
			r.add(RuleZoneContainment, id, "rectangle extends outside zone %s", b.Zone)
		}
		if z.IsStrip() && !feq(b.Rect.MinSide(), z.MaxBoothDepth) {
			r.add(RuleStripDepth, id, "depth %.2f m, zone %s requires exactly %.0f m", b.Rect.MinSide(), b.Zone, z.MaxBoothDepth)
		}

		if !hasFrontage(b.Rect, net) {
			r.add(RuleFrontage, id, "no full side flush with a corridor edge")
		}
	}
}

func checkOverlaps(r *Report, net *corridor.Network, booths []placement.Booth) {
	for i := range booths {
		for j := i + 1; j < len(booths); j++ {
			if booths[i].Rect.Overlaps(booths[j].Rect) {
				r.add(RuleBoothOverlap, []string{booths[i].ID, booths[j].ID}, "booth interiors intersect")
			}
		}
		for _, s := range net.Segments {
			if booths[i].Rect.Overlaps(s.Rect) {
				r.add(RuleCorridorOverlap, []string{booths[i].ID, s.ID}, "booth intersects corridor")
			}
		}
	}
}

func checkInventory(r *Report, booths []placement.Booth, inventory []hall.BoothSpec) {
	placed := map[float64]int{}
	for _, b := range booths {
		placed[b.Area]++
	}
	for _, spec := range inventory {
		if placed[spec.Area] > spec.Count {
			r.add(RuleInventoryBound, nil, "area %.0f m²: placed %d exceeds inventory %d", spec.Area, placed[spec.Area], spec.Count)
		}
		delete(placed, spec.Area)
	}
	for area, n := range placed {
		r.add(RuleInventoryBound, nil, "area %.0f m²: %d booths placed with no inventory line", area, n)
	}
}

func checkAreaBudget(r *Report, g hall.Geometry) {
	hallArea := g.Bounds.Area()
	if total := r.PlacedArea + r.CorridorArea; total > hallArea+geometry.Epsilon {
		r.add(RuleAreaBudget, nil, "placed %.2f + corridor %.2f m² exceeds hall area %.0f m²", r.PlacedArea, r.CorridorArea, hallArea)
	}
}

func checkCorridors(r *Report, g hall.Geometry, net *corridor.Network) {
	if !net.Connected() {
		r.add(RuleConnectivity, nil, "corridor adjacency graph is not connected")
	}
	for _, id := range net.DeadEnds() {
		r.add(RuleDeadEnd, []string{id}, "segment unreachable from the main network")
	}
	for _, e := range g.Entrances {
		if !net.CoversEntrance(e) {
			r.add(RuleEntranceAccess, []string{e.Label}, "entrance not on the corridor network boundary")
		}
	}
}

// checkGaps recomputes free space as hall minus corridors minus booths and
// flags every pocket that could still host an unused booth with frontage.
// Pockets nothing can fill are expected leftovers, not violations.
func checkGaps(r *Report, g hall.Geometry, net *corridor.Network, booths []placement.Booth, inventory []hall.BoothSpec) {
	cuts := net.Rects()
	for _, b := range booths {
		cuts = append(cuts, b.Rect)
	}
	free := geometry.SubtractAll([]geometry.Rect{g.Bounds}, cuts)

	unused := unusedSpecs(booths, inventory)
	for _, p := range free {
		if p.Area() <= NegligibleGapArea || p.MinSide() < hall.MinBoothSide-geometry.Epsilon {
			continue
		}
		if area, ok := fitsUnused(p, unused, g, net); ok {
			r.add(RuleUnexplainedGap, nil,
				"free pocket %.2f×%.2f at (%.2f,%.2f) could host an unused %.0f m² booth", p.W, p.H, p.X, p.Y, area)
		}
	}
}

func unusedSpecs(booths []placement.Booth, inventory []hall.BoothSpec) []hall.BoothSpec {
	placed := map[float64]int{}
	for _, b := range booths {
		placed[b.Area]++
	}
	var out []hall.BoothSpec
	for _, spec := range inventory {
		if n := spec.Count - placed[spec.Area]; n > 0 {
			out = append(out, hall.BoothSpec{Area: spec.Area, Count: n})
		}
	}
	return out
}

// fitsUnused reports whether any unused spec has an admissible shape that
// fits the pocket, stays inside one zone, and would have corridor frontage.
func fitsUnused(p geometry.Rect, unused []hall.BoothSpec, g hall.Geometry, net *corridor.Network) (float64, bool) {
	for _, spec := range unused {
		for _, z := range g.Zones {
			clip := p.Intersect(z.Bounds)
			if clip.IsEmpty() {
				continue
			}
			for _, s := range shapesFor(spec.Area, z) {
				if s.W > clip.W+geometry.Epsilon || s.H > clip.H+geometry.Epsilon {
					continue
				}
				rect := geometry.Rect{X: clip.X, Y: clip.Y, W: s.W, H: s.H}
				if hasFrontage(rect, net) {
					return spec.Area, true
				}
			}
		}
	}
	return 0, false
}

func shapesFor(area float64, z hall.Zone) []hall.Shape {
	if z.IsStrip() {
		if s, ok := hall.StripShape(area); ok {
			return []hall.Shape{s}
		}
		return nil
	}
	return hall.Shapes(area)
}

func hasFrontage(rect geometry.Rect, net *corridor.Network) bool {
	for _, c := range net.Rects() {
		if _, ok := rect.FlushSide(c); ok {
			return true
		}
	}
	return false
}

func feq(a, b float64) bool {
	d := a - b
	return d < geometry.Epsilon && d > -geometry.Epsilon
}
