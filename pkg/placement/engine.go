package placement

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/region"
	"github.com/expogrid/hallplan/pkg/scoring"
)

// candidate is one scored placement option for the current booth instance.
type candidate struct {
	region   *region.FreeRegion
	rect     geometry.Rect
	measured scoring.Candidate
	score    float64
	dist     float64
}

// better is the deterministic ranking over candidates: score descending, then
// frontage descending, then Manhattan distance to the main entrance ascending,
// then lower x, then lower y.
func (c candidate) better(o candidate) bool {
	if c.score != o.score {
		return c.score > o.score
	}
	if c.measured.Frontage != o.measured.Frontage {
		return c.measured.Frontage > o.measured.Frontage
	}
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	if c.rect.X != o.rect.X {
		return c.rect.X < o.rect.X
	}
	return c.rect.Y < o.rect.Y
}

// =============================================================================
// Engine
// =============================================================================

// Place runs the greedy placement loop over the arena. The inventory is
// processed in priority order (area descending); each instance takes the
// best-scoring valid candidate and carves it out of its region. Instances
// with no valid candidate are recorded as unused, and the remaining instances
// of the same spec are skipped with them since an identical booth cannot fit
// where this one did not.
func Place(g hall.Geometry, net *corridor.Network, arena *region.Arena, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	zones := make(map[hall.ZoneID]hall.Zone, len(g.Zones))
	for _, z := range g.Zones {
		zones[z.ID] = z
	}

	entrance := g.MainEntrance()
	result := &Result{}
	zoneSeq := map[hall.ZoneID]int{}

	for _, spec := range hall.SortByPriority(opts.Inventory) {
		for i := 0; i < spec.Count; i++ {
			best, ok := bestCandidate(spec.Area, arena, zones, net, g.Bounds, entrance, opts.Weights)
			if !ok {
				result.Unused = append(result.Unused, Unused{Area: spec.Area, Count: spec.Count - i})
				break
			}

			zoneSeq[best.region.Zone]++
			booth := Booth{
				ID:       fmt.Sprintf("%s-%d", best.region.Zone, zoneSeq[best.region.Zone]),
				Zone:     best.region.Zone,
				Area:     spec.Area,
				Rect:     best.rect,
				Score:    best.score,
				Frontage: flushSides(best.rect, net),
			}
			result.Booths = append(result.Booths, booth)
			arena.Carve(best.region, best.rect)
		}
	}
	return result, nil
}

// bestCandidate enumerates every (region, shape, corner anchor) combination
// for the given booth area and returns the ranking winner, or false when no
// valid candidate exists.
func bestCandidate(area float64, arena *region.Arena, zones map[hall.ZoneID]hall.Zone, net *corridor.Network, bounds geometry.Rect, entrance geometry.Point, w scoring.Weights) (candidate, bool) {
	var best candidate
	found := false

	for _, r := range arena.Live() {
		for _, s := range admissibleShapes(area, r) {
			for _, rect := range cornerAnchors(r.Rect, s) {
				if len(flushSides(rect, net)) == 0 {
					continue
				}
				m := scoring.Measure(rect, zones[r.Zone], net, bounds)
				c := candidate{
					region:   r,
					rect:     rect,
					measured: m,
					score:    scoring.Score(m, entrance, w),
					dist:     rect.Center().Manhattan(entrance),
				}
				if !found || c.better(best) {
					best, found = c, true
				}
			}
		}
	}
	return best, found
}

// admissibleShapes returns the shapes of the area that fit the region and
// respect its depth rule. In the outer strips only the 3 m-deep shape is
// admissible; in A/B every cataloged shape and rotation is.
func admissibleShapes(area float64, r *region.FreeRegion) []hall.Shape {
	var pool []hall.Shape
	if r.MaxDepth > 0 {
		s, ok := hall.StripShape(area)
		if !ok {
			return nil
		}
		pool = []hall.Shape{s}
	} else {
		pool = hall.Shapes(area)
	}

	var out []hall.Shape
	for _, s := range pool {
		if s.W <= r.Rect.W+geometry.Epsilon && s.H <= r.Rect.H+geometry.Epsilon {
			out = append(out, s)
		}
	}
	return out
}

// cornerAnchors returns the booth rectangles anchored at the four region
// corners, deduplicated when the shape matches a region dimension. Corner
// anchoring is what keeps the post-carve leftover guillotine-splittable.
func cornerAnchors(r geometry.Rect, s hall.Shape) []geometry.Rect {
	anchors := []geometry.Rect{
		{X: r.X, Y: r.Y, W: s.W, H: s.H},
		{X: r.MaxX() - s.W, Y: r.Y, W: s.W, H: s.H},
		{X: r.X, Y: r.MaxY() - s.H, W: s.W, H: s.H},
		{X: r.MaxX() - s.W, Y: r.MaxY() - s.H, W: s.W, H: s.H},
	}

	var out []geometry.Rect
	for _, a := range anchors {
		dup := false
		for _, seen := range out {
			if a.Eq(seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

// flushSides returns the booth sides fully flush with a corridor edge, in
// fixed west/east/south/north order. An empty result means the placement has
// no frontage and is invalid.
func flushSides(rect geometry.Rect, net *corridor.Network) []geometry.Side {
	var touched [4]bool
	for _, c := range net.Rects() {
		if side, ok := rect.FlushSide(c); ok {
			touched[side] = true
		}
	}

	var out []geometry.Side
	for _, s := range []geometry.Side{geometry.SideWest, geometry.SideEast, geometry.SideSouth, geometry.SideNorth} {
		if touched[s] {
			out = append(out, s)
		}
	}
	return out
}
