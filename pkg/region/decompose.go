package region

import (
	"sort"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// Decompose subtracts every corridor rectangle from every zone and returns
// the resulting free regions in a fresh arena.
//
// Outer-strip regions (C/D/E/F) are clipped so their depth equals the zone's
// MaxBoothDepth, keeping the band adjacent to the corridor that provides
// their frontage; the clipped-off remainder becomes waste. Any region with a
// side below the minimum booth side is recorded as waste with reason
// "degenerate" and never enters placement.
func Decompose(g hall.Geometry, net *corridor.Network) *Arena {
	arena := NewArena()
	cuts := net.Rects()

	for _, z := range g.Zones {
		parts := geometry.SubtractAll([]geometry.Rect{z.Bounds}, cuts)
		sortRects(parts)

		for _, p := range parts {
			if z.IsStrip() {
				p = clipStrip(arena, z, p, net)
				if p.IsEmpty() {
					continue
				}
			}
			if p.MinSide() < hall.MinBoothSide-geometry.Epsilon {
				arena.AddWaste(z.ID, p, "degenerate")
				continue
			}
			arena.Add(z.ID, z.MaxBoothDepth, p)
		}
	}
	return arena
}

// clipStrip reduces an outer-strip region to exactly the zone's usable depth,
// keeping the band flush with the corridor edge that serves it. The main
// corridor already removes 2 m of the nominal 5 m depth, so for the fixed
// geometry this is a no-op; it guards against wider strip configurations.
// Returns the zero Rect when the region has no corridor contact at all.
func clipStrip(arena *Arena, z hall.Zone, p geometry.Rect, net *corridor.Network) geometry.Rect {
	depth := z.MaxBoothDepth
	if p.H <= depth+geometry.Epsilon {
		return p
	}

	southTouch := false
	northTouch := false
	for _, c := range net.Rects() {
		if l, side := p.ContactLength(c); l > 0 {
			switch side {
			case geometry.SideSouth:
				southTouch = true
			case geometry.SideNorth:
				northTouch = true
			}
		}
	}

	switch {
	case southTouch:
		kept := geometry.Rect{X: p.X, Y: p.Y, W: p.W, H: depth}
		arena.AddWaste(z.ID, geometry.Rect{X: p.X, Y: p.Y + depth, W: p.W, H: p.H - depth}, "beyond strip depth")
		return kept
	case northTouch:
		kept := geometry.Rect{X: p.X, Y: p.MaxY() - depth, W: p.W, H: depth}
		arena.AddWaste(z.ID, geometry.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H - depth}, "beyond strip depth")
		return kept
	default:
		arena.AddWaste(z.ID, p, "no corridor contact")
		return geometry.Rect{}
	}
}

// sortRects orders rectangles by (y, x) for deterministic region ids.
func sortRects(rs []geometry.Rect) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Y != rs[j].Y {
			return rs[i].Y < rs[j].Y
		}
		return rs[i].X < rs[j].X
	})
}
