package region

import (
	"fmt"

	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// Carve removes booth from the region, retires the region, and re-partitions
// the leftover L-shape into at most two rectangular regions via a guillotine
// cut. The booth must share a corner with the region; the placement engine
// only generates corner-anchored candidates, which is what keeps a single
// straight cut sufficient.
//
// Between the two possible cut orientations the one whose larger remainder
// has the greater usable depth (short side) wins, keeping future candidates
// in the 3–12 m range instead of producing slivers. Remainders below the
// minimum booth side become waste.
func (a *Arena) Carve(r *FreeRegion, booth geometry.Rect) []*FreeRegion {
	if !r.Rect.Contains(booth) {
		panic(fmt.Sprintf("carve: booth %+v outside %s", booth, r))
	}
	a.Consume(r)

	parts := guillotine(r.Rect, booth)

	var out []*FreeRegion
	for _, p := range parts {
		if p.IsEmpty() {
			continue
		}
		if p.MinSide() < hall.MinBoothSide-geometry.Epsilon {
			a.AddWaste(r.Zone, p, "sliver after carve")
			continue
		}
		out = append(out, a.Add(r.Zone, r.MaxDepth, p))
	}
	return out
}

// guillotine splits region minus booth into at most two rectangles.
// The booth is corner-anchored, so the leftover is an L (or a single slab).
func guillotine(region, booth geometry.Rect) []geometry.Rect {
	dx := region.W - booth.W
	dy := region.H - booth.H

	atWest := eq(booth.X, region.X)
	atSouth := eq(booth.Y, region.Y)

	// x origin of the vertical slab beside the booth.
	sideX := region.X
	if atWest {
		sideX = booth.MaxX()
	}
	// y origin of the horizontal slab above/below the booth.
	slabY := region.Y
	if atSouth {
		slabY = booth.MaxY()
	}

	switch {
	case dx < geometry.Epsilon && dy < geometry.Epsilon:
		return nil
	case dx < geometry.Epsilon:
		return []geometry.Rect{{X: region.X, Y: slabY, W: region.W, H: dy}}
	case dy < geometry.Epsilon:
		return []geometry.Rect{{X: sideX, Y: region.Y, W: dx, H: region.H}}
	}

	// Vertical cut: full-height side slab + horizontal stub over the booth.
	vert := []geometry.Rect{
		{X: sideX, Y: region.Y, W: dx, H: region.H},
		{X: booth.X, Y: slabY, W: booth.W, H: dy},
	}
	// Horizontal cut: full-width slab + vertical stub beside the booth.
	horiz := []geometry.Rect{
		{X: region.X, Y: slabY, W: region.W, H: dy},
		{X: sideX, Y: booth.Y, W: dx, H: booth.H},
	}

	if largerDepth(vert) >= largerDepth(horiz) {
		return vert
	}
	return horiz
}

// largerDepth returns the short side of the larger-area rectangle of the pair.
func largerDepth(pair []geometry.Rect) float64 {
	larger := pair[0]
	if pair[1].Area() > larger.Area() {
		larger = pair[1]
	}
	return larger.MinSide()
}

func eq(a, b float64) bool {
	d := a - b
	return d < geometry.Epsilon && d > -geometry.Epsilon
}
