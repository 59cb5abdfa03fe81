// Package render turns a finished layout into drawable artifacts: an SVG
// floor plan and a Graphviz view of the corridor adjacency graph.
//
// Rendering is a pure formatting concern. It consumes exact coordinates and
// areas from the layout and never feeds anything back into planning.
package render

import (
	"bytes"
	"fmt"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/placement"
)

// DefaultScale is the default pixels-per-metre factor for the SVG plan.
const DefaultScale = 12.0

// Corridor fills by kind, lightest for the narrowest.
var corridorFill = map[corridor.Kind]string{
	corridor.KindMain:      "#d9d9d9",
	corridor.KindSecondary: "#e8e8e8",
	corridor.KindTertiary:  "#f2f2f2",
}

// Booth fills by size tier.
var tierFill = map[hall.Tier]string{
	hall.TierXL: "#4c78a8",
	hall.TierLG: "#7aa6d0",
	hall.TierMD: "#a7c7e7",
	hall.TierSM: "#d3e3f5",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	showZones  bool
	showLabels bool
}

// WithScale overrides the pixels-per-metre factor.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithoutZones omits the dashed zone outlines.
func WithoutZones() SVGOption { return func(r *svgRenderer) { r.showZones = false } }

// WithoutLabels omits the per-booth area labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// SVG renders the floor plan. Plan coordinates have y growing north; SVG has
// y growing down, so every rectangle is flipped against the hall height.
func SVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: DefaultScale, showZones: true, showLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w := l.Hall.W * r.scale
	h := l.Hall.H * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff" stroke="#333333" stroke-width="2"/>`+"\n", w, h)

	for _, s := range l.Corridors {
		r.rect(&buf, l.Hall, s.Rect, corridorFill[s.Kind], "none", 0)
	}

	if r.showZones {
		for _, z := range l.Zones {
			x, y, zw, zh := r.flip(l.Hall, z.Bounds)
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#bbbbbb" stroke-width="1" stroke-dasharray="6,4"/>`+"\n", x, y, zw, zh)
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="#bbbbbb" font-family="sans-serif">%s</text>`+"\n",
				x+4, y+r.scale, r.scale, z.ID)
		}
	}

	for _, b := range l.Booths {
		r.booth(&buf, l.Hall, b)
	}

	for _, e := range l.Entrances {
		r.entrance(&buf, l.Hall, e)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// flip converts a plan rectangle to SVG pixel coordinates.
func (r *svgRenderer) flip(hallRect, rect geometry.Rect) (x, y, w, h float64) {
	x = rect.X * r.scale
	y = (hallRect.H - rect.MaxY()) * r.scale
	w = rect.W * r.scale
	h = rect.H * r.scale
	return
}

func (r *svgRenderer) rect(buf *bytes.Buffer, hallRect, rect geometry.Rect, fill, stroke string, strokeWidth float64) {
	x, y, w, h := r.flip(hallRect, rect)
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
		x, y, w, h, fill, stroke, strokeWidth)
}

func (r *svgRenderer) booth(buf *bytes.Buffer, hallRect geometry.Rect, b placement.Booth) {
	r.rect(buf, hallRect, b.Rect, tierFill[hall.TierOf(b.Area)], "#2a4d69", 1)

	if !r.showLabels {
		return
	}
	c := b.Rect.Center()
	cx := c.X * r.scale
	cy := (hallRect.H - c.Y) * r.scale
	size := labelSize(b.Rect, r.scale)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="#ffffff" font-family="sans-serif" text-anchor="middle" dominant-baseline="central">%.0f m²</text>`+"\n",
		cx, cy, size, b.Area)
}

func (r *svgRenderer) entrance(buf *bytes.Buffer, hallRect geometry.Rect, e hall.Entrance) {
	cx := e.Position.X * r.scale
	cy := (hallRect.H - e.Position.Y) * r.scale
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#d62728"/>`+"\n", cx, cy, r.scale/2)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" fill="#d62728" font-family="sans-serif" text-anchor="middle">%s</text>`+"\n",
		cx, cy-r.scale*0.8, r.scale*0.9, e.Label)
}

// labelSize shrinks the area label until it fits the booth at any size.
func labelSize(rect geometry.Rect, scale float64) float64 {
	size := scale * 1.1
	if max := rect.MinSide() * scale * 0.45; size > max {
		size = max
	}
	return size
}
