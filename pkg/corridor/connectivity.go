package corridor

import (
	"github.com/expogrid/hallplan/pkg/geometry"
	"github.com/expogrid/hallplan/pkg/hall"
)

// touches reports whether two closed rectangles intersect, i.e. they overlap
// or share at least an edge point. This is the adjacency used for the
// corridor reachability walk.
func touches(a, b geometry.Rect) bool {
	return a.X <= b.MaxX()+geometry.Epsilon &&
		b.X <= a.MaxX()+geometry.Epsilon &&
		a.Y <= b.MaxY()+geometry.Epsilon &&
		b.Y <= a.MaxY()+geometry.Epsilon
}

// Reachable returns, per segment index, whether the segment can be reached
// from a main corridor by walking touching segments.
func (n *Network) Reachable() []bool {
	reached := make([]bool, len(n.Segments))
	var queue []int
	for i, s := range n.Segments {
		if s.IsMain() {
			reached[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, s := range n.Segments {
			if reached[i] {
				continue
			}
			if touches(n.Segments[cur].Rect, s.Rect) {
				reached[i] = true
				queue = append(queue, i)
			}
		}
	}
	return reached
}

// DeadEnds returns the ids of secondary/tertiary segments not reachable from
// the main network. A well-formed network has none.
func (n *Network) DeadEnds() []string {
	reached := n.Reachable()
	var out []string
	for i, s := range n.Segments {
		if !reached[i] {
			out = append(out, s.ID)
		}
	}
	return out
}

// Connected reports whether every segment is reachable from a main corridor.
func (n *Network) Connected() bool {
	return len(n.DeadEnds()) == 0
}

// CoversEntrance reports whether the entrance position lies on the boundary
// of (or inside) some corridor segment, i.e. the network reaches it.
func (n *Network) CoversEntrance(e hall.Entrance) bool {
	for _, s := range n.Segments {
		r := s.Rect
		if e.Position.X >= r.X-geometry.Epsilon && e.Position.X <= r.MaxX()+geometry.Epsilon &&
			e.Position.Y >= r.Y-geometry.Epsilon && e.Position.Y <= r.MaxY()+geometry.Epsilon {
			return true
		}
	}
	return false
}
